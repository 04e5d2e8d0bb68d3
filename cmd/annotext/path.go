package main

import (
	"errors"
	"fmt"

	"github.com/revelaction/annotext/render"
	"github.com/urfave/cli/v2"
)

func pathCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "path",
		Usage:     "show the shortest dependency path between two tokens",
		ArgsUsage: "<source> <sentence id> <from token> <to token>",
		Flags:     []cli.Flag{feedFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 4 {
				return errors.New("usage: path <source> <sentence id> <from token> <to token>")
			}

			from, err := intArg(c, 2)
			if err != nil {
				return err
			}
			to, err := intArg(c, 3)
			if err != nil {
				return err
			}

			s, err := a.loadSentence(c)
			if err != nil {
				return err
			}

			for _, id := range []int{from, to} {
				if id < 0 || id >= len(s.Tokens) {
					return fmt.Errorf("token index %d out of bounds (0-%d)", id, len(s.Tokens)-1)
				}
			}

			render.NewRenderer(a.ui.Out).Path(s.ShortestPath(s.Tokens[from], s.Tokens[to]))
			return nil
		},
	}
}
