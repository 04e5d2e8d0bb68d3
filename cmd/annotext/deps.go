package main

import (
	"github.com/revelaction/annotext/render"
	"github.com/urfave/cli/v2"
)

func depsCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "deps",
		Usage:     "show the dependency tree of a sentence",
		ArgsUsage: "<source> <sentence id>",
		Flags:     []cli.Flag{feedFlag()},
		Action: func(c *cli.Context) error {
			s, err := a.loadSentence(c)
			if err != nil {
				return err
			}

			render.NewRenderer(a.ui.Out).DepTree(s)
			return nil
		},
	}
}

func treeCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "show the constituency tree of a sentence",
		ArgsUsage: "<source> <sentence id>",
		Flags:     []cli.Flag{feedFlag()},
		Action: func(c *cli.Context) error {
			s, err := a.loadSentence(c)
			if err != nil {
				return err
			}

			render.NewRenderer(a.ui.Out).Tree(s)
			return nil
		},
	}
}
