package main

import (
	"github.com/revelaction/annotext/render"
	"github.com/urfave/cli/v2"
)

func refsCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "refs",
		Usage:     "list the references of a document with their mentions",
		ArgsUsage: "<source>",
		Flags: []cli.Flag{
			feedFlag(),
			noColorFlag(),
			&cli.BoolFlag{Name: "resolved", Usage: "only references resolved by the linking feed"},
		},
		Action: func(c *cli.Context) error {
			doc, err := a.loadDoc(c)
			if err != nil {
				return err
			}

			refs := doc.References
			if c.Bool("resolved") {
				refs = doc.Disambiguated
			}

			r := render.NewRenderer(a.ui.Out)
			r.HasColor = !c.Bool("no-color")
			r.References(refs)
			return nil
		},
	}
}
