package main

import (
	"github.com/revelaction/annotext/inspect"
	"github.com/revelaction/annotext/render"
	"github.com/urfave/cli/v2"
)

func inspectCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "browse a document in an interactive prompt",
		ArgsUsage: "<source>",
		Flags:     []cli.Flag{feedFlag(), noColorFlag()},
		Action: func(c *cli.Context) error {
			doc, err := a.loadDoc(c)
			if err != nil {
				return err
			}

			r := render.NewRenderer(a.ui.Out)
			r.HasColor = !c.Bool("no-color")
			r.HasPrefix = true

			return inspect.NewHandler(doc, r).Run()
		},
	}
}
