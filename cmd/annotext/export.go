package main

import (
	"fmt"
	"os"

	"github.com/revelaction/annotext/render"
	"github.com/urfave/cli/v2"
)

func exportCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "write the document graph as JSON",
		ArgsUsage: "<source>",
		Flags: []cli.Flag{
			feedFlag(),
			&cli.BoolFlag{Name: "indent", Usage: "indent the JSON output"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
		},
		Action: func(c *cli.Context) error {
			doc, err := a.loadDoc(c)
			if err != nil {
				return err
			}

			w := a.ui.Out
			if out := c.String("out"); out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			r := render.NewJSONRenderer(w)
			r.Indent = c.Bool("indent")
			return r.Render(doc)
		},
	}
}
