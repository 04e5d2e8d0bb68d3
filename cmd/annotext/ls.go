package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func lsCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list the stored documents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "only documents with a label containing this string"},
		},
		Action: func(c *cli.Context) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}

			docs, err := repo.List(c.String("label"))
			if err != nil {
				return err
			}

			for _, doc := range docs {
				fmt.Fprintf(a.ui.Out, "📖 %d %s", doc.Id, doc.Title)
				if len(doc.Labels) > 0 {
					fmt.Fprintf(a.ui.Out, " [%s]", strings.Join(doc.Labels, ", "))
				}
				fmt.Fprintln(a.ui.Out)
			}
			return nil
		},
	}
}

func labelsCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "list the labels of the stored documents",
		ArgsUsage: "[pattern]",
		Action: func(c *cli.Context) error {
			repo, err := a.repository()
			if err != nil {
				return err
			}

			labels, err := repo.Labels(c.Args().First())
			if err != nil {
				return err
			}

			if len(labels) > 0 {
				fmt.Fprintln(a.ui.Out, strings.Join(labels, ", "))
			}
			return nil
		},
	}
}
