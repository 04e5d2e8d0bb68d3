package main

import (
	"errors"
	"fmt"

	"github.com/revelaction/annotext/storage"
	"github.com/urfave/cli/v2"
)

func linksCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "links",
		Usage:     "list the stored references resolved to a knowledge base identifier",
		ArgsUsage: "<kbid>",
		Action: func(c *cli.Context) error {
			kbid := c.Args().First()
			if kbid == "" {
				return errors.New("missing <kbid>")
			}

			repo, err := a.repository()
			if err != nil {
				return err
			}

			if p, ok := repo.(storage.Preloader); ok {
				if err := preload(p); err != nil {
					return err
				}
			}

			links, err := repo.Links(kbid)
			if err != nil {
				return err
			}

			for _, l := range links {
				fmt.Fprintf(a.ui.Out, "📖 %d %s #%d %q (%d mentions)\n", l.DocId, l.DocTitle, l.ReferenceID, l.Text, l.Mentions)
			}
			return nil
		},
	}
}

// preload loads a store into memory behind a progress bar.
func preload(p storage.Preloader) error {
	pr := newProgress()
	err := p.Preload(pr.step)
	pr.stop()

	return err
}
