package main

import (
	"errors"
	"fmt"

	"github.com/revelaction/annotext/storage/filesystem"
	"github.com/revelaction/annotext/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

func importCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "build the markup files of a directory and store them in a SQLite database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "directory of markup files"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "SQLite database file (created if missing)"},
			&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "label given to every imported document"},
		},
		Action: func(c *cli.Context) error {
			return a.importDocs(c.String("from"), c.String("to"), c.StringSlice("label"))
		},
	}
}

func (a *app) importDocs(from, to string, labels []string) error {
	src, err := filesystem.NewDocStore(from, a.build)
	if err != nil {
		return err
	}

	pool, err := a.pool.Open(to)
	if err != nil {
		return err
	}

	dst := zombiezen.NewDocStore(pool)

	fmt.Fprintf(a.ui.Out, "Reading docs from %s...\n", from)
	docs, err := src.List("")
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		return errors.New("no markup files found")
	}

	pr := newProgress()

	count := 0
	for i, docMeta := range docs {
		pr.step(i, len(docs), docMeta.Title)

		s, err := src.Read(docMeta.Id)
		if err != nil {
			pr.stop()
			return fmt.Errorf("failed to read doc %s: %w", docMeta.Title, err)
		}
		s.Labels = labels

		doc, err := a.build(s)
		if err != nil {
			pr.stop()
			return err
		}

		if _, err := dst.Write(s, doc); err != nil {
			pr.stop()
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}
		count++
	}
	pr.step(count, len(docs), "")
	pr.stop()

	fmt.Fprintf(a.ui.Out, "Successfully imported %d docs from %s to %s\n", count, from, to)
	return nil
}
