package main

import (
	"fmt"

	"github.com/revelaction/annotext/render"
	"github.com/urfave/cli/v2"
)

func sentenceCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "show the token table of a sentence",
		ArgsUsage: "<source> <sentence id>",
		Flags:     []cli.Flag{feedFlag()},
		Action: func(c *cli.Context) error {
			s, err := a.loadSentence(c)
			if err != nil {
				return err
			}

			r := render.NewRenderer(a.ui.Out)
			r.HasPrefix = true
			r.Sentence(s)
			fmt.Fprintln(a.ui.Out)

			for _, t := range s.Tokens {
				speaker := t.Speaker
				if speaker == "" {
					speaker = "-"
				}
				fmt.Fprintf(a.ui.Out, "%20q %15q %6s %6d %6d %10s %s\n", t.Word, t.Lemma, t.POS, t.ID, t.Begin, nerOrDash(t.NER), speaker)
			}
			return nil
		},
	}
}

func nerOrDash(ner string) string {
	if ner == "" {
		return "-"
	}
	return ner
}
