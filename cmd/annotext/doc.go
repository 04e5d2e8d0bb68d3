package main

import (
	"github.com/revelaction/annotext/render"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/urfave/cli/v2"
)

func docCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "show the text of a document, one sentence per line",
		ArgsUsage: "<source>",
		Flags: []cli.Flag{
			feedFlag(),
			noColorFlag(),
			&cli.IntFlag{Name: "start", Usage: "index of the first sentence to show"},
			&cli.IntFlag{Name: "n", Value: -1, Usage: "number of sentences to show (-1 for all)"},
		},
		Action: func(c *cli.Context) error {
			doc, err := a.loadDoc(c)
			if err != nil {
				return err
			}

			r := render.NewRenderer(a.ui.Out)
			r.HasColor = !c.Bool("no-color")
			r.HasPrefix = true
			for _, s := range sentenceRange(doc, c.Int("start"), c.Int("n")) {
				r.Sentence(s)
			}
			return nil
		},
	}
}

// sentenceRange returns count sentences of doc from start. A negative count
// means all.
func sentenceRange(doc *sent.Doc, start, count int) []*sent.Sentence {
	if start < 0 {
		start = 0
	}
	if start >= len(doc.Sentences) {
		return nil
	}

	sentences := doc.Sentences[start:]
	if count >= 0 && count < len(sentences) {
		sentences = sentences[:count]
	}
	return sentences
}
