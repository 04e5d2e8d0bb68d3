package main

import (
	"fmt"
	"sort"

	"github.com/revelaction/annotext/stat"
	"github.com/urfave/cli/v2"
)

func statCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "show document statistics",
		ArgsUsage: "<source>",
		Flags:     []cli.Flag{feedFlag()},
		Action: func(c *cli.Context) error {
			doc, err := a.loadDoc(c)
			if err != nil {
				return err
			}

			hdl := stat.NewHandler()
			hdl.Aggregate(doc)
			printStats(a.ui, hdl.Get())
			return nil
		},
	}
}

func printStats(ui UI, stats stat.Stats) {
	fmt.Fprintf(ui.Out, "Num sentences %d, num tokens %d, num tokens per sentence %d, sentences without root %d\n",
		stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean, stats.NumRootless)
	fmt.Fprintf(ui.Out, "Num entities %d, num references %d, num mentions %d, num disambiguated %d\n",
		stats.NumEntities, stats.NumReferences, stats.NumMentions, stats.NumDisambiguated)

	origins := make([]string, 0, len(stats.MentionsPerOrigin))
	for o := range stats.MentionsPerOrigin {
		origins = append(origins, o)
	}
	sort.Strings(origins)
	for _, o := range origins {
		fmt.Fprintf(ui.Out, "\t%-8s %d\n", o, stats.MentionsPerOrigin[o])
	}
}
