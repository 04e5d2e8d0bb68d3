package main

import (
	"fmt"
	"io"
	"os"

	"github.com/revelaction/annotext/annotate"
	"github.com/revelaction/annotext/config"
	"github.com/revelaction/annotext/logging"
	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// app holds what the commands share once the global flags are read.
type app struct {
	ui      UI
	cfg     *config.Config
	log     logging.Logger
	builder *annotate.Builder
	pool    Pool
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "annotext: %v\n", err)
}

func newApp(ui UI) *cli.App {
	a := &app{ui: ui}

	return &cli.App{
		Name:                 "annotext",
		Usage:                "build and browse annotation graphs from CoreNLP markup and AIDA linking feeds",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		HideVersion:          true,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file (default ~/.annotext/config.yaml)",
			},
			&cli.StringFlag{
				Name:    "storage",
				Aliases: []string{"s"},
				Usage:   "SQLite file or directory of markup files",
			},
			&cli.StringFlag{
				Name:  "dependencies",
				Usage: "dependency kind: basic, collapsed or collapsed-ccprocessed",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "debug logging",
			},
		},
		Before: a.setup,
		After:  a.teardown,
		Commands: []*cli.Command{
			docCommand(a),
			sentenceCommand(a),
			depsCommand(a),
			treeCommand(a),
			refsCommand(a),
			pathCommand(a),
			exportCommand(a),
			statCommand(a),
			inspectCommand(a),
			importCommand(a),
			lsCommand(a),
			labelsCommand(a),
			linksCommand(a),
			versionCommand(a),
			bashCommand(a),
		},
	}
}
