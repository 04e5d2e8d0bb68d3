package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/revelaction/annotext/annotate"
	"github.com/revelaction/annotext/config"
	"github.com/revelaction/annotext/logging"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
	"github.com/revelaction/annotext/storage/filesystem"
	"github.com/revelaction/annotext/storage/sqlite/zombiezen"
	"github.com/urfave/cli/v2"
)

// setup loads the configuration, applies the global flags on top and
// creates the logger and the document builder.
func (a *app) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("storage") {
		cfg.Storage.Path = c.String("storage")
	}

	if c.IsSet("dependencies") {
		cfg.Build.Dependencies = annotate.DependencyKind(c.String("dependencies"))
	}

	if c.Bool("debug") {
		cfg.Log.Level = logging.LevelDebug
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := cfg.Logging()
	lc.Output = a.ui.Err

	a.cfg = cfg
	a.log = logging.NewLogger(lc)

	a.builder, err = annotate.New(cfg.Build, annotate.WithLogger(a.log))
	return err
}

func (a *app) teardown(c *cli.Context) error {
	return a.pool.Close()
}

// NewDocRepository opens the storage at path: a directory of markup files or
// a SQLite database.
func NewDocRepository(p *Pool, path string, build filesystem.BuildFunc) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path, build)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func (a *app) repository() (storage.DocRepository, error) {
	return NewDocRepository(&a.pool, a.cfg.StoragePath(), a.build)
}

// build builds the document of src.
func (a *app) build(src storage.Source) (*sent.Doc, error) {
	var feed io.Reader
	if src.HasFeed() {
		feed = bytes.NewReader(src.Feed)
	}

	doc, err := a.builder.Read(bytes.NewReader(src.Markup), feed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Title, err)
	}

	doc.Id = src.Id
	doc.Title = src.Title
	doc.Labels = src.Labels
	return doc, nil
}

// source resolves a command argument: a numeric id is read from the
// storage, anything else is a markup file path. feedPath, when given,
// replaces the feed of the source.
func (a *app) source(arg, feedPath string) (storage.Source, error) {
	var src storage.Source

	if id, err := strconv.Atoi(arg); err == nil {
		repo, err := a.repository()
		if err != nil {
			return src, err
		}

		src, err = repo.Read(id)
		if err != nil {
			return src, err
		}
	} else {
		src, err = filesystem.ReadSource(arg, 0)
		if err != nil {
			absPath, _ := filepath.Abs(arg)
			return src, fmt.Errorf("filesystem document %q: %w", absPath, err)
		}
	}

	if feedPath != "" {
		feed, err := os.ReadFile(feedPath)
		if err != nil {
			return src, fmt.Errorf("IO error: %w", err)
		}
		src.Feed = feed
	}

	return src, nil
}

// loadDoc builds the document named by the first argument of c.
func (a *app) loadDoc(c *cli.Context) (*sent.Doc, error) {
	arg := c.Args().First()
	if arg == "" {
		return nil, errors.New("missing <source>: markup file path or stored document id")
	}

	src, err := a.source(arg, c.String("feed"))
	if err != nil {
		return nil, err
	}

	return a.build(src)
}

// loadSentence builds the document of the first argument and returns the
// sentence with the id given as second argument.
func (a *app) loadSentence(c *cli.Context) (*sent.Sentence, error) {
	if c.NArg() < 2 {
		return nil, errors.New("usage: <source> <sentence id>")
	}

	id, err := intArg(c, 1)
	if err != nil {
		return nil, err
	}

	doc, err := a.loadDoc(c)
	if err != nil {
		return nil, err
	}

	s := doc.Sentence(id)
	if s == nil {
		return nil, fmt.Errorf("sentence index %d out of bounds (0-%d)", id, len(doc.Sentences)-1)
	}
	return s, nil
}

func intArg(c *cli.Context, n int) (int, error) {
	v, err := strconv.Atoi(c.Args().Get(n))
	if err != nil {
		return 0, fmt.Errorf("argument %d: %q is not a number", n+1, c.Args().Get(n))
	}
	return v, nil
}

// feedFlag is shared by the commands that build a document.
func feedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "feed",
		Aliases: []string{"f"},
		Usage:   "linking feed file (default: sibling <name>.json of the markup)",
	}
}

func noColorFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-color",
		Usage: "do not highlight mentions",
	}
}
