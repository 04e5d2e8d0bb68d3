package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/storage"
)

// MarkupExt and FeedExt are the extensions of the annotation markup file and
// of its optional sibling linking feed.
const (
	MarkupExt = ".xml"
	FeedExt   = ".json"
)

// BuildFunc builds the document of a source.
type BuildFunc func(src storage.Source) (*sent.Doc, error)

// DocStore is a read-only store over a directory of markup files, each with
// an optional feed file of the same name.
type DocStore struct {
	docDir string
	build  BuildFunc

	docs []storage.Source

	// link index, filled by Preload
	links  map[string][]storage.Link
	loaded bool
}

var _ storage.DocReader = (*DocStore)(nil)
var _ storage.DocWriter = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. build is needed only
// for Links and Preload.
func NewDocStore(docDir string, build BuildFunc) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	docs := make([]storage.Source, 0, len(files))

	idx := 0
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != MarkupExt {
			continue
		}

		docs = append(docs, storage.Source{
			Id:    idx,
			Title: strings.TrimSuffix(file.Name(), MarkupExt),
		})
		idx++
	}

	return &DocStore{
		docDir: docDir,
		build:  build,
		docs:   docs,
	}, nil
}

// List returns all documents. Files carry no labels, so a non empty
// labelMatch matches nothing.
func (h *DocStore) List(labelMatch string) ([]storage.Source, error) {
	if labelMatch != "" {
		return []storage.Source{}, nil
	}
	return h.docs, nil
}

func (h *DocStore) Read(id int) (storage.Source, error) {
	if id < 0 || id >= len(h.docs) {
		return storage.Source{}, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}

	src := h.docs[id]
	return ReadSource(filepath.Join(h.docDir, src.Title+MarkupExt), src.Id)
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	return []string{}, nil
}

// Preload builds every document and indexes its links.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	if h.build == nil {
		return fmt.Errorf("filesystem store: no document builder")
	}

	links := map[string][]storage.Link{}
	total := len(h.docs)
	for i, d := range h.docs {
		if cb != nil {
			cb(i+1, total, d.Title)
		}

		src, err := h.Read(d.Id)
		if err != nil {
			return err
		}

		doc, err := h.build(src)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Title, err)
		}

		for _, l := range storage.LinksOf(d.Id, d.Title, doc) {
			links[l.KBID] = append(links[l.KBID], l)
		}
	}

	h.links = links
	h.loaded = true
	return nil
}

// Links returns the references resolved to kbid. The first call builds all
// documents.
func (h *DocStore) Links(kbid string) ([]storage.Link, error) {
	if !h.loaded {
		if err := h.Preload(nil); err != nil {
			return nil, err
		}
	}

	return h.links[kbid], nil
}

func (h *DocStore) Write(src storage.Source, doc *sent.Doc) (int, error) {
	return 0, storage.ErrReadOnly
}

// ReadSource reads the markup file at path and, when present, its sibling
// feed file.
func ReadSource(path string, id int) (storage.Source, error) {
	markup, err := os.ReadFile(path)
	if err != nil {
		return storage.Source{}, fmt.Errorf("IO error: %w", err)
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	src := storage.Source{
		Id:     id,
		Title:  filepath.Base(base),
		Markup: markup,
	}

	feed, err := os.ReadFile(base + FeedExt)
	switch {
	case err == nil:
		src.Feed = feed
	case !errors.Is(err, fs.ErrNotExist):
		return storage.Source{}, fmt.Errorf("IO error: %w", err)
	}

	return src, nil
}
