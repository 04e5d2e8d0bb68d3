package storage

import (
	"errors"
	"strings"

	sent "github.com/revelaction/annotext/sentence"
)

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("document not found")

	// ErrReadOnly is returned by stores that cannot persist documents.
	ErrReadOnly = errors.New("read-only storage")
)

// Source is a stored annotation source: the markup and the optional
// linking feed a document is built from.
type Source struct {
	Id     int
	Title  string
	Labels []string

	Markup []byte

	// Feed is empty when the document has no linking feed.
	Feed []byte
}

// HasFeed reports whether the source carries a linking feed.
func (s Source) HasFeed() bool {
	return len(s.Feed) > 0
}

// Link is an entry of the knowledge base link index: a reference of a
// stored document resolved to a knowledge base identifier.
type Link struct {
	KBID        string
	DocId       int
	DocTitle    string
	ReferenceID int

	// Text is the text of the reference representative mention
	Text     string
	Mentions int
}

// LinksOf returns the link index entries of the disambiguated references of
// doc.
func LinksOf(docId int, title string, doc *sent.Doc) []Link {
	links := make([]Link, 0, len(doc.Disambiguated))
	for _, ref := range doc.Disambiguated {
		links = append(links, Link{
			KBID:        ref.KBID,
			DocId:       docId,
			DocTitle:    title,
			ReferenceID: ref.ID,
			Text:        ref.Representative.Text(),
			Mentions:    len(ref.Mentions),
		})
	}
	return links
}

// MatchLabel reports whether labelMatch is empty or contained in one of
// labels.
func MatchLabel(labels []string, labelMatch string) bool {
	if labelMatch == "" {
		return true
	}

	for _, l := range labels {
		if strings.Contains(l, labelMatch) {
			return true
		}
	}
	return false
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Markup, Feed) is not loaded.
	List(labelMatch string) ([]Source, error)

	// Read returns a document source by ID
	Read(id int) (Source, error)

	// Links returns the references resolved to kbid across all documents.
	Links(kbid string) ([]Link, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document source and the link index of its built
	// document. It returns the id of the stored document.
	Write(src Source, doc *sent.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}
