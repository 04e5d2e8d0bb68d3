// Package annotate builds the annotated document model from annotation
// markup and an optional entity-linking feed. It reads sentences, tokens,
// dependency and constituency parses, merges coreference chains with named
// entity spans into references, and reconciles feed links with them.
package annotate

import (
	"fmt"
	"io"

	"github.com/revelaction/annotext/aida"
	"github.com/revelaction/annotext/element"
	"github.com/revelaction/annotext/logging"
	"github.com/revelaction/annotext/sentence"
)

// Builder builds documents with a fixed set of options. A Builder holds no
// per-document state and can be reused.
type Builder struct {
	opts    Options
	overlap func(a, b Span) float64
	log     logging.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for build summaries.
func WithLogger(l logging.Logger) BuilderOption {
	return func(b *Builder) {
		b.log = l
	}
}

// New validates opts and returns a Builder. Invalid options return an error
// wrapping ErrConfig.
func New(opts Options, options ...BuilderOption) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	b := &Builder{
		opts:    opts,
		overlap: metrics[opts.OverlapMetric],
		log:     logging.NewNopLogger(),
	}

	for _, o := range options {
		o(b)
	}

	return b, nil
}

// Options returns the effective options of the builder.
func (b *Builder) Options() Options {
	return b.opts
}

// build holds the state of one document build.
type build struct {
	*Builder
	doc    *sentence.Doc
	nextID int
}

func (r *build) newID() int {
	id := r.nextID
	r.nextID++
	return id
}

// Build assembles a document from the markup tree and the optional feed.
func (b *Builder) Build(markup *element.Element, feed *aida.Feed) (*sentence.Doc, error) {
	if markup == nil && feed != nil {
		return nil, fmt.Errorf("%w: a linking feed needs annotation markup", ErrConfig)
	}

	r := &build{Builder: b, doc: sentence.NewDoc()}
	if markup == nil {
		return r.doc, nil
	}

	if err := r.readSentences(markup); err != nil {
		return nil, err
	}

	if err := r.readCoreferences(markup); err != nil {
		return nil, err
	}

	if feed != nil {
		if err := r.link(feed); err != nil {
			return nil, err
		}
	}

	b.log.Debug("document built",
		logging.F("sentences", len(r.doc.Sentences)),
		logging.F("tokens", len(r.doc.Tokens)),
		logging.F("references", len(r.doc.References)),
		logging.F("disambiguated", len(r.doc.Disambiguated)),
	)

	return r.doc, nil
}

// Read decodes the markup and the optional feed and builds the document. A
// nil feed builds without linking.
func Read(markup, feed io.Reader, opts Options) (*sentence.Doc, error) {
	b, err := New(opts)
	if err != nil {
		return nil, err
	}

	return b.Read(markup, feed)
}

// Read is the package level Read with the builder options.
func (b *Builder) Read(markup, feed io.Reader) (*sentence.Doc, error) {
	var (
		root *element.Element
		f    *aida.Feed
		err  error
	)

	if markup != nil {
		root, err = element.Parse(markup)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	if feed != nil {
		f, err = aida.Parse(feed)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	return b.Build(root, f)
}

func (r *build) readSentences(markup *element.Element) error {
	container := markup.Find("sentences")
	if container == nil {
		return nil
	}

	for _, sentEl := range container.Children {
		if !isNamed(sentEl, "sentence") {
			continue
		}

		s, err := r.readSentence(sentEl, len(r.doc.Sentences))
		if err != nil {
			return err
		}

		r.doc.AddSentence(s)
	}

	return nil
}

func (r *build) readSentence(sentEl *element.Element, pos int) (*sentence.Sentence, error) {
	if sentEl.HasAttr("id") {
		id, err := intAttr(sentEl, "id")
		if err != nil {
			return nil, err
		}
		if id != pos+1 {
			return nil, fmt.Errorf("%w: sentence id %d out of sequence", ErrMalformed, id)
		}
	}

	tokens, err := readTokens(sentEl, pos)
	if err != nil {
		return nil, err
	}

	s := &sentence.Sentence{ID: pos, Tokens: tokens, Root: sentence.NoRoot}

	if err := readConstituency(s, sentEl); err != nil {
		return nil, err
	}

	dropped, err := readDependencies(s, sentEl, r.opts.Dependencies)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		r.log.Debug("cyclic dependencies dropped", logging.F("sentence", s.ID), logging.F("edges", dropped))
	}

	readEntities(s, r.opts.ExcludeOrdinalNER)

	return s, nil
}
