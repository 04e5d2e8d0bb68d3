package sentence

import (
	"strings"
)

// Origin tells which view of the text produced a mention.
type Origin int

const (
	// OriginCoref is a mention of a coreference chain of the markup.
	OriginCoref Origin = iota
	// OriginEntity is a span of consecutive same-typed NER tokens.
	OriginEntity
	// OriginLink is a mention created for an entity-linking feed span that
	// had no mention of its own.
	OriginLink
)

func (o Origin) String() string {
	switch o {
	case OriginCoref:
		return "coref"
	case OriginEntity:
		return "entity"
	case OriginLink:
		return "link"
	}
	return "unknown"
}

// Mention is a token span believed to refer to some entity.
type Mention struct {
	SentenceID int `json:"sent"`

	// Start and End are the first and last token ids of the span (inclusive)
	Start int `json:"start"`
	End   int `json:"end"`

	Tokens []*Token `json:"-"`

	// Head is the span token not dominated by any other span token. It can
	// be nil.
	Head *Token `json:"-"`

	Origin    Origin     `json:"origin"`
	Reference *Reference `json:"-"`

	// Knowledge base link, set by the linking feed
	Linked bool     `json:"linked"`
	KBID   string   `json:"kbid,omitempty"`
	Score  float64  `json:"score,omitempty"`
	Types  []string `json:"types,omitempty"`
}

// NewMention builds a mention over tokens, which must be non-empty and
// belong to one sentence. Start and End are the min and max token ids.
func NewMention(tokens []*Token, head *Token, origin Origin) *Mention {
	m := &Mention{
		SentenceID: tokens[0].SentenceID,
		Start:      tokens[0].ID,
		End:        tokens[0].ID,
		Tokens:     tokens,
		Head:       head,
		Origin:     origin,
	}

	for _, t := range tokens {
		if t.ID < m.Start {
			m.Start = t.ID
		}
		if t.ID > m.End {
			m.End = t.ID
		}
	}

	return m
}

// Key identifies a mention by its span. Two mentions with the same key are
// the same mention.
type Key struct {
	SentenceID int
	Start      int
	End        int
}

// Key returns the span identity of m.
func (m *Mention) Key() Key {
	return Key{SentenceID: m.SentenceID, Start: m.Start, End: m.End}
}

// Text returns the words of the mention joined by spaces.
func (m *Mention) Text() string {
	words := make([]string, len(m.Tokens))
	for i, t := range m.Tokens {
		words[i] = t.Word
	}
	return strings.Join(words, " ")
}

// Range returns the character offset range covered by the mention tokens.
func (m *Mention) Range() (int, int) {
	if len(m.Tokens) == 0 {
		return 0, 0
	}
	return m.Tokens[0].Begin, m.Tokens[len(m.Tokens)-1].End
}

// Link attaches a knowledge base identifier to the mention.
func (m *Mention) Link(kbid string, score float64, types []string) {
	m.Linked = true
	m.KBID = kbid
	m.Score = score
	m.Types = types
}

// Reference is a normalized coreference chain: one or more mentions that
// co-refer, one of them the representative.
type Reference struct {
	ID             int        `json:"id"`
	Mentions       []*Mention `json:"mentions"`
	Representative *Mention   `json:"-"`

	// Set when the linking feed resolved the reference
	Resolved bool     `json:"resolved"`
	KBID     string   `json:"kbid,omitempty"`
	Types    []string `json:"types,omitempty"`
}

// NewReference wraps a single mention into a reference whose representative
// is that mention.
func NewReference(id int, m *Mention) *Reference {
	return &Reference{
		ID:             id,
		Mentions:       []*Mention{m},
		Representative: m,
	}
}

// Resolve records the winning knowledge base identifier.
func (r *Reference) Resolve(kbid string, types []string) {
	r.Resolved = true
	r.KBID = kbid
	r.Types = types
}

// FilterMentionTokens trims tokens to the run between the first and the last
// NER-tagged token. It returns an empty slice when no token has a NER type.
func FilterMentionTokens(tokens []*Token) []*Token {
	first, last := -1, -1
	for i, t := range tokens {
		if t.NER == "" {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}

	if first < 0 {
		return []*Token{}
	}

	return tokens[first : last+1]
}
