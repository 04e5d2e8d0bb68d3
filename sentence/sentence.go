package sentence

import (
	"fmt"
	"strings"
)

const (
	// NoRoot marks a sentence whose dependencies named no root token.
	NoRoot = -1

	// NoEntity marks a token that is not part of an entity span.
	NoEntity = -1
)

// Edge is a labeled dependency link. Token is the index of the other end in
// the owning sentence's Tokens.
type Edge struct {
	Relation string `json:"rel"`
	Token    int    `json:"token"`
}

// Token represents a word of the sentence, with POS, NER and dependency
// links.
type Token struct {
	// The index of the word in the sentence, starting at 0.
	ID         int    `json:"id"`
	SentenceID int    `json:"sent"`
	Word       string `json:"word"`
	Lemma      string `json:"lemma"`
	POS        string `json:"pos"`

	// NER is the named entity type, empty when the token is not an entity.
	NER string `json:"ner,omitempty"`

	// Character offsets [Begin, End) in the original text
	Begin int `json:"begin"`
	End   int `json:"end"`

	Speaker string `json:"speaker,omitempty"`

	Children []Edge `json:"children,omitempty"`
	Parents  []Edge `json:"parents,omitempty"`

	// Entity is the index of the entity span in Sentence.Entities
	Entity int `json:"entity"`

	Mentions []*Mention `json:"-"`

	// Node is the constituency leaf of this token, nil without a parse.
	Node *Node `json:"-"`
}

// IsLinked reports whether the token has any dependency link.
func (t *Token) IsLinked() bool {
	return len(t.Parents) > 0 || len(t.Children) > 0
}

func (t *Token) String() string {
	ner := t.NER
	if ner == "" {
		ner = "-"
	}

	return fmt.Sprintf("%2d: %s (%d,%d) %s %s", t.ID, t.Word, t.Begin, t.End, t.POS, ner)
}

// Node is a constituency tree node. Leaves carry the token they cover.
type Node struct {
	Tag      string  `json:"tag"`
	Depth    int     `json:"depth"`
	Parent   *Node   `json:"-"`
	Children []*Node `json:"children,omitempty"`
	Token    *Token  `json:"-"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns the tokens under n in left to right order.
func (n *Node) Leaves() []*Token {
	if n.IsLeaf() {
		if n.Token == nil {
			return nil
		}
		return []*Token{n.Token}
	}

	var leaves []*Token
	for _, c := range n.Children {
		leaves = append(leaves, c.Leaves()...)
	}
	return leaves
}

// Sentence is an annotated sentence. It owns its tokens and trees.
type Sentence struct {
	ID     int      `json:"id"`
	Tokens []*Token `json:"tokens"`

	// Root is the index of the dependency root token, NoRoot if none.
	Root int `json:"root"`

	// Tree is the constituency root, nil when no parse was supplied.
	Tree *Node `json:"tree,omitempty"`

	Entities   []*Mention   `json:"-"`
	Mentions   []*Mention   `json:"-"`
	References []*Reference `json:"-"`
}

// RootToken returns the dependency root token, or nil.
func (s *Sentence) RootToken() *Token {
	if s.Root < 0 || s.Root >= len(s.Tokens) {
		return nil
	}
	return s.Tokens[s.Root]
}

// Text returns a single-line string made from all the tokens of the
// sentence. Whitespace and certain punctuation get normalized.
func (s *Sentence) Text() string {
	words := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		words[i] = t.Word
	}
	return strings.Join(words, " ")
}

func (s *Sentence) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sentence %d:\n", s.ID)
	for _, t := range s.Tokens {
		fmt.Fprintf(&b, "\t%s\n", t)
	}
	return b.String()
}

// HasReference reports whether r is already linked to the sentence.
func (s *Sentence) HasReference(r *Reference) bool {
	for _, ref := range s.References {
		if ref == r {
			return true
		}
	}
	return false
}

// Doc is an annotated document: sentences, a flat token list, an offset
// index and the normalized coreference references.
type Doc struct {
	Id     int      `json:"id"`
	Title  string   `json:"title,omitempty"`
	Labels []string `json:"labels,omitempty"`

	Sentences []*Sentence `json:"sentences"`

	// Tokens holds every token of the document in order
	Tokens []*Token `json:"-"`

	References []*Reference `json:"references"`

	// Disambiguated holds the references that received a knowledge base
	// identifier from the linking feed.
	Disambiguated []*Reference `json:"-"`

	offsets map[int]*Token
	lastEnd int
}

// NewDoc returns an empty Doc ready for indexing.
func NewDoc() *Doc {
	return &Doc{offsets: map[int]*Token{}}
}

// AddSentence appends s and indexes its tokens by begin offset.
func (d *Doc) AddSentence(s *Sentence) {
	if d.offsets == nil {
		d.offsets = map[int]*Token{}
	}

	d.Sentences = append(d.Sentences, s)
	d.Tokens = append(d.Tokens, s.Tokens...)
	for _, t := range s.Tokens {
		d.offsets[t.Begin] = t
		if t.End > d.lastEnd {
			d.lastEnd = t.End
		}
	}
}

// TokenAt returns the token beginning exactly at offset.
func (d *Doc) TokenAt(offset int) (*Token, bool) {
	t, ok := d.offsets[offset]
	return t, ok
}

// TextEnd returns the largest token end offset of the document.
func (d *Doc) TextEnd() int {
	return d.lastEnd
}

// Sentence returns the sentence with index id, or nil.
func (d *Doc) Sentence(id int) *Sentence {
	if id < 0 || id >= len(d.Sentences) {
		return nil
	}
	return d.Sentences[id]
}

func (d *Doc) String() string {
	parts := make([]string, len(d.Sentences))
	for i, s := range d.Sentences {
		parts[i] = fmt.Sprintf("Sentence %d:\n%s", i, s.Text())
	}
	return strings.Join(parts, "\n\n")
}

