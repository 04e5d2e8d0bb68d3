package render

import (
	"encoding/json"
	"io"

	sent "github.com/revelaction/annotext/sentence"
)

// JSONRenderer writes documents as JSON to a writer.
type JSONRenderer struct {
	W io.Writer

	Indent bool
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the document with its references resolved to plain
// positions.
func (r *JSONRenderer) Render(doc *sent.Doc) error {
	enc := json.NewEncoder(r.W)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(NewDocView(doc))
}

// DocView is the serializable form of a document.
type DocView struct {
	Id         int             `json:"id"`
	Title      string          `json:"title,omitempty"`
	Labels     []string        `json:"labels,omitempty"`
	Sentences  []SentenceView  `json:"sentences"`
	References []ReferenceView `json:"references"`
}

type SentenceView struct {
	ID     int          `json:"id"`
	Text   string       `json:"text"`
	Root   int          `json:"root"`
	Tokens []*sent.Token `json:"tokens"`
	Tree   *NodeView    `json:"tree,omitempty"`
}

type NodeView struct {
	Tag      string      `json:"tag"`
	Token    *int        `json:"token,omitempty"`
	Word     string      `json:"word,omitempty"`
	Children []*NodeView `json:"children,omitempty"`
}

type MentionView struct {
	Sentence int      `json:"sent"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Text     string   `json:"text"`
	Head     int      `json:"head"`
	Origin   string   `json:"origin"`
	KBID     string   `json:"kbid,omitempty"`
	Score    float64  `json:"score,omitempty"`
	Types    []string `json:"types,omitempty"`
}

type ReferenceView struct {
	ID             int           `json:"id"`
	Representative int           `json:"representative"`
	Mentions       []MentionView `json:"mentions"`
	Resolved       bool          `json:"resolved"`
	KBID           string        `json:"kbid,omitempty"`
	Types          []string      `json:"types,omitempty"`
}

func NewDocView(doc *sent.Doc) DocView {
	v := DocView{
		Id:         doc.Id,
		Title:      doc.Title,
		Labels:     doc.Labels,
		Sentences:  make([]SentenceView, len(doc.Sentences)),
		References: make([]ReferenceView, len(doc.References)),
	}

	for i, s := range doc.Sentences {
		v.Sentences[i] = SentenceView{
			ID:     s.ID,
			Text:   s.Text(),
			Root:   s.Root,
			Tokens: s.Tokens,
			Tree:   newNodeView(s.Tree),
		}
	}

	for i, ref := range doc.References {
		rv := ReferenceView{
			ID:       ref.ID,
			Mentions: make([]MentionView, len(ref.Mentions)),
			Resolved: ref.Resolved,
			KBID:     ref.KBID,
			Types:    ref.Types,
		}

		for j, m := range ref.Mentions {
			if m == ref.Representative {
				rv.Representative = j
			}
			rv.Mentions[j] = newMentionView(m)
		}

		v.References[i] = rv
	}

	return v
}

func newMentionView(m *sent.Mention) MentionView {
	head := -1
	if m.Head != nil {
		head = m.Head.ID
	}

	return MentionView{
		Sentence: m.SentenceID,
		Start:    m.Start,
		End:      m.End,
		Text:     m.Text(),
		Head:     head,
		Origin:   m.Origin.String(),
		KBID:     m.KBID,
		Score:    m.Score,
		Types:    m.Types,
	}
}

func newNodeView(n *sent.Node) *NodeView {
	if n == nil {
		return nil
	}

	v := &NodeView{Tag: n.Tag}
	if n.Token != nil {
		id := n.Token.ID
		v.Token = &id
		v.Word = n.Token.Word
	}

	for _, c := range n.Children {
		v.Children = append(v.Children, newNodeView(c))
	}

	return v
}
