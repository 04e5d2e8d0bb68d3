package render

import (
	"fmt"
	"io"
	"strings"

	sent "github.com/revelaction/annotext/sentence"
)

var (
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Green256  = "\033[1;38;5;70m"
)

// Renderer writes human readable views of a document to W.
type Renderer struct {
	W io.Writer

	// HasColor highlights mention tokens: resolved references in green,
	// the rest in yellow.
	HasColor bool

	// HasPrefix prepends the sentence id to each line of the text view.
	HasPrefix bool
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w}
}

// Doc writes the text view of doc, one sentence per line.
func (r *Renderer) Doc(doc *sent.Doc) {
	for _, s := range doc.Sentences {
		r.Sentence(s)
	}
}

// Sentence writes the text of s on one line.
func (r *Renderer) Sentence(s *sent.Sentence) {
	prefix := ""
	if r.HasPrefix {
		prefix = PrefixFuncIconHand(s)
	}

	fmt.Fprintf(r.W, "%s%s\n", prefix, r.SentenceString(s))
}

// SentenceString returns the text of s with the original spacing between
// tokens, recovered from their character offsets.
func (r *Renderer) SentenceString(s *sent.Sentence) string {
	var str strings.Builder
	var last *sent.Token
	for _, token := range s.Tokens {
		if last != nil {
			// paragraph breaks collapse to one space
			gap := token.Begin - last.End
			switch {
			case gap > 0 && gap < 80:
				str.WriteString(strings.Repeat(" ", gap))
			case gap > 0:
				str.WriteString(" ")
			}
		}

		str.WriteString(colorToken(token, r.HasColor))
		last = token
	}

	return str.String()
}

func PrefixFuncIconHand(s *sent.Sentence) string {
	return fmt.Sprintf("%2d ✍  ", s.ID)
}

func colorToken(token *sent.Token, hasColor bool) string {
	if !hasColor || len(token.Mentions) == 0 {
		return token.Word
	}

	for _, m := range token.Mentions {
		if m.Reference != nil && m.Reference.Resolved {
			return Green256 + token.Word + Off
		}
	}

	return Yellow256 + token.Word + Off
}

// Tokens writes the token table of s.
func (r *Renderer) Tokens(s *sent.Sentence) {
	fmt.Fprint(r.W, s.String())
}

// DepTree writes the dependency tree of s.
func (r *Renderer) DepTree(s *sent.Sentence) {
	fmt.Fprint(r.W, DepTreeString(s))
}

// DepTreeString renders the dependency tree of s from its root token: the
// root line, then one line per edge, indented two spaces per level, as
// "<relation> token".
func DepTreeString(s *sent.Sentence) string {
	root := s.RootToken()
	if root == nil {
		return "[no root]\n"
	}

	var b strings.Builder
	b.WriteString(root.String() + "\n")
	depSubtree(&b, s, root, 0)
	return b.String()
}

func depSubtree(b *strings.Builder, s *sent.Sentence, token *sent.Token, depth int) {
	depth++
	for _, e := range token.Children {
		child := s.Tokens[e.Token]
		fmt.Fprintf(b, "%s<%s> %s\n", strings.Repeat("  ", depth), e.Relation, child)
		depSubtree(b, s, child, depth)
	}
}

// Tree writes the constituency tree of s.
func (r *Renderer) Tree(s *sent.Sentence) {
	if s.Tree == nil {
		fmt.Fprintln(r.W, "[no parse]")
		return
	}

	fmt.Fprint(r.W, TreeString(s.Tree))
}

// TreeString renders a constituency subtree, one node per line indented two
// spaces per depth level: "TAG :" for phrases, "TAG : word" for leaves.
func TreeString(n *sent.Node) string {
	var b strings.Builder
	treeLines(&b, n)
	return b.String()
}

func treeLines(b *strings.Builder, n *sent.Node) {
	indent := strings.Repeat("  ", n.Depth)
	if n.IsLeaf() {
		word := ""
		if n.Token != nil {
			word = n.Token.Word
		}
		fmt.Fprintf(b, "%s%s : %s\n", indent, n.Tag, word)
		return
	}

	fmt.Fprintf(b, "%s%s :\n", indent, n.Tag)
	for _, c := range n.Children {
		treeLines(b, c)
	}
}

// References writes each reference with its mentions.
func (r *Renderer) References(refs []*sent.Reference) {
	for _, ref := range refs {
		fmt.Fprint(r.W, r.ReferenceString(ref))
	}
}

// ReferenceString renders a reference header line followed by one
// indented line per mention. The representative mention is starred.
func (r *Renderer) ReferenceString(ref *sent.Reference) string {
	var b strings.Builder

	title := ref.Representative.Text()
	if r.HasColor && ref.Resolved {
		title = Green256 + title + Off
	}

	fmt.Fprintf(&b, "#%d %s", ref.ID, title)
	if ref.Resolved {
		fmt.Fprintf(&b, " %s", ref.KBID)
		if len(ref.Types) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(ref.Types, ", "))
		}
	}
	b.WriteString("\n")

	for _, m := range ref.Mentions {
		mark := " "
		if m == ref.Representative {
			mark = "*"
		}

		fmt.Fprintf(&b, "\t%s s%d [%d,%d] %s (%s)", mark, m.SentenceID, m.Start, m.End, m.Text(), m.Origin)
		if m.Linked {
			fmt.Fprintf(&b, " %s %.2f", m.KBID, m.Score)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Path writes the tokens of a dependency path on one line.
func (r *Renderer) Path(tokens []*sent.Token) {
	if len(tokens) == 0 {
		fmt.Fprintln(r.W, "[no path]")
		return
	}

	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = fmt.Sprintf("%s(%d)", t.Word, t.ID)
	}
	fmt.Fprintln(r.W, strings.Join(words, " - "))
}
