package annotate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/revelaction/annotext/element"
	"github.com/revelaction/annotext/sentence"
)

var (
	matchTag        = regexp.MustCompile(`^\(([^\s()]+)\s*`)
	matchEndBracket = regexp.MustCompile(`\s*\)\s*$`)
)

// cursor walks a bracketed parse, handing out the sentence tokens to the
// leaves in order.
type cursor struct {
	sentID int
	tokens []*sentence.Token
	next   int
}

// readConstituency builds the constituency tree of s from the parse
// element. A sentence without parse keeps a nil tree.
func readConstituency(s *sentence.Sentence, sentEl *element.Element) error {
	text, ok := sentEl.ChildText("parse")
	if !ok || text == "" {
		return nil
	}

	c := &cursor{sentID: s.ID, tokens: s.Tokens}
	root, err := c.parse(text, nil, 0)
	if err != nil {
		return err
	}

	if c.next != len(c.tokens) {
		return c.errorf("%d leaves for %d tokens", c.next, len(c.tokens))
	}

	s.Tree = root
	return nil
}

func (c *cursor) parse(text string, parent *sentence.Node, depth int) (*sentence.Node, error) {
	m := matchTag.FindStringSubmatch(text)
	if m == nil {
		return nil, c.errorf("expected (TAG at %q", abbrev(text))
	}

	if !matchEndBracket.MatchString(text) {
		return nil, c.errorf("missing closing bracket at %q", abbrev(text))
	}

	n := &sentence.Node{Tag: m[1], Depth: depth, Parent: parent}

	inner := matchEndBracket.ReplaceAllString(text[len(m[0]):], "")

	if !strings.ContainsAny(inner, "()") {
		if c.next >= len(c.tokens) {
			return nil, c.errorf("more leaves than tokens")
		}
		n.Token = c.tokens[c.next]
		n.Token.Node = n
		c.next++
		return n, nil
	}

	groups, err := c.split(inner)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		child, err := c.parse(g, n, depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}

	return n, nil
}

// split cuts text into its top-level bracketed groups.
func (c *cursor) split(text string) ([]string, error) {
	var (
		groups []string
		cur    strings.Builder
		depth  int
	)

	for _, r := range text {
		if depth == 0 {
			if unicode.IsSpace(r) {
				continue
			}
			if r != '(' {
				return nil, c.errorf("text outside brackets at %q", abbrev(text))
			}
		}

		cur.WriteRune(r)
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}

		if depth < 0 {
			return nil, c.errorf("unbalanced brackets at %q", abbrev(text))
		}

		if depth == 0 {
			groups = append(groups, cur.String())
			cur.Reset()
		}
	}

	if depth != 0 {
		return nil, c.errorf("unbalanced brackets at %q", abbrev(text))
	}

	return groups, nil
}

func (c *cursor) errorf(format string, a ...any) error {
	return fmt.Errorf("%w: sentence %d: parse: %s", ErrMalformed, c.sentID+1, fmt.Sprintf(format, a...))
}

func abbrev(s string) string {
	const n = 30
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
