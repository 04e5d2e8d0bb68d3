package annotate

import (
	"fmt"

	"github.com/revelaction/annotext/element"
	"github.com/revelaction/annotext/sentence"
)

// readDependencies links the tokens of s with the dependency edges of the
// requested kind. Edges that would close a cycle are skipped; their count
// is returned.
func readDependencies(s *sentence.Sentence, sentEl *element.Element, kind DependencyKind) (int, error) {
	depsEl := sentEl.FindWhere("dependencies", "type", kind.Element())
	if depsEl == nil {
		return 0, fmt.Errorf("%w: sentence %d: no %s", ErrMalformed, s.ID+1, kind.Element())
	}

	dropped := 0
	for _, depEl := range depsEl.FindAll("dep") {
		rel, ok := depEl.Attr("type")
		if !ok {
			return 0, fmt.Errorf("%w: sentence %d: dep without type", ErrMalformed, s.ID+1)
		}

		gov, err := depIndex(s, depEl, "governor", true)
		if err != nil {
			return 0, err
		}
		dep, err := depIndex(s, depEl, "dependent", false)
		if err != nil {
			return 0, err
		}

		if gov < 0 {
			setRoot(s, dep)
			continue
		}

		if descendants(s, dep)[gov] {
			dropped++
			continue
		}

		s.Tokens[gov].Children = append(s.Tokens[gov].Children, sentence.Edge{Relation: rel, Token: dep})
		s.Tokens[dep].Parents = append(s.Tokens[dep].Parents, sentence.Edge{Relation: rel, Token: gov})
	}

	return dropped, nil
}

// depIndex returns the 0-based token index of the governor or dependent of
// a dep element. A governor at or below the virtual root returns -1.
func depIndex(s *sentence.Sentence, depEl *element.Element, name string, root bool) (int, error) {
	el := depEl.Child(name)
	if el == nil {
		return 0, fmt.Errorf("%w: sentence %d: dep without %s", ErrMalformed, s.ID+1, name)
	}

	idx, err := intAttr(el, "idx")
	if err != nil {
		return 0, fmt.Errorf("sentence %d: %w", s.ID+1, err)
	}

	if root && idx <= 0 {
		return -1, nil
	}

	if idx < 1 || idx > len(s.Tokens) {
		return 0, fmt.Errorf("%w: sentence %d: %s idx %d out of range", ErrMalformed, s.ID+1, name, idx)
	}

	return idx - 1, nil
}

// setRoot marks the token as the sentence root and removes its parent
// edges on both ends.
func setRoot(s *sentence.Sentence, id int) {
	s.Root = id

	tok := s.Tokens[id]
	for _, p := range tok.Parents {
		gov := s.Tokens[p.Token]
		kept := gov.Children[:0]
		for _, c := range gov.Children {
			if c.Token != id {
				kept = append(kept, c)
			}
		}
		gov.Children = kept
	}
	tok.Parents = nil
}

// descendants returns the ids reachable from id through child edges, id
// included.
func descendants(s *sentence.Sentence, id int) map[int]bool {
	seen := map[int]bool{id: true}
	stack := []int{id}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, c := range s.Tokens[cur].Children {
			if seen[c.Token] {
				continue
			}
			seen[c.Token] = true
			stack = append(stack, c.Token)
		}
	}

	return seen
}
