package sentence

// ShortestPath returns the tokens on a shortest dependency path from source
// to target, both ends included. Edges are followed in both directions. It
// returns nil when target is unreachable or either token is not part of s.
func (s *Sentence) ShortestPath(source, target *Token) []*Token {
	if !s.owns(source) || !s.owns(target) {
		return nil
	}

	prev := make([]int, len(s.Tokens))
	for i := range prev {
		prev[i] = -1
	}

	seen := make([]bool, len(s.Tokens))
	seen[source.ID] = true
	queue := []int{source.ID}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == target.ID {
			return s.traceBack(prev, cur)
		}

		tok := s.Tokens[cur]
		next := make([]Edge, 0, len(tok.Children)+len(tok.Parents))
		next = append(next, tok.Children...)
		next = append(next, tok.Parents...)

		for _, e := range next {
			if seen[e.Token] {
				continue
			}
			seen[e.Token] = true
			prev[e.Token] = cur
			queue = append(queue, e.Token)
		}
	}

	return nil
}

func (s *Sentence) traceBack(prev []int, last int) []*Token {
	var ids []int
	for cur := last; cur != -1; cur = prev[cur] {
		ids = append(ids, cur)
	}

	path := make([]*Token, len(ids))
	for i, id := range ids {
		path[len(ids)-1-i] = s.Tokens[id]
	}
	return path
}

func (s *Sentence) owns(t *Token) bool {
	return t != nil && t.ID >= 0 && t.ID < len(s.Tokens) && s.Tokens[t.ID] == t
}
