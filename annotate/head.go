package annotate

import (
	"github.com/revelaction/annotext/sentence"
)

// FindHead returns the token of the span that no other span token governs.
// A single token is its own head. Tokens without dependency links are never
// heads. It returns nil when no token qualifies.
func FindHead(tokens []*sentence.Token) *sentence.Token {
	if len(tokens) == 1 {
		return tokens[0]
	}

	in := make(map[int]bool, len(tokens))
	for _, t := range tokens {
		in[t.ID] = true
	}

	for _, t := range tokens {
		if !t.IsLinked() {
			continue
		}

		governed := false
		for _, p := range t.Parents {
			if in[p.Token] {
				governed = true
				break
			}
		}

		if !governed {
			return t
		}
	}

	return nil
}
