package annotate

import (
	"fmt"

	"github.com/revelaction/annotext/aida"
	"github.com/revelaction/annotext/logging"
	"github.com/revelaction/annotext/sentence"
)

// link attaches the feed entities to the mentions covering their offset
// ranges, then resolves every reference by majority vote.
func (r *build) link(feed *aida.Feed) error {
	var linked, skipped, created int

	for _, fm := range feed.Mentions {
		kbid, score, ok := fm.Best()
		if !ok {
			skipped++
			continue
		}

		types, ok := feed.Types(kbid)
		if !ok {
			r.log.Debug("feed entity without metadata", logging.F("kbid", kbid), logging.F("offset", fm.Offset))
			skipped++
			continue
		}

		m, isNew, err := r.mentionIn(Span{Begin: fm.Offset, End: fm.End()})
		if err != nil {
			return err
		}
		if m == nil {
			skipped++
			continue
		}
		if isNew {
			created++
		}

		m.Link(kbid, score, types)
		linked++
	}

	for _, ref := range r.doc.References {
		r.resolve(ref, feed)
	}

	r.log.Debug("feed reconciled",
		logging.F("linked", linked),
		logging.F("skipped", skipped),
		logging.F("created", created),
		logging.F("disambiguated", len(r.doc.Disambiguated)),
	)

	return nil
}

// mentionIn returns the mention that best covers target. Without any
// mention in range, a new mention and reference are made from the tokens
// in range. It returns nil when no token lies in range.
func (r *build) mentionIn(target Span) (*sentence.Mention, bool, error) {
	var (
		tokens   []*sentence.Token
		mentions []*sentence.Mention
		seen     = map[sentence.Key]bool{}
	)

	for pointer := target.Begin; pointer < target.End; {
		tok, err := r.tokenFrom(pointer)
		if err != nil {
			return nil, false, err
		}

		if tok.End > target.End {
			break
		}

		// a range never spans sentences
		if len(tokens) > 0 && tok.SentenceID != tokens[0].SentenceID {
			break
		}

		tokens = append(tokens, tok)
		for _, m := range tok.Mentions {
			if seen[m.Key()] {
				continue
			}
			seen[m.Key()] = true
			mentions = append(mentions, m)
		}

		pointer = max(tok.End, tok.Begin+1)
	}

	switch {
	case len(tokens) == 0:
		return nil, false, nil
	case len(mentions) == 1:
		return mentions[0], false, nil
	case len(mentions) > 1:
		return bestOverlap(mentions, target, r.overlap), false, nil
	}

	m := sentence.NewMention(tokens, FindHead(tokens), sentence.OriginLink)
	r.attach(sentence.NewReference(r.newID(), m))
	return m, true, nil
}

// tokenFrom returns the first token beginning at or after offset.
func (r *build) tokenFrom(offset int) (*sentence.Token, error) {
	for p := offset; p < r.doc.TextEnd(); p++ {
		if tok, ok := r.doc.TokenAt(p); ok {
			return tok, nil
		}
	}

	return nil, fmt.Errorf("%w: feed offset %d past the end of the text", ErrMalformed, offset)
}

// resolve sets the knowledge base identifier of ref to the one most of its
// mentions were linked to. Ties go to the highest summed score, then to the
// smallest identifier.
func (r *build) resolve(ref *sentence.Reference, feed *aida.Feed) {
	votes := map[string]int{}
	scores := map[string]float64{}
	for _, m := range ref.Mentions {
		if !m.Linked {
			continue
		}
		votes[m.KBID]++
		scores[m.KBID] += m.Score
	}

	if len(votes) == 0 {
		return
	}

	winner := ""
	for kbid := range votes {
		if winner == "" || beats(kbid, winner, votes, scores) {
			winner = kbid
		}
	}

	types, _ := feed.Types(winner)
	ref.Resolve(winner, types)
	r.doc.Disambiguated = append(r.doc.Disambiguated, ref)
}

func beats(a, b string, votes map[string]int, scores map[string]float64) bool {
	if votes[a] != votes[b] {
		return votes[a] > votes[b]
	}
	if scores[a] != scores[b] {
		return scores[a] > scores[b]
	}
	return a < b
}
