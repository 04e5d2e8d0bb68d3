package annotate

import (
	"fmt"

	"github.com/revelaction/annotext/element"
	"github.com/revelaction/annotext/logging"
	"github.com/revelaction/annotext/sentence"
)

// signature identifies a mention by its sentence and head token.
type signature struct {
	sentence int
	token    int
}

func headSignature(m *sentence.Mention) signature {
	return signature{sentence: m.SentenceID, token: m.Head.ID}
}

// readChains converts the coreference chains of the markup. Chains emptied
// by the long mention filter are dropped.
func (r *build) readChains(markup *element.Element) ([]*sentence.Reference, error) {
	container := markup.Find("coreference")
	if container == nil {
		return nil, nil
	}

	var chains []*sentence.Reference
	for _, chainEl := range container.Children {
		if !isNamed(chainEl, "coreference") {
			continue
		}

		var (
			mentions       []*sentence.Mention
			representative *sentence.Mention
		)

		for _, mEl := range chainEl.FindAll("mention") {
			m, err := r.readMention(mEl)
			if err != nil {
				return nil, err
			}

			if r.opts.ExcludeLongMentions && len(m.Tokens) > r.opts.LongMentionThreshold {
				continue
			}

			if mEl.HasAttr("representative") {
				representative = m
			}
			mentions = append(mentions, m)
		}

		if len(mentions) == 0 {
			continue
		}

		if representative == nil {
			representative = mentions[0]
		}

		chains = append(chains, &sentence.Reference{
			ID:             r.newID(),
			Mentions:       mentions,
			Representative: representative,
		})
	}

	return chains, nil
}

// readMention converts a chain mention. Sentence, start and head are
// 1-based, end is exclusive.
func (r *build) readMention(mEl *element.Element) (*sentence.Mention, error) {
	sid, err := intChild(mEl, "sentence")
	if err != nil {
		return nil, fmt.Errorf("coreference: %w", err)
	}

	s := r.doc.Sentence(sid - 1)
	if s == nil {
		return nil, fmt.Errorf("%w: coreference: sentence %d out of range", ErrMalformed, sid)
	}

	start, err := intChild(mEl, "start")
	if err != nil {
		return nil, fmt.Errorf("coreference: %w", err)
	}
	end, err := intChild(mEl, "end")
	if err != nil {
		return nil, fmt.Errorf("coreference: %w", err)
	}
	head, err := intChild(mEl, "head")
	if err != nil {
		return nil, fmt.Errorf("coreference: %w", err)
	}

	if start < 1 || end <= start || end-1 > len(s.Tokens) {
		return nil, fmt.Errorf("%w: coreference: sentence %d: span [%d,%d) out of range", ErrMalformed, sid, start, end)
	}
	if head < 1 || head > len(s.Tokens) {
		return nil, fmt.Errorf("%w: coreference: sentence %d: head %d out of range", ErrMalformed, sid, head)
	}

	return sentence.NewMention(s.Tokens[start-1:end-1], s.Tokens[head-1], sentence.OriginCoref), nil
}

// readCoreferences merges the coreference chains with the entity spans of
// the sentences into the document references, then links mentions, tokens
// and sentences to them.
func (r *build) readCoreferences(markup *element.Element) error {
	chains, err := r.readChains(markup)
	if err != nil {
		return err
	}

	entitySigs := map[signature]bool{}
	for _, s := range r.doc.Sentences {
		for _, e := range s.Entities {
			entitySigs[headSignature(e)] = true
		}
	}

	covered := map[signature]bool{}
	for _, c := range chains {
		for _, m := range c.Mentions {
			for _, t := range m.Tokens {
				covered[signature{sentence: m.SentenceID, token: t.ID}] = true
			}
		}
	}

	var refs []*sentence.Reference
	for _, c := range chains {
		if r.opts.ExcludeNonNERCoreferences && !entitySigs[headSignature(c.Representative)] {
			continue
		}
		refs = append(refs, c)
	}

	novel := 0
	for _, s := range r.doc.Sentences {
		for _, e := range s.Entities {
			if covered[headSignature(e)] {
				continue
			}
			refs = append(refs, sentence.NewReference(r.newID(), e))
			novel++
		}
	}

	for _, ref := range refs {
		r.attach(ref)
	}

	r.log.Debug("references normalized",
		logging.F("chains", len(chains)),
		logging.F("novel_entities", novel),
		logging.F("references", len(refs)),
	)

	return nil
}

// attach appends ref to the document and links its mentions back to it,
// to their tokens and to their sentences.
func (r *build) attach(ref *sentence.Reference) {
	r.doc.References = append(r.doc.References, ref)

	for _, m := range ref.Mentions {
		m.Reference = ref
		for _, t := range m.Tokens {
			t.Mentions = append(t.Mentions, m)
		}

		s := r.doc.Sentence(m.SentenceID)
		s.Mentions = append(s.Mentions, m)
		if !s.HasReference(ref) {
			s.References = append(s.References, ref)
		}
	}
}
