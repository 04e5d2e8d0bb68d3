package annotate

import (
	"github.com/revelaction/annotext/sentence"
)

// ordinalTypes are the entity types dropped by Options.ExcludeOrdinalNER.
var ordinalTypes = map[string]bool{
	"TIME":     true,
	"DATE":     true,
	"NUMBER":   true,
	"DURATION": true,
	"PERCENT":  true,
	"SET":      true,
	"ORDINAL":  true,
	"MONEY":    true,
}

// readEntities groups runs of tokens with the same entity type into entity
// mentions. Spans without a head are dropped, and each token of a kept span
// records the span index.
func readEntities(s *sentence.Sentence, excludeOrdinal bool) {
	var (
		spans [][]*sentence.Token
		cur   []*sentence.Token
		last  string
	)

	for _, t := range s.Tokens {
		t.Entity = sentence.NoEntity

		ner := t.NER
		if excludeOrdinal && ordinalTypes[ner] {
			ner = ""
		}

		switch {
		case ner == "":
			if cur != nil {
				spans = append(spans, cur)
				cur = nil
			}
		case ner == last && cur != nil:
			cur = append(cur, t)
		default:
			if cur != nil {
				spans = append(spans, cur)
			}
			cur = []*sentence.Token{t}
		}

		last = ner
	}

	if cur != nil {
		spans = append(spans, cur)
	}

	s.Entities = nil
	for _, span := range spans {
		head := FindHead(span)
		if head == nil {
			continue
		}

		for _, t := range span {
			t.Entity = len(s.Entities)
		}
		s.Entities = append(s.Entities, sentence.NewMention(span, head, sentence.OriginEntity))
	}
}
