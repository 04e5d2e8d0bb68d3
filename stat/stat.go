// Package stat aggregates counts over annotated documents.
package stat

import (
	sent "github.com/revelaction/annotext/sentence"
)

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int

	// TokensPerSentenceDis maps a sentence length to the number of
	// sentences of that length
	TokensPerSentenceDis map[int]int

	NumEntities      int
	NumMentions      int
	NumReferences    int
	NumDisambiguated int

	// MentionsPerOrigin counts reference mentions by origin name
	MentionsPerOrigin map[string]int

	// NumRootless counts sentences without a dependency root
	NumRootless int
}

// Handler accumulates Stats over one or more documents.
type Handler struct {
	stats Stats
}

func NewHandler() *Handler {
	return &Handler{stats: Stats{
		TokensPerSentenceDis: map[int]int{},
		MentionsPerOrigin:    map[string]int{},
	}}
}

// Get returns the stats of the documents aggregated so far.
func (h *Handler) Get() Stats {
	s := h.stats
	if s.NumSentences > 0 {
		s.TokensPerSentenceMean = s.NumTokens / s.NumSentences
	}
	return s
}

// Aggregate adds the counts of doc.
func (h *Handler) Aggregate(doc *sent.Doc) {
	st := &h.stats
	st.NumSentences += len(doc.Sentences)

	for _, s := range doc.Sentences {
		st.NumTokens += len(s.Tokens)
		st.TokensPerSentenceDis[len(s.Tokens)]++
		st.NumEntities += len(s.Entities)

		if s.RootToken() == nil {
			st.NumRootless++
		}
	}

	st.NumReferences += len(doc.References)
	st.NumDisambiguated += len(doc.Disambiguated)
	for _, ref := range doc.References {
		st.NumMentions += len(ref.Mentions)
		for _, m := range ref.Mentions {
			st.MentionsPerOrigin[m.Origin.String()]++
		}
	}
}
