package annotate

import (
	"testing"

	"github.com/revelaction/annotext/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCoreferences(t *testing.T) {
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, obamaChains), "")

	require.Len(t, doc.References, 2)

	chain := doc.References[0]
	assert.Equal(t, 0, chain.ID)
	require.Len(t, chain.Mentions, 2)
	assert.Same(t, chain.Mentions[0], chain.Representative)
	assert.Equal(t, "President Obama", chain.Representative.Text())
	assert.Equal(t, "Obama", chain.Representative.Head.Word)
	assert.Equal(t, sentence.OriginCoref, chain.Representative.Origin)

	he := chain.Mentions[1]
	assert.Equal(t, 1, he.SentenceID)
	assert.Equal(t, 0, he.Start)
	assert.Equal(t, 0, he.End)
	assert.Equal(t, []string{"He"}, words(he.Tokens))

	// Michelle has no chain and becomes a reference of its own
	novel := doc.References[1]
	assert.Equal(t, 1, novel.ID)
	require.Len(t, novel.Mentions, 1)
	assert.Equal(t, sentence.OriginEntity, novel.Representative.Origin)
	assert.Equal(t, "Michelle", novel.Representative.Text())
}

func TestReferenceBackLinks(t *testing.T) {
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, obamaChains), "")
	chain := doc.References[0]

	for _, ref := range doc.References {
		for _, m := range ref.Mentions {
			assert.Same(t, ref, m.Reference)
			for _, tk := range m.Tokens {
				assert.Contains(t, tk.Mentions, m)
			}
			assert.Contains(t, doc.Sentences[m.SentenceID].Mentions, m)
		}
	}

	assert.Equal(t, []*sentence.Reference{chain}, doc.Sentences[0].References)
	assert.Equal(t, []*sentence.Reference{chain}, doc.Sentences[1].References)
	assert.Equal(t, []*sentence.Reference{doc.References[1]}, doc.Sentences[2].References)
	assert.Len(t, doc.Sentences[0].Tokens[1].Mentions, 1)
	assert.Empty(t, doc.Sentences[0].Tokens[2].Mentions)
}

func TestReferenceProperties(t *testing.T) {
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, obamaChains), obamaFeed)

	ids := map[int]bool{}
	for _, ref := range doc.References {
		assert.False(t, ids[ref.ID], "duplicate reference id %d", ref.ID)
		ids[ref.ID] = true

		require.NotEmpty(t, ref.Mentions)
		assert.Contains(t, ref.Mentions, ref.Representative)

		for _, m := range ref.Mentions {
			lo, hi := m.Tokens[0].ID, m.Tokens[0].ID
			for _, tk := range m.Tokens {
				lo = min(lo, tk.ID)
				hi = max(hi, tk.ID)
			}
			assert.Equal(t, lo, m.Start)
			assert.Equal(t, hi, m.End)
		}
	}

	// every entity is reachable through some reference
	for _, s := range doc.Sentences {
		for _, e := range s.Entities {
			assert.NotEmpty(t, e.Head.Mentions, "entity %q not covered", e.Text())
		}
	}
}

func TestRepresentativeDefaultsToFirst(t *testing.T) {
	chains := [][]mentionXML{{
		{sentence: 2, start: 1, end: 2, head: 1},
		{sentence: 1, start: 1, end: 3, head: 2},
	}}
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, chains), "")
	assert.Equal(t, "He", doc.References[0].Representative.Text())

	chains[0][1].representative = true
	doc = readDoc(t, DefaultOptions(), markup(obamaSentences, chains), "")
	assert.Equal(t, "President Obama", doc.References[0].Representative.Text())
}

func TestExcludeLongMentions(t *testing.T) {
	chains := [][]mentionXML{
		{
			{sentence: 1, start: 1, end: 5, head: 3},
			{sentence: 2, start: 1, end: 2, head: 1, representative: true},
		},
		{
			{sentence: 1, start: 1, end: 5, head: 3},
		},
	}
	xml := markup(obamaSentences, chains)

	doc := readDoc(t, DefaultOptions(), xml, "")
	assert.Len(t, doc.References[0].Mentions, 2)
	assert.Len(t, doc.References, 3)

	doc = readDoc(t, Options{ExcludeLongMentions: true, LongMentionThreshold: 3}, xml, "")
	require.Len(t, doc.References[0].Mentions, 1)
	assert.Equal(t, "He", doc.References[0].Representative.Text())

	// the emptied chain is gone and President Obama is no longer covered
	require.Len(t, doc.References, 3)
	assert.Equal(t, "President Obama", doc.References[1].Representative.Text())
	assert.Equal(t, "Michelle", doc.References[2].Representative.Text())
	assert.Equal(t, []int{0, 1, 2}, []int{doc.References[0].ID, doc.References[1].ID, doc.References[2].ID})
}

func TestExcludeNonNERCoreferences(t *testing.T) {
	chains := [][]mentionXML{
		{{sentence: 2, start: 1, end: 2, head: 1, representative: true}},
		obamaChains[0],
	}
	xml := markup(obamaSentences, chains)

	doc := readDoc(t, DefaultOptions(), xml, "")
	require.Len(t, doc.References, 3)
	assert.Equal(t, "He", doc.References[0].Representative.Text())

	doc = readDoc(t, Options{ExcludeNonNERCoreferences: true}, xml, "")
	require.Len(t, doc.References, 2)
	assert.Equal(t, "President Obama", doc.References[0].Representative.Text())
	assert.Equal(t, 1, doc.References[0].ID)
	assert.Equal(t, "Michelle", doc.References[1].Representative.Text())
	assert.Len(t, doc.Sentences[1].Tokens[0].Mentions, 1)
}

func TestNoCoreferenceContainer(t *testing.T) {
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, nil), "")

	require.Len(t, doc.References, 2)
	for _, ref := range doc.References {
		assert.Equal(t, sentence.OriginEntity, ref.Representative.Origin)
	}
}
