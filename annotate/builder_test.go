package annotate

import (
	"io"
	"strings"
	"testing"

	"github.com/revelaction/annotext/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T, opts Options, xml, feed string) *sentence.Doc {
	t.Helper()

	var f io.Reader
	if feed != "" {
		f = strings.NewReader(feed)
	}

	doc, err := Read(strings.NewReader(xml), f, opts)
	require.NoError(t, err)
	return doc
}

func words(tokens []*sentence.Token) []string {
	w := make([]string, len(tokens))
	for i, t := range tokens {
		w[i] = t.Word
	}
	return w
}

func TestNewRejectsUnknownDependencies(t *testing.T) {
	_, err := New(Options{Dependencies: "enhanced"})
	require.ErrorIs(t, err, ErrConfig)

	// rejected before the markup is looked at
	_, err = Read(strings.NewReader("<not xml"), nil, Options{Dependencies: "enhanced"})
	require.ErrorIs(t, err, ErrConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		valid bool
	}{
		{"zero", Options{}, true},
		{"defaults", DefaultOptions(), true},
		{"basic", Options{Dependencies: Basic}, true},
		{"collapsed", Options{Dependencies: Collapsed}, true},
		{"unknown kind", Options{Dependencies: "enhanced++"}, false},
		{"negative threshold", Options{LongMentionThreshold: -1}, false},
		{"intersection", Options{OverlapMetric: MetricIntersection}, true},
		{"unknown metric", Options{OverlapMetric: "dice"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrConfig)
			}
		})
	}
}

func TestValidateThreshold(t *testing.T) {
	o := Options{ExcludeLongMentions: true}
	require.NoError(t, o.Validate())
	assert.Equal(t, DefaultLongMentionThreshold, o.withDefaults().LongMentionThreshold)

	o.LongMentionThreshold = -3
	err := o.Validate()
	require.ErrorIs(t, err, ErrConfig)
	assert.ErrorContains(t, err, "must not be negative")
}

func TestNewFillsDefaults(t *testing.T) {
	b, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), b.Options())
}

func TestBuildNilInputs(t *testing.T) {
	b, err := New(DefaultOptions())
	require.NoError(t, err)

	doc, err := b.Build(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Sentences)

	_, err = b.Read(nil, strings.NewReader(obamaFeed))
	require.ErrorIs(t, err, ErrConfig)
}

func TestReadTokens(t *testing.T) {
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, nil), "")

	require.Len(t, doc.Sentences, 3)
	require.Len(t, doc.Tokens, 10)

	s := doc.Sentences[0]
	assert.Equal(t, []string{"President", "Obama", "spoke", "."}, words(s.Tokens))
	for i, tk := range s.Tokens {
		assert.Equal(t, i, tk.ID)
		assert.Equal(t, 0, tk.SentenceID)
	}

	obama := s.Tokens[1]
	assert.Equal(t, "obama", obama.Lemma)
	assert.Equal(t, "NNP", obama.POS)
	assert.Equal(t, "PERSON", obama.NER)
	assert.Equal(t, 10, obama.Begin)
	assert.Equal(t, 15, obama.End)
	assert.Empty(t, obama.Speaker)
	assert.Empty(t, s.Tokens[2].NER)

	tk, ok := doc.TokenAt(36)
	require.True(t, ok)
	assert.Equal(t, "Michelle", tk.Word)
	assert.Equal(t, 2, tk.SentenceID)
	assert.Equal(t, 54, doc.TextEnd())
}

func TestReadTokenWordFix(t *testing.T) {
	xml := markup([]sent{{
		tokens: []tok{{"-LRB-", "-LRB-", "", 0}, {"hi", "UH", "", 1}, {"-RRB-", "-RRB-", "", 3}},
		deps:   []dep{{"root", 0, 2}, {"punct", 2, 1}, {"punct", 2, 3}},
	}}, nil)

	doc := readDoc(t, DefaultOptions(), xml, "")
	assert.Equal(t, "( hi )", doc.Sentences[0].Text())
}

func TestReadTokenSpeaker(t *testing.T) {
	xml := `<root><document><sentences><sentence id="1"><tokens>
<token id="1"><word>Hi</word><lemma>hi</lemma><CharacterOffsetBegin>0</CharacterOffsetBegin>
<CharacterOffsetEnd>2</CharacterOffsetEnd><POS>UH</POS><NER>O</NER><Speaker>PER0</Speaker></token>
</tokens><dependencies type="collapsed-ccprocessed-dependencies">
<dep type="root"><governor idx="0">ROOT</governor><dependent idx="1">Hi</dependent></dep>
</dependencies></sentence></sentences></document></root>`

	doc := readDoc(t, DefaultOptions(), xml, "")
	assert.Equal(t, "PER0", doc.Tokens[0].Speaker)
	assert.Equal(t, 0, doc.Sentences[0].Root)
}

func TestReadMalformed(t *testing.T) {
	missingNER := strings.Replace(markup(obamaSentences[:1], nil), "<NER>PERSON</NER>", "", 1)
	badOffset := strings.Replace(markup(obamaSentences[:1], nil), "<CharacterOffsetBegin>10<", "<CharacterOffsetBegin>ten<", 1)
	noDeps := `<root><document><sentences><sentence id="1"><tokens></tokens></sentence></sentences></document></root>`
	outOfRange := markup([]sent{{
		tokens: obamaSentences[1].tokens,
		deps:   []dep{{"nsubj", 2, 9}},
	}}, nil)
	untypedDep := strings.ReplaceAll(markup(obamaSentences[1:2], nil), `<dep type="nsubj">`, "<dep>")
	badChain := markup(obamaSentences, [][]mentionXML{{{sentence: 7, start: 1, end: 2, head: 1}}})
	badParse := markup([]sent{{
		tokens: obamaSentences[1].tokens,
		deps:   obamaSentences[1].deps,
		parse:  "(ROOT (S (NP (PRP He)) (VP (VBD smiled)) (. .))",
	}}, nil)

	tests := []struct {
		name string
		xml  string
	}{
		{"not xml", "<root><document>"},
		{"missing ner", missingNER},
		{"bad offset", badOffset},
		{"no dependencies", noDeps},
		{"dependency out of range", outOfRange},
		{"dependency without type", untypedDep},
		{"chain sentence out of range", badChain},
		{"unbalanced parse", badParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.xml), nil, DefaultOptions())
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadDependencies(t *testing.T) {
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, nil), "")
	s := doc.Sentences[0]

	require.NotNil(t, s.RootToken())
	assert.Equal(t, "spoke", s.RootToken().Word)
	assert.Empty(t, s.RootToken().Parents)

	spoke := s.Tokens[2]
	assert.Equal(t, []sentence.Edge{{Relation: "nsubj", Token: 1}, {Relation: "punct", Token: 3}}, spoke.Children)
	assert.Equal(t, []sentence.Edge{{Relation: "nsubj", Token: 2}}, s.Tokens[1].Parents)
	assert.Equal(t, []sentence.Edge{{Relation: "compound", Token: 1}}, s.Tokens[0].Parents)
}

func TestReadDependenciesKind(t *testing.T) {
	xml := markup(obamaSentences[:1], nil)
	// only the basic representation carries a det edge
	xml = strings.Replace(xml,
		`<dependencies type="basic-dependencies">`,
		`<dependencies type="basic-dependencies"><dep type="dep"><governor idx="4">.</governor><dependent idx="1">President</dependent></dep>`, 1)

	basic := readDoc(t, Options{Dependencies: Basic}, xml, "")
	assert.Len(t, basic.Sentences[0].Tokens[0].Parents, 2)

	collapsed := readDoc(t, Options{Dependencies: CollapsedCCProcessed}, xml, "")
	assert.Len(t, collapsed.Sentences[0].Tokens[0].Parents, 1)
}

func assertAcyclic(t *testing.T, s *sentence.Sentence) {
	t.Helper()
	for _, tk := range s.Tokens {
		for _, c := range tk.Children {
			assert.False(t, descendants(s, c.Token)[tk.ID], "token %d reachable from its child %d", tk.ID, c.Token)
		}
	}
}

func TestDependencyCycleDropped(t *testing.T) {
	xml := markup([]sent{{
		tokens: []tok{{"a", "DT", "", 0}, {"b", "NN", "", 2}, {"c", "NN", "", 4}},
		deps: []dep{
			{"root", 0, 1},
			{"x", 1, 2},
			{"y", 2, 3},
			{"z", 3, 1}, // closes a→b→c→a
			{"w", 2, 2}, // self loop
		},
	}}, nil)

	doc := readDoc(t, DefaultOptions(), xml, "")
	s := doc.Sentences[0]

	assert.Empty(t, s.Tokens[0].Parents)
	assert.Equal(t, []sentence.Edge{{Relation: "y", Token: 2}}, s.Tokens[1].Children)
	assert.Empty(t, s.Tokens[2].Children)
	assertAcyclic(t, s)
}

func TestRootClearsParents(t *testing.T) {
	xml := markup([]sent{{
		tokens: []tok{{"a", "DT", "", 0}, {"b", "NN", "", 2}},
		deps:   []dep{{"det", 2, 1}, {"root", 0, 1}},
	}}, nil)

	doc := readDoc(t, DefaultOptions(), xml, "")
	s := doc.Sentences[0]
	assert.Equal(t, 0, s.Root)
	assert.Empty(t, s.Tokens[0].Parents)
	assert.Empty(t, s.Tokens[1].Children)
}

func TestNoRoot(t *testing.T) {
	xml := markup([]sent{{
		tokens: []tok{{"a", "DT", "", 0}, {"b", "NN", "", 2}},
		deps:   []dep{{"det", 2, 1}},
	}}, nil)

	doc := readDoc(t, DefaultOptions(), xml, "")
	assert.Equal(t, sentence.NoRoot, doc.Sentences[0].Root)
	assert.Nil(t, doc.Sentences[0].RootToken())
}

func TestReadConstituency(t *testing.T) {
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, nil), "")

	s := doc.Sentences[0]
	require.NotNil(t, s.Tree)
	assert.Equal(t, "ROOT", s.Tree.Tag)
	assert.Equal(t, 0, s.Tree.Depth)
	assert.Nil(t, s.Tree.Parent)

	require.Len(t, s.Tree.Children, 1)
	clause := s.Tree.Children[0]
	assert.Equal(t, "S", clause.Tag)
	require.Len(t, clause.Children, 3)
	assert.Equal(t, "NP", clause.Children[0].Tag)
	assert.Same(t, clause, clause.Children[0].Parent)

	assert.Equal(t, s.Tokens, s.Tree.Leaves())
	obama := s.Tokens[1]
	require.NotNil(t, obama.Node)
	assert.Equal(t, "NNP", obama.Node.Tag)
	assert.Equal(t, 3, obama.Node.Depth)
	assert.Same(t, obama, obama.Node.Token)

	// no parse supplied
	assert.Nil(t, doc.Sentences[1].Tree)
	assert.Nil(t, doc.Sentences[1].Tokens[0].Node)
}

func TestReadConstituencyErrors(t *testing.T) {
	tests := []struct {
		name  string
		parse string
	}{
		{"more leaves than tokens", "(ROOT (S (NP (PRP He)) (VP (VBD smiled)) (. .) (. .)))"},
		{"fewer leaves than tokens", "(ROOT (S (PRP He)))"},
		{"no tag", "(ROOT ( (PRP He)))"},
		{"stray word", "(ROOT (S (PRP He) smiled))"},
		{"not a bracket", "ROOT He smiled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xml := markup([]sent{{
				tokens: obamaSentences[1].tokens,
				deps:   obamaSentences[1].deps,
				parse:  tt.parse,
			}}, nil)

			_, err := Read(strings.NewReader(xml), nil, DefaultOptions())
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadEntities(t *testing.T) {
	doc := readDoc(t, DefaultOptions(), markup(obamaSentences, nil), "")

	s := doc.Sentences[0]
	require.Len(t, s.Entities, 1)

	e := s.Entities[0]
	assert.Equal(t, []string{"President", "Obama"}, words(e.Tokens))
	assert.Equal(t, "Obama", e.Head.Word)
	assert.Equal(t, sentence.OriginEntity, e.Origin)
	assert.Equal(t, 0, e.Start)
	assert.Equal(t, 1, e.End)

	assert.Equal(t, 0, s.Tokens[0].Entity)
	assert.Equal(t, 0, s.Tokens[1].Entity)
	assert.Equal(t, sentence.NoEntity, s.Tokens[2].Entity)

	assert.Empty(t, doc.Sentences[1].Entities)
}

func TestReadEntitiesTypeChange(t *testing.T) {
	xml := markup([]sent{{
		tokens: []tok{
			{"Paris", "NNP", "LOCATION", 0},
			{"Hilton", "NNP", "PERSON", 6},
			{"today", "NN", "DATE", 13},
		},
		deps: []dep{{"root", 0, 2}, {"compound", 2, 1}, {"tmod", 2, 3}},
	}}, nil)

	doc := readDoc(t, DefaultOptions(), xml, "")
	s := doc.Sentences[0]
	require.Len(t, s.Entities, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{s.Tokens[0].Entity, s.Tokens[1].Entity, s.Tokens[2].Entity})

	doc = readDoc(t, Options{ExcludeOrdinalNER: true}, xml, "")
	s = doc.Sentences[0]
	require.Len(t, s.Entities, 2)
	assert.Equal(t, sentence.NoEntity, s.Tokens[2].Entity)
}

func TestReadEntitiesWithoutHead(t *testing.T) {
	// two unlinked tokens have no head
	xml := markup([]sent{{
		tokens: []tok{
			{"New", "NNP", "LOCATION", 0},
			{"York", "NNP", "LOCATION", 4},
			{"Alice", "NNP", "PERSON", 9},
		},
		deps: []dep{{"root", 0, 3}},
	}}, nil)

	doc := readDoc(t, DefaultOptions(), xml, "")
	s := doc.Sentences[0]
	require.Len(t, s.Entities, 1)
	assert.Equal(t, "Alice", s.Entities[0].Head.Word)
	assert.Equal(t, sentence.NoEntity, s.Tokens[0].Entity)
	assert.Equal(t, 0, s.Tokens[2].Entity)
}
