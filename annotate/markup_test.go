package annotate

import (
	"fmt"
	"strings"
)

type tok struct {
	word  string
	pos   string
	ner   string
	begin int
}

type dep struct {
	rel string
	gov int // 1-based, 0 is the root
	dep int
}

type sent struct {
	tokens []tok
	deps   []dep
	parse  string
}

type mentionXML struct {
	sentence, start, end, head int
	representative             bool
}

// markup renders CoreNLP style XML. Every dependency set is written under
// the three kinds.
func markup(sents []sent, chains [][]mentionXML) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<root><document><sentences>\n")

	for i, s := range sents {
		fmt.Fprintf(&b, "<sentence id=\"%d\"><tokens>\n", i+1)
		for j, t := range s.tokens {
			ner := t.ner
			if ner == "" {
				ner = "O"
			}
			fmt.Fprintf(&b, "<token id=\"%d\"><word>%s</word><lemma>%s</lemma>"+
				"<CharacterOffsetBegin>%d</CharacterOffsetBegin><CharacterOffsetEnd>%d</CharacterOffsetEnd>"+
				"<POS>%s</POS><NER>%s</NER></token>\n",
				j+1, t.word, strings.ToLower(t.word), t.begin, t.begin+len(t.word), t.pos, ner)
		}
		b.WriteString("</tokens>\n")

		if s.parse != "" {
			fmt.Fprintf(&b, "<parse>%s</parse>\n", s.parse)
		}

		for _, kind := range []DependencyKind{Basic, Collapsed, CollapsedCCProcessed} {
			fmt.Fprintf(&b, "<dependencies type=\"%s\">\n", kind.Element())
			for _, d := range s.deps {
				fmt.Fprintf(&b, "<dep type=\"%s\"><governor idx=\"%d\">g</governor><dependent idx=\"%d\">d</dependent></dep>\n",
					d.rel, d.gov, d.dep)
			}
			b.WriteString("</dependencies>\n")
		}
		b.WriteString("</sentence>\n")
	}
	b.WriteString("</sentences>\n")

	if len(chains) > 0 {
		b.WriteString("<coreference>\n")
		for _, chain := range chains {
			b.WriteString("<coreference>\n")
			for _, m := range chain {
				attr := ""
				if m.representative {
					attr = ` representative="true"`
				}
				fmt.Fprintf(&b, "<mention%s><sentence>%d</sentence><start>%d</start><end>%d</end><head>%d</head></mention>\n",
					attr, m.sentence, m.start, m.end, m.head)
			}
			b.WriteString("</coreference>\n")
		}
		b.WriteString("</coreference>\n")
	}

	b.WriteString("</document></root>\n")
	return b.String()
}

// President Obama spoke . He smiled . Michelle laughed .
var obamaSentences = []sent{
	{
		tokens: []tok{
			{"President", "NNP", "PERSON", 0},
			{"Obama", "NNP", "PERSON", 10},
			{"spoke", "VBD", "", 16},
			{".", ".", "", 22},
		},
		deps: []dep{
			{"root", 0, 3},
			{"compound", 2, 1},
			{"nsubj", 3, 2},
			{"punct", 3, 4},
		},
		parse: "(ROOT (S (NP (NNP President) (NNP Obama)) (VP (VBD spoke)) (. .)))",
	},
	{
		tokens: []tok{
			{"He", "PRP", "", 24},
			{"smiled", "VBD", "", 27},
			{".", ".", "", 34},
		},
		deps: []dep{
			{"root", 0, 2},
			{"nsubj", 2, 1},
			{"punct", 2, 3},
		},
	},
	{
		tokens: []tok{
			{"Michelle", "NNP", "PERSON", 36},
			{"laughed", "VBD", "", 45},
			{".", ".", "", 53},
		},
		deps: []dep{
			{"root", 0, 2},
			{"nsubj", 2, 1},
			{"punct", 2, 3},
		},
	},
}

var obamaChains = [][]mentionXML{
	{
		{sentence: 1, start: 1, end: 3, head: 2, representative: true},
		{sentence: 2, start: 1, end: 2, head: 1},
	},
}

const obamaFeed = `{
  "mentions": [
    {"offset": 0, "length": 15, "name": "President Obama",
     "bestEntity": {"kbIdentifier": "YAGO:Barack_Obama", "disambiguationScore": "0.9"}},
    {"offset": 24, "length": 2, "name": "He",
     "bestEntity": {"kbIdentifier": "YAGO:Barack_Obama", "disambiguationScore": 0.7}},
    {"offset": 16, "length": 5, "name": "spoke",
     "bestEntity": {"kbIdentifier": "YAGO:Speech", "disambiguationScore": "0.2"}},
    {"offset": 27, "length": 6, "name": "smiled",
     "bestEntity": {"kbIdentifier": "YAGO:Smile", "disambiguationScore": "0.4"}},
    {"offset": 36, "length": 8, "name": "Michelle"},
    {"offset": 36, "length": 8, "name": "Michelle",
     "bestEntity": {"kbIdentifier": "YAGO:Michelle_Obama", "disambiguationScore": "0.8"}}
  ],
  "entityMetadata": {
    "YAGO:Barack_Obama": {"type": ["YAGO_wordnet_president_110467179", "YAGO_wordnet_person_100007846"]},
    "YAGO:Smile": {"type": ["YAGO_wordnet_facial_expression_106877078"]},
    "YAGO:Michelle_Obama": {"type": ["YAGO_wordnet_person_100007846"]}
  }
}`
