package annotate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/annotext/element"
	"github.com/revelaction/annotext/sentence"
)

// readTokens converts the token elements of a sentence element. Token ids
// in the markup are 1-based and must be contiguous.
func readTokens(sentEl *element.Element, sentID int) ([]*sentence.Token, error) {
	container := sentEl.Child("tokens")
	if container == nil {
		return nil, nil
	}

	var tokens []*sentence.Token
	for _, tokEl := range container.Children {
		if !isNamed(tokEl, "token") {
			continue
		}

		tok, err := readToken(tokEl, sentID)
		if err != nil {
			return nil, err
		}

		if tok.ID != len(tokens) {
			return nil, fmt.Errorf("%w: sentence %d: token id %d out of sequence", ErrMalformed, sentID+1, tok.ID+1)
		}

		tokens = append(tokens, tok)
	}

	return tokens, nil
}

func readToken(tokEl *element.Element, sentID int) (*sentence.Token, error) {
	id, err := intAttr(tokEl, "id")
	if err != nil {
		return nil, fmt.Errorf("sentence %d: token: %w", sentID+1, err)
	}

	fields := map[string]string{}
	for _, name := range []string{"word", "lemma", "POS", "NER"} {
		v, ok := tokEl.ChildText(name)
		if !ok {
			return nil, fmt.Errorf("%w: sentence %d: token %d: missing %s", ErrMalformed, sentID+1, id, name)
		}
		fields[name] = v
	}

	begin, err := intChild(tokEl, "CharacterOffsetBegin")
	if err != nil {
		return nil, fmt.Errorf("sentence %d: token %d: %w", sentID+1, id, err)
	}

	end, err := intChild(tokEl, "CharacterOffsetEnd")
	if err != nil {
		return nil, fmt.Errorf("sentence %d: token %d: %w", sentID+1, id, err)
	}

	ner := fields["NER"]
	if ner == "O" {
		ner = ""
	}

	speaker, _ := tokEl.ChildText("Speaker")

	return &sentence.Token{
		ID:         id - 1,
		SentenceID: sentID,
		Word:       fixWord(fields["word"]),
		Lemma:      fields["lemma"],
		POS:        fields["POS"],
		NER:        ner,
		Begin:      begin,
		End:        end,
		Speaker:    speaker,
		Entity:     sentence.NoEntity,
	}, nil
}

// fixWord restores the brackets the tokenizer escapes.
func fixWord(w string) string {
	switch w {
	case "-LRB-":
		return "("
	case "-RRB-":
		return ")"
	}
	return w
}

func intAttr(el *element.Element, name string) (int, error) {
	v, ok := el.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%w: <%s> missing %s attribute", ErrMalformed, el.Name, name)
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: <%s> %s attribute %q is not an integer", ErrMalformed, el.Name, name, v)
	}
	return n, nil
}

func intChild(el *element.Element, name string) (int, error) {
	v, ok := el.ChildText(name)
	if !ok {
		return 0, fmt.Errorf("%w: <%s> missing %s", ErrMalformed, el.Name, name)
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: <%s> %s %q is not an integer", ErrMalformed, el.Name, name, v)
	}
	return n, nil
}

func isNamed(el *element.Element, name string) bool {
	return strings.EqualFold(el.Name, name)
}
