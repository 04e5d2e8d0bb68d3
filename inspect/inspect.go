// Package inspect is an interactive prompt to browse one annotated document.
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/revelaction/annotext/render"
	sent "github.com/revelaction/annotext/sentence"
)

var errQuit = errors.New("quit")

// commands and their usage, in help order
var commands = []prompt.Suggest{
	{Text: "sentences", Description: "text of all sentences"},
	{Text: "sent", Description: "sent <id>: token table"},
	{Text: "deps", Description: "deps <id>: dependency tree"},
	{Text: "tree", Description: "tree <id>: constituency tree"},
	{Text: "refs", Description: "refs [resolved]: references"},
	{Text: "path", Description: "path <id> <from> <to>: dependency path"},
	{Text: "help", Description: "this list"},
	{Text: "quit", Description: "leave"},
}

// numArgs is the number of integer arguments each command takes.
var numArgs = map[string]int{
	"sentences": 0,
	"sent":      1,
	"deps":      1,
	"tree":      1,
	"path":      3,
	"help":      0,
	"quit":      0,
}

type Handler struct {
	Doc      *sent.Doc
	Renderer *render.Renderer
}

func NewHandler(doc *sent.Doc, r *render.Renderer) *Handler {
	return &Handler{
		Doc:      doc,
		Renderer: r,
	}
}

// command is a parsed prompt line.
type command struct {
	name string
	args []int

	// resolved restricts refs to disambiguated references
	resolved bool
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Renderer.W, "🔑 Ctrl+X: Toggle prefix, Ctrl+O: Toggle color, 🔧 quit")

	history := []string{}

	for {
		in := prompt.Input("      🔎 ", h.completer,
			prompt.OptionTitle("annotext inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasPrefix = !h.Renderer.HasPrefix
					fmt.Fprintf(h.Renderer.W, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlO,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasColor = !h.Renderer.HasColor
					fmt.Fprintf(h.Renderer.W, "Color set to %t\n", h.Renderer.HasColor)
				}}),
		)

		if strings.TrimSpace(in) == "" {
			continue
		}

		history = append(history, in)

		err := h.Execute(in)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(h.Renderer.W, "✍  %s\n", err)
		}
	}
}

// Execute runs one prompt line against the document.
func (h *Handler) Execute(in string) error {
	cmd, err := parse(in)
	if err != nil {
		return err
	}

	r := h.Renderer

	switch cmd.name {
	case "quit":
		return errQuit
	case "help":
		for _, c := range commands {
			fmt.Fprintf(r.W, "%-10s %s\n", c.Text, c.Description)
		}
	case "sentences":
		r.Doc(h.Doc)
	case "refs":
		refs := h.Doc.References
		if cmd.resolved {
			refs = h.Doc.Disambiguated
		}
		r.References(refs)
	case "sent", "deps", "tree":
		s, err := h.sentence(cmd.args[0])
		if err != nil {
			return err
		}
		switch cmd.name {
		case "sent":
			r.Tokens(s)
		case "deps":
			r.DepTree(s)
		default:
			r.Tree(s)
		}
	case "path":
		s, err := h.sentence(cmd.args[0])
		if err != nil {
			return err
		}
		from, to := cmd.args[1], cmd.args[2]
		if from < 0 || from >= len(s.Tokens) || to < 0 || to >= len(s.Tokens) {
			return fmt.Errorf("token out of bounds (0-%d)", len(s.Tokens)-1)
		}
		r.Path(s.ShortestPath(s.Tokens[from], s.Tokens[to]))
	}

	return nil
}

func (h *Handler) sentence(id int) (*sent.Sentence, error) {
	s := h.Doc.Sentence(id)
	if s == nil {
		return nil, fmt.Errorf("sentence index %d out of bounds (0-%d)", id, len(h.Doc.Sentences)-1)
	}
	return s, nil
}

func parse(in string) (command, error) {
	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return command{}, errors.New("no command given")
	}

	cmd := command{name: tokens[0]}
	args := tokens[1:]

	if cmd.name == "refs" {
		switch {
		case len(args) == 0:
		case len(args) == 1 && args[0] == "resolved":
			cmd.resolved = true
		default:
			return command{}, errors.New("usage: refs [resolved]")
		}
		return cmd, nil
	}

	n, ok := numArgs[cmd.name]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q, try help", cmd.name)
	}

	if len(args) != n {
		return command{}, fmt.Errorf("%s takes %d arguments", cmd.name, n)
	}

	for _, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return command{}, fmt.Errorf("%s: %q is not a number", cmd.name, a)
		}
		cmd.args = append(cmd.args, v)
	}

	return cmd, nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	befCursor := in.TextBeforeCursor()
	if befCursor == "" {
		return []prompt.Suggest{}
	}

	tokens := strings.Split(befCursor, " ")
	if len(tokens) == 1 {
		return prompt.FilterHasPrefix(commands, tokens[0], false)
	}

	// second word: sentence ids with their text
	if len(tokens) == 2 {
		switch tokens[0] {
		case "sent", "deps", "tree", "path":
			return prompt.FilterHasPrefix(h.sentenceSuggestions(), tokens[1], false)
		case "refs":
			return prompt.FilterHasPrefix([]prompt.Suggest{{Text: "resolved"}}, tokens[1], false)
		}
	}

	return []prompt.Suggest{}
}

func (h *Handler) sentenceSuggestions() []prompt.Suggest {
	s := make([]prompt.Suggest, len(h.Doc.Sentences))
	for i, sentence := range h.Doc.Sentences {
		s[i] = prompt.Suggest{Text: strconv.Itoa(i), Description: abbrev(sentence.Text())}
	}
	return s
}

func abbrev(s string) string {
	const n = 40
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
