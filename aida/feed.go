// Package aida decodes entity-linking feeds in the AIDA JSON format: text
// spans with the best knowledge base candidate and per-entity metadata.
package aida

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TypePrefix is the taxonomy tag prefixed to every metadata type entry.
const TypePrefix = "YAGO_"

// Feed is a decoded entity-linking document.
type Feed struct {
	Mentions       []Mention           `json:"mentions"`
	EntityMetadata map[string]Metadata `json:"entityMetadata"`
}

// Mention is a character span of the text linked by the feed.
type Mention struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Name   string `json:"name,omitempty"`

	// BestEntity is nil when no entity was found for the span.
	BestEntity *Entity `json:"bestEntity,omitempty"`
}

// End returns the offset just after the span.
func (m Mention) End() int {
	return m.Offset + m.Length
}

// Entity is the best knowledge base candidate of a mention.
type Entity struct {
	KBIdentifier        string `json:"kbIdentifier"`
	DisambiguationScore Score  `json:"disambiguationScore"`
}

// Metadata describes a knowledge base entity.
type Metadata struct {
	Type         []string `json:"type"`
	ReadableRepr string   `json:"readableRepr,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Score is a confidence score. The feed writes it either as a number or as
// a quoted number.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid disambiguation score %s: %w", data, err)
	}

	*s = Score(f)
	return nil
}

// Parse decodes a feed from r.
func Parse(r io.Reader) (*Feed, error) {
	var f Feed
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("feed decoding error: %w", err)
	}

	return &f, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(data []byte) (*Feed, error) {
	var f Feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("feed decoding error: %w", err)
	}

	return &f, nil
}

// Best returns the decoded knowledge base identifier and the score of the
// mention's best entity. ok is false when the feed found no entity.
func (m Mention) Best() (kbid string, score float64, ok bool) {
	if m.BestEntity == nil || m.BestEntity.KBIdentifier == "" {
		return "", 0, false
	}

	return DecodeEscapes(m.BestEntity.KBIdentifier), float64(m.BestEntity.DisambiguationScore), true
}

// Types returns the metadata types of kbid with TypePrefix removed. ok is
// false when the feed has no metadata for kbid.
func (f *Feed) Types(kbid string) ([]string, bool) {
	md, ok := f.EntityMetadata[kbid]
	if !ok {
		// metadata keys may keep the escaped form
		md, ok = f.EntityMetadata[EncodeEscapes(kbid)]
	}
	if !ok {
		return nil, false
	}

	types := make([]string, len(md.Type))
	for i, t := range md.Type {
		types[i] = StripTypePrefix(t)
	}
	return types, true
}

// StripTypePrefix removes TypePrefix from t.
func StripTypePrefix(t string) string {
	return strings.TrimPrefix(t, TypePrefix)
}

// DecodeEscapes turns literal \uXXXX sequences, as written by the feed in
// identifiers, into the characters they stand for.
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}

	decoded, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return s
	}
	return decoded
}

// EncodeEscapes is the inverse of DecodeEscapes for non-ASCII runes.
func EncodeEscapes(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFFFF:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	return b.String()
}
