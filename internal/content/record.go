package content

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is one line of content with its metadata.
type Record struct {
	ID         string     `json:"id,omitempty" yaml:"id,omitempty"`
	Line       string     `json:"line" yaml:"line"`
	Theme      string     `json:"theme" yaml:"theme"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Dominant   string     `json:"dominant,omitempty" yaml:"dominant,omitempty"`
	Subject    string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	Source     string     `json:"source,omitempty" yaml:"source,omitempty"`
}

// Normalize trims whitespace, NFC-normalizes the line and resolves an unset
// difficulty to Basic.
func (r Record) Normalize() Record {
	r.Line = norm.NFC.String(strings.TrimSpace(r.Line))
	r.Theme = strings.TrimSpace(r.Theme)
	r.Difficulty = r.Difficulty.Level()
	return r
}

// Tags selects record variants. Empty fields impose no constraint.
type Tags struct {
	Subject  string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Dominant string `json:"dominant,omitempty" yaml:"dominant,omitempty"`
}

// IsZero reports whether no tag is set.
func (t Tags) IsZero() bool {
	return t.Subject == "" && t.Dominant == ""
}

// Matches reports whether r survives the tag filter. A record without a
// given tag is generic and always survives; a record carrying a tag must
// match it case-insensitively.
func (t Tags) Matches(r Record) bool {
	return tagMatches(t.Subject, r.Subject) && tagMatches(t.Dominant, r.Dominant)
}

func tagMatches(want, have string) bool {
	if want == "" || have == "" {
		return true
	}
	return strings.EqualFold(want, have)
}

// ItemKind tags the variant held by an Item.
type ItemKind int

const (
	// ItemText holds bare text.
	ItemText ItemKind = iota
	// ItemRecord holds a content record.
	ItemRecord
)

// Item is the value type carried by patterns built from session
// descriptions: either bare text or a record.
type Item struct {
	Kind   ItemKind
	Text   string
	Record Record
}

// TextItem wraps bare text.
func TextItem(s string) Item {
	return Item{Kind: ItemText, Text: s}
}

// RecordItem wraps a record.
func RecordItem(r Record) Item {
	return Item{Kind: ItemRecord, Record: r}
}

func (i Item) String() string {
	if i.Kind == ItemRecord {
		return i.Record.Line
	}
	return i.Text
}
