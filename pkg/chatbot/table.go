package chatbot

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/responses.yaml
var embedded embed.FS

// Entry is one keyword group and its canned response.
type Entry struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Response string   `yaml:"response" json:"response"`
}

// Table is the ordered response table.
type Table struct {
	Default string  `yaml:"default" json:"default"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// ParseTable decodes and normalises a YAML table. Keywords are lower-cased;
// entries without keywords or a response are rejected.
func ParseTable(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return Table{}, fmt.Errorf("chatbot: parse table: %w", err)
	}
	table.Default = strings.TrimSpace(table.Default)
	if table.Default == "" {
		return Table{}, errors.New("chatbot: table has no default response")
	}
	for i := range table.Entries {
		entry := &table.Entries[i]
		entry.Response = strings.TrimSpace(entry.Response)
		if entry.Response == "" {
			return Table{}, fmt.Errorf("chatbot: entry %d (%s) has no response", i, entry.Name)
		}
		keywords := entry.Keywords[:0]
		for _, kw := range entry.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return Table{}, fmt.Errorf("chatbot: entry %d (%s) has no keywords", i, entry.Name)
		}
		entry.Keywords = keywords
	}
	return table, nil
}

// DefaultTable returns the bundled response table.
func DefaultTable() Table {
	data, err := embedded.ReadFile("data/responses.yaml")
	if err != nil {
		panic(err)
	}
	table, err := ParseTable(data)
	if err != nil {
		// The bundled table is covered by tests.
		panic(err)
	}
	return table
}

// Match returns the first entry whose keyword occurs in message, compared
// case-insensitively. ok is false when the default applies.
func (t Table) Match(message string) (Entry, bool) {
	lowered := strings.ToLower(message)
	for _, entry := range t.Entries {
		for _, kw := range entry.Keywords {
			if strings.Contains(lowered, kw) {
				return entry, true
			}
		}
	}
	return Entry{}, false
}

// Respond returns the reply for message.
func (t Table) Respond(message string) string {
	if entry, ok := t.Match(message); ok {
		return entry.Response
	}
	return t.Default
}
