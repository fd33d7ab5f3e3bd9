package trcat

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// Document is a catalog file as decoded, before normalization into a
// Catalog. YAML and TOML files map onto it directly; TS files are converted.
type Document struct {
	Language string         `yaml:"language,omitempty" toml:"language,omitempty"`
	Contexts []ContextGroup `yaml:"contexts" toml:"contexts"`
}

// ContextGroup holds the messages of one context in document order.
type ContextGroup struct {
	Name     string       `yaml:"name" toml:"name"`
	Messages []RawMessage `yaml:"messages" toml:"messages"`
}

// RawMessage is a single record. Translation is nil when the document
// supplies no translation at all, which is different from an empty one.
// Numerus accepts a bool or "yes"/"no"; when absent, Forms implies plural.
type RawMessage struct {
	Source            string      `yaml:"source" toml:"source"`
	Comment           string      `yaml:"comment,omitempty" toml:"comment,omitempty"`
	Translation       *string     `yaml:"translation,omitempty" toml:"translation,omitempty"`
	Forms             []string    `yaml:"forms,omitempty" toml:"forms,omitempty"`
	Numerus           interface{} `yaml:"numerus,omitempty" toml:"numerus,omitempty"`
	Status            string      `yaml:"status,omitempty" toml:"status,omitempty"`
	Locations         []Location  `yaml:"locations,omitempty" toml:"locations,omitempty"`
	TranslatorComment string      `yaml:"translatorcomment,omitempty" toml:"translatorcomment,omitempty"`
	ExtraComment      string      `yaml:"extracomment,omitempty" toml:"extracomment,omitempty"`

	// problem is set when the record did not fit this shape while decoding.
	problem string
}

// UnmarshalYAML decodes a single record. A record with the wrong shape is
// kept with a problem, so the loader skips it instead of failing the
// document.
func (m *RawMessage) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain RawMessage
	var p plain
	if err := unmarshal(&p); err != nil {
		*m = RawMessage{problem: yamlProblem(err)}
		var fields struct {
			Source  interface{} `yaml:"source"`
			Comment interface{} `yaml:"comment"`
		}
		if unmarshal(&fields) == nil {
			m.Source, _ = fields.Source.(string)
			m.Comment, _ = fields.Comment.(string)
		}
		return nil
	}
	*m = RawMessage(p)
	return nil
}

func yamlProblem(err error) string {
	var te *yaml.TypeError
	if errors.As(err, &te) {
		return strings.Join(te.Errors, "; ")
	}
	return err.Error()
}

// rawMessageFromTable converts a generically decoded TOML record. Fields of
// the wrong type are reported through problem.
func rawMessageFromTable(v interface{}) RawMessage {
	table, ok := v.(map[string]interface{})
	if !ok {
		return RawMessage{problem: fmt.Sprintf("record is %T, not a table", v)}
	}

	var (
		raw      RawMessage
		problems []string
	)
	str := func(name string, dst *string) {
		val, found := table[name]
		if !found {
			return
		}
		s, ok := val.(string)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: expected a string, got %T", name, val))
			return
		}
		*dst = s
	}
	str("source", &raw.Source)
	str("comment", &raw.Comment)
	str("status", &raw.Status)
	str("translatorcomment", &raw.TranslatorComment)
	str("extracomment", &raw.ExtraComment)

	if val, found := table["translation"]; found {
		if s, ok := val.(string); ok {
			raw.Translation = &s
		} else {
			problems = append(problems, fmt.Sprintf("translation: expected a string, got %T", val))
		}
	}
	if val, found := table["forms"]; found {
		forms, err := stringList(val)
		if err != nil {
			problems = append(problems, "forms: "+err.Error())
		}
		raw.Forms = forms
	}
	raw.Numerus = table["numerus"]
	if val, found := table["locations"]; found {
		locations, err := locationList(val)
		if err != nil {
			problems = append(problems, "locations: "+err.Error())
		}
		raw.Locations = locations
	}

	raw.problem = strings.Join(problems, "; ")
	return raw
}

func stringList(v interface{}) ([]string, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected strings, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func locationList(v interface{}) ([]Location, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]Location, 0, len(items))
	for _, item := range items {
		table, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected tables, got %T", item)
		}
		var loc Location
		if file, found := table["file"]; found {
			if loc.File, ok = file.(string); !ok {
				return nil, fmt.Errorf("file: expected a string, got %T", file)
			}
		}
		if line, found := table["line"]; found {
			n, ok := line.(int64)
			if !ok {
				return nil, fmt.Errorf("line: expected an integer, got %T", line)
			}
			loc.Line = int(n)
		}
		out = append(out, loc)
	}
	return out, nil
}

// parseNumerus returns the plural flag and whether it was given at all.
func parseNumerus(v interface{}) (numerus bool, set bool, err error) {
	switch t := v.(type) {
	case nil:
		return false, false, nil
	case bool:
		return t, true, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true":
			return true, true, nil
		case "no", "false":
			return false, true, nil
		case "":
			return false, false, nil
		}
	}
	return false, false, fmt.Errorf("malformed numerus marker %v", v)
}

// NewDocument groups entries by context, keeping the order in which each
// context first appears.
func NewDocument(lang string, entries []Entry) *Document {
	doc := &Document{Language: lang}
	groups := map[string]int{}
	for _, entry := range entries {
		idx, found := groups[entry.Context]
		if !found {
			idx = len(doc.Contexts)
			groups[entry.Context] = idx
			doc.Contexts = append(doc.Contexts, ContextGroup{Name: entry.Context})
		}
		doc.Contexts[idx].Messages = append(doc.Contexts[idx].Messages, entry.rawMessage())
	}
	return doc
}

func (e Entry) rawMessage() RawMessage {
	raw := RawMessage{
		Source:            e.Source,
		Comment:           e.Disambiguation,
		TranslatorComment: e.TranslatorComment,
		ExtraComment:      e.ExtraComment,
	}
	if e.Status != StatusFinished {
		raw.Status = e.Status.String()
	}
	if len(e.Locations) > 0 {
		raw.Locations = append([]Location(nil), e.Locations...)
	}
	switch {
	case e.Numerus:
		raw.Numerus = true
		raw.Forms = append([]string(nil), e.Variants...)
	case len(e.Variants) > 0:
		text := e.Variants[0]
		raw.Translation = &text
	}
	return raw
}
