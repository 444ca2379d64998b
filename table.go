package langmatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	matchSetName       = "written-new"
	matchSetNameLegacy = "written_new"
	paradigmEntryKey   = "paradigmLocales"
	matchVariableCount = 4
)

// MatchTable is the decoded, ordered content of a CLDR languageMatching set.
type MatchTable struct {
	ParadigmLocales []string
	Variables       []MatchVariable
	Rules           []MatchRule
}

// MatchVariable is a named region list such as $enUS.
type MatchVariable struct {
	Name   string
	Tokens []string
}

type matchDocument struct {
	Supplemental struct {
		LanguageMatching map[string][]map[string]tableEntry `json:"languageMatching" yaml:"languageMatching"`
	} `json:"supplemental" yaml:"supplemental"`
}

// tableEntry carries the attributes any entry kind can have.
type tableEntry struct {
	Locales  *flexString `json:"_locales" yaml:"_locales"`
	Value    *flexString `json:"_value" yaml:"_value"`
	Desired  *flexString `json:"_desired" yaml:"_desired"`
	Distance *flexString `json:"_distance" yaml:"_distance"`
	Oneway   *flexString `json:"oneway" yaml:"oneway"`
}

// flexString accepts both quoted and bare scalars; CLDR JSON quotes numbers
// and booleans while hand written YAML usually does not.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = flexString(value)
		return nil
	}
	if len(data) == 0 || data[0] == '{' || data[0] == '[' || string(data) == "null" {
		return fmt.Errorf("expected scalar, got %s", data)
	}
	*s = flexString(data)
	return nil
}

func (s *flexString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected scalar", node.Line)
	}
	*s = flexString(node.Value)
	return nil
}

func (s *flexString) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// ParseMatchTableJSON decodes a CLDR-JSON supplemental languageMatching document.
func ParseMatchTableJSON(data []byte) (*MatchTable, error) {
	var doc matchDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMatchTable, err)
	}
	return doc.table()
}

// ParseMatchTableYAML decodes the YAML rendition of the same document.
func ParseMatchTableYAML(data []byte) (*MatchTable, error) {
	var doc matchDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMatchTable, err)
	}
	return doc.table()
}

func (doc matchDocument) table() (*MatchTable, error) {
	sets := doc.Supplemental.LanguageMatching
	entries, ok := sets[matchSetName]
	if !ok {
		entries, ok = sets[matchSetNameLegacy]
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing %q set", ErrMalformedMatchTable, matchSetName)
	}
	return decodeEntries(entries)
}

func decodeEntries(entries []map[string]tableEntry) (*MatchTable, error) {
	if len(entries) < 1+matchVariableCount+1 {
		return nil, fmt.Errorf("%w: expected paradigm, %d variables and rules, got %d entries",
			ErrMalformedMatchTable, matchVariableCount, len(entries))
	}

	table := &MatchTable{}

	key, entry, err := singleEntry(entries[0], 0)
	if err != nil {
		return nil, err
	}
	if key != paradigmEntryKey || entry.Locales == nil {
		return nil, fmt.Errorf("%w: entry 0 must be %s with _locales", ErrMalformedMatchTable, paradigmEntryKey)
	}
	table.ParadigmLocales = strings.Fields(entry.Locales.String())

	for i := 1; i <= matchVariableCount; i++ {
		key, entry, err := singleEntry(entries[i], i)
		if err != nil {
			return nil, err
		}
		name, isVariable := strings.CutPrefix(key, "$")
		if !isVariable || name == "" || entry.Value == nil {
			return nil, fmt.Errorf("%w: entry %d must be a match variable, got %q", ErrMalformedMatchTable, i, key)
		}
		table.Variables = append(table.Variables, MatchVariable{
			Name:   name,
			Tokens: strings.Split(entry.Value.String(), "+"),
		})
	}

	for i := 1 + matchVariableCount; i < len(entries); i++ {
		supported, entry, err := singleEntry(entries[i], i)
		if err != nil {
			return nil, err
		}
		rule, err := decodeRule(supported, entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		table.Rules = append(table.Rules, rule)
	}

	return table, nil
}

func singleEntry(raw map[string]tableEntry, index int) (string, tableEntry, error) {
	if len(raw) != 1 {
		return "", tableEntry{}, fmt.Errorf("%w: entry %d must have exactly one key, got %d", ErrMalformedMatchTable, index, len(raw))
	}
	for key, entry := range raw {
		return key, entry, nil
	}
	return "", tableEntry{}, nil
}

func decodeRule(supported string, entry tableEntry) (MatchRule, error) {
	if entry.Desired == nil || entry.Distance == nil {
		return MatchRule{}, fmt.Errorf("%w: rule %q needs _desired and _distance", ErrMalformedMatchTable, supported)
	}

	distance, err := strconv.Atoi(strings.TrimSpace(entry.Distance.String()))
	if err != nil {
		return MatchRule{}, fmt.Errorf("%w: rule %q distance: %w", ErrMalformedMatchTable, supported, err)
	}

	oneway := false
	if entry.Oneway != nil {
		oneway, err = strconv.ParseBool(entry.Oneway.String())
		if err != nil {
			return MatchRule{}, fmt.Errorf("%w: rule %q oneway: %w", ErrMalformedMatchTable, supported, err)
		}
	}

	return MatchRule{
		Supported: normalizeLocale(supported),
		Desired:   normalizeLocale(entry.Desired.String()),
		Distance:  distance,
		Oneway:    oneway,
	}, nil
}
