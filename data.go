package langmatch

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed data/languageMatching.json
var defaultMatchTableJSON []byte

//go:embed data/regions.yaml
var defaultRegionGroupsYAML []byte

// MatchData is the immutable view of a match table the distance engine runs
// against. Rules keep table order; lookup is first match wins.
type MatchData struct {
	Rules           []MatchRule
	Variables       MatchVariables
	ParadigmLocales map[string]struct{}

	groups variableGroups
}

// NewMatchData validates table and resolves its variables through regions.
// Paradigm locales are stored in raw and maximized form.
func NewMatchData(table *MatchTable, regions RegionGroups, normalizer Normalizer) (*MatchData, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrMalformedMatchTable)
	}
	if len(table.Rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrMalformedMatchTable)
	}
	if normalizer == nil {
		normalizer = TagNormalizer{}
	}

	vars := make(MatchVariables, len(table.Variables))
	for _, variable := range table.Variables {
		if _, exists := vars[variable.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate variable $%s", ErrMalformedMatchTable, variable.Name)
		}
		vars[variable.Name] = append([]string(nil), variable.Tokens...)
	}

	rules := make([]MatchRule, len(table.Rules))
	for i, rule := range table.Rules {
		if err := rule.compile(vars); err != nil {
			return nil, err
		}
		rules[i] = rule
	}

	paradigms := make(map[string]struct{}, len(table.ParadigmLocales)*2)
	for _, locale := range table.ParadigmLocales {
		raw := normalizeLocale(locale)
		if raw == "" {
			continue
		}
		maximized, err := normalizer.Maximize(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: paradigm locale %q: %w", ErrMalformedMatchTable, locale, err)
		}
		paradigms[raw] = struct{}{}
		paradigms[maximized.String()] = struct{}{}
	}

	return &MatchData{
		Rules:           rules,
		Variables:       vars,
		ParadigmLocales: paradigms,
		groups:          expandVariables(vars, regions),
	}, nil
}

// IsParadigm reports whether t serializes to a paradigm locale.
func (d *MatchData) IsParadigm(t Triple) bool {
	_, ok := d.ParadigmLocales[t.String()]
	return ok
}

// InGroup reports whether region belongs to the expanded match variable.
func (d *MatchData) InGroup(variable, region string) bool {
	return d.groups.contains(variable, region)
}

var defaultMatchData = sync.OnceValues(func() (*MatchData, error) {
	regions, err := DefaultRegionGroups()
	if err != nil {
		return nil, err
	}
	table, err := ParseMatchTableJSON(defaultMatchTableJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded match table: %w", err)
	}
	return NewMatchData(table, regions, TagNormalizer{})
})

var defaultRegionGroups = sync.OnceValues(func() (RegionGroups, error) {
	groups, err := ParseRegionGroupsYAML(defaultRegionGroupsYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded region groups: %w", err)
	}
	return groups, nil
})

// DefaultMatchData returns the embedded CLDR table. It is built on first use
// and shared by every caller afterwards.
func DefaultMatchData() (*MatchData, error) {
	return defaultMatchData()
}

// DefaultRegionGroups returns the embedded territory containment table.
func DefaultRegionGroups() (RegionGroups, error) {
	return defaultRegionGroups()
}
