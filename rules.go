package langmatch

import (
	"fmt"
	"strings"
)

// MatchRule is a single CLDR languageMatch entry. Patterns use the
// "language-script-region" form where any segment may be "*" and the region
// segment may reference a match variable as "$name" or "$!name".
type MatchRule struct {
	Supported string
	Desired   string
	Distance  int
	Oneway    bool

	supported pattern
	desired   pattern
}

// MatchVariables maps a variable name (without "$") to its tokens. Tokens
// are region codes or region group codes.
type MatchVariables map[string][]string

type regionSet map[string]struct{}

// variableGroups holds the expanded region set of each match variable.
type variableGroups map[string]regionSet

// contains treats an absent region as outside every group.
func (g variableGroups) contains(variable, region string) bool {
	if region == "" {
		return false
	}
	_, ok := g[variable][region]
	return ok
}

// pattern is the parsed form of a rule side. A missing segment is kept as
// the empty string and only matches an absent subtag.
type pattern struct {
	language string
	script   string
	region   string
	variable string
	exclude  bool
}

func parsePattern(raw string) pattern {
	segments := strings.SplitN(normalizeLocale(raw), "-", 3)
	for len(segments) < 3 {
		segments = append(segments, "")
	}

	p := pattern{
		language: segments[0],
		script:   segments[1],
		region:   segments[2],
	}

	if strings.HasPrefix(p.region, "$") {
		p.variable = strings.TrimPrefix(p.region, "$")
		if strings.HasPrefix(p.variable, "!") {
			p.exclude = true
			p.variable = strings.TrimPrefix(p.variable, "!")
		}
	}
	return p
}

// matches evaluates the region, script and language segments against t.
// Absent subtags are permissive except for region group references, where an
// absent region counts as outside the group.
func (p pattern) matches(t Triple, groups variableGroups) bool {
	if p.variable != "" {
		if groups.contains(p.variable, t.Region) == p.exclude {
			return false
		}
	} else if !segmentMatches(p.region, t.Region) {
		return false
	}

	if !segmentMatches(p.script, t.Script) {
		return false
	}
	return segmentMatches(p.language, t.Language)
}

func segmentMatches(segment, subtag string) bool {
	if subtag == "" {
		return true
	}
	return segment == "*" || segment == subtag
}

// applies reports whether the rule covers the pair, trying the reverse
// direction for two-way rules.
func (r MatchRule) applies(desired, supported Triple, groups variableGroups) bool {
	if r.desired.matches(desired, groups) && r.supported.matches(supported, groups) {
		return true
	}
	if r.Oneway {
		return false
	}
	return r.supported.matches(desired, groups) && r.desired.matches(supported, groups)
}

func (r *MatchRule) compile(vars MatchVariables) error {
	r.supported = parsePattern(r.Supported)
	r.desired = parsePattern(r.Desired)

	for _, p := range [...]pattern{r.supported, r.desired} {
		if p.language == "" {
			return fmt.Errorf("%w: rule %q/%q has an empty language segment", ErrMalformedMatchTable, r.Desired, r.Supported)
		}
		if p.variable == "" {
			continue
		}
		if _, ok := vars[p.variable]; !ok {
			return fmt.Errorf("%w: rule %q/%q references unknown variable $%s", ErrMalformedMatchTable, r.Desired, r.Supported, p.variable)
		}
	}
	return nil
}

// expandVariables resolves every variable token through the region groups.
func expandVariables(vars MatchVariables, regions RegionGroups) variableGroups {
	groups := make(variableGroups, len(vars))
	for name, tokens := range vars {
		set := make(regionSet)
		for _, token := range tokens {
			for _, region := range regions.Expand(token) {
				set[region] = struct{}{}
			}
		}
		groups[name] = set
	}
	return groups
}
