package langmatch

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RegionGroups maps a region group code (e.g. "019" or "EU") to its
// member region codes. Members of a loaded table are already flattened,
// so nested groups contribute their countries too.
type RegionGroups map[string][]string

// Expand returns the regions a match variable token stands for. A token
// that is not a known group stands for itself.
func (g RegionGroups) Expand(token string) []string {
	if members, ok := g[token]; ok {
		return members
	}
	return []string{token}
}

// Codes returns the group codes in lexical order.
func (g RegionGroups) Codes() []string {
	codes := make([]string, 0, len(g))
	for code := range g {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ParseRegionGroupsYAML decodes a containment table and flattens nested
// groups.
func ParseRegionGroupsYAML(data []byte) (RegionGroups, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: region groups: %w", ErrMalformedMatchTable, err)
	}
	return flattenRegionGroups(raw)
}

func flattenRegionGroups(raw map[string][]string) (RegionGroups, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty region group table", ErrMalformedMatchTable)
	}

	groups := make(RegionGroups, len(raw))
	for code := range raw {
		if strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("%w: empty region group code", ErrMalformedMatchTable)
		}
		members, err := collectRegionMembers(raw, code, map[string]bool{})
		if err != nil {
			return nil, err
		}
		groups[code] = members
	}
	return groups, nil
}

func collectRegionMembers(raw map[string][]string, code string, visiting map[string]bool) ([]string, error) {
	if visiting[code] {
		return nil, fmt.Errorf("%w: region group %q contains itself", ErrMalformedMatchTable, code)
	}
	visiting[code] = true
	defer delete(visiting, code)

	var members []string
	seen := make(map[string]struct{})
	add := func(region string) {
		if _, ok := seen[region]; ok {
			return
		}
		seen[region] = struct{}{}
		members = append(members, region)
	}

	for _, member := range raw[code] {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		add(member)
		if _, nested := raw[member]; !nested {
			continue
		}
		children, err := collectRegionMembers(raw, member, visiting)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			add(child)
		}
	}
	return members, nil
}
