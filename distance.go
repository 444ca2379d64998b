package langmatch

import "fmt"

// RuleDistance returns the scaled distance of the first rule covering the
// pair. A pair where exactly one side is a paradigm locale is one closer.
func (d *MatchData) RuleDistance(desired, supported Triple) (int, error) {
	for _, rule := range d.Rules {
		if !rule.applies(desired, supported, d.groups) {
			continue
		}

		distance := rule.Distance * 10
		if d.IsParadigm(desired) != d.IsParadigm(supported) {
			distance--
		}
		return distance, nil
	}

	return 0, fmt.Errorf("%w: desired %q, supported %q", ErrNoMatchingRule, desired, supported)
}

// Distance sums the language, script and region stages for two maximized
// locales. A stage only runs when its subtag differs, so equal locales are at
// distance zero.
func (d *MatchData) Distance(desired, supported Triple) (int, error) {
	total := 0

	if desired.Language != supported.Language {
		distance, err := d.RuleDistance(desired.languageOnly(), supported.languageOnly())
		if err != nil {
			return 0, err
		}
		total += distance
	}

	// Both sides carry the desired script.
	if desired.Script != supported.Script {
		distance, err := d.RuleDistance(desired.withScript(desired.Script), supported.withScript(desired.Script))
		if err != nil {
			return 0, err
		}
		total += distance
	}

	if desired.Region != supported.Region {
		distance, err := d.RuleDistance(desired, supported)
		if err != nil {
			return 0, err
		}
		total += distance
	}

	return total, nil
}
