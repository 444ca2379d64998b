package langmatch

import (
	"fmt"
	"sort"
	"sync"
)

// Matcher selects the closest supported locale for a desired one. It is
// read-only after construction and safe for concurrent use.
type Matcher struct {
	data       *MatchData
	normalizer Normalizer
	threshold  int
	hooks      []MatchHook
}

// Match is a scored candidate.
type Match struct {
	Locale string
	// Index is the position of Locale in the candidate list.
	Index int
	// Distance is the raw locale distance.
	Distance int
	// Score is Distance plus Index; selection and the threshold use it.
	Score int
}

// NewMatcher builds a Matcher from options; see NewConfig for defaults.
func NewMatcher(opts ...Option) (*Matcher, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return NewMatcherFromConfig(cfg), nil
}

func NewMatcherFromConfig(cfg *Config) *Matcher {
	return &Matcher{
		data:       cfg.Data,
		normalizer: cfg.Normalizer,
		threshold:  cfg.Threshold,
		hooks:      append([]MatchHook(nil), cfg.Hooks...),
	}
}

// Threshold returns the exclusive score limit.
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Data returns the table the matcher runs against.
func (m *Matcher) Data() *MatchData {
	return m.data
}

// Distance maximizes both identifiers and returns their locale distance.
func (m *Matcher) Distance(desired, supported string) (int, error) {
	d, err := m.maximize(desired)
	if err != nil {
		return 0, err
	}
	s, err := m.maximize(supported)
	if err != nil {
		return 0, err
	}
	return m.data.Distance(d, s)
}

// BestMatch returns the candidate with the lowest score. Equal scores keep
// the earlier candidate. ok is false when candidates is empty or the lowest
// score reaches the threshold.
func (m *Matcher) BestMatch(desired string, candidates []string) (match string, ok bool, err error) {
	ctx := &MatchHookContext{
		Desired:    desired,
		Candidates: candidates,
		Threshold:  m.threshold,
	}
	runBeforeHooks(m.hooks, ctx)
	defer runAfterHooks(m.hooks, ctx)

	best, found, err := m.best(desired, candidates)
	if err != nil {
		ctx.Error = err
		return "", false, err
	}
	if !found {
		return "", false, nil
	}

	ctx.Result = best.Locale
	ctx.Matched = true
	ctx.Score = best.Score
	return best.Locale, true, nil
}

func (m *Matcher) best(desired string, candidates []string) (Match, bool, error) {
	scored, err := m.score(desired, candidates)
	if err != nil {
		return Match{}, false, err
	}
	if len(scored) == 0 {
		return Match{}, false, nil
	}

	best := scored[0]
	for _, candidate := range scored[1:] {
		if candidate.Score < best.Score {
			best = candidate
		}
	}

	if best.Score >= m.threshold {
		return Match{}, false, nil
	}
	return best, true, nil
}

// Rank scores every candidate and returns those under the threshold, best
// first. Its first entry is the BestMatch result.
func (m *Matcher) Rank(desired string, candidates []string) ([]Match, error) {
	scored, err := m.score(desired, candidates)
	if err != nil {
		return nil, err
	}

	ranked := scored[:0]
	for _, candidate := range scored {
		if candidate.Score < m.threshold {
			ranked = append(ranked, candidate)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	return ranked, nil
}

// BestMatchList tries each desired locale in preference order and returns
// the first one that finds a match, together with that match.
func (m *Matcher) BestMatchList(desired []string, candidates []string) (match, matchedDesired string, ok bool, err error) {
	for _, locale := range desired {
		match, ok, err = m.BestMatch(locale, candidates)
		if err != nil {
			return "", "", false, err
		}
		if ok {
			return match, locale, true, nil
		}
	}
	return "", "", false, nil
}

func (m *Matcher) score(desired string, candidates []string) ([]Match, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	d, err := m.maximize(desired)
	if err != nil {
		return nil, err
	}

	scored := make([]Match, 0, len(candidates))
	for i, candidate := range candidates {
		s, err := m.maximize(candidate)
		if err != nil {
			return nil, err
		}
		distance, err := m.data.Distance(d, s)
		if err != nil {
			return nil, err
		}
		scored = append(scored, Match{
			Locale:   candidate,
			Index:    i,
			Distance: distance,
			Score:    distance + i,
		})
	}
	return scored, nil
}

func (m *Matcher) maximize(locale string) (Triple, error) {
	triple, err := m.normalizer.Maximize(locale)
	if err != nil {
		return Triple{}, fmt.Errorf("%w %q: %w", ErrInvalidLocale, locale, err)
	}
	return triple, nil
}

var defaultMatcher = sync.OnceValues(func() (*Matcher, error) {
	return NewMatcher()
})

// ComputeDistance returns the distance between two locales using the
// embedded CLDR table.
func ComputeDistance(desired, supported string) (int, error) {
	m, err := defaultMatcher()
	if err != nil {
		return 0, err
	}
	return m.Distance(desired, supported)
}

// SelectBestMatch picks the closest candidate using the embedded table and
// DefaultThreshold.
func SelectBestMatch(desired string, candidates []string) (string, bool, error) {
	m, err := defaultMatcher()
	if err != nil {
		return "", false, err
	}
	return m.BestMatch(desired, candidates)
}

// SelectBestMatchWithThreshold is SelectBestMatch with a custom threshold.
func SelectBestMatchWithThreshold(desired string, candidates []string, threshold int) (string, bool, error) {
	m, err := defaultMatcher()
	if err != nil {
		return "", false, err
	}
	if threshold < 0 {
		return "", false, fmt.Errorf("%w: %d", ErrInvalidThreshold, threshold)
	}

	scoped := *m
	scoped.threshold = threshold
	return scoped.BestMatch(desired, candidates)
}
