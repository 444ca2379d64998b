package langmatch

// FallbackResolver resolves fallback locale chains
type FallbackResolver interface {
	Resolve(locale string) []string
}

// DistanceFallbackResolver orders a fixed set of supported locales by their
// score against the requested locale. Locales at or above the matcher
// threshold are left out.
//
// Resolve satisfies FallbackResolver and cannot report errors: an invalid
// locale or a table without a covering rule yields nil, the same as no
// fallback. Use ResolveChain to tell the two apart.
type DistanceFallbackResolver struct {
	matcher   *Matcher
	supported []string
}

func NewDistanceFallbackResolver(matcher *Matcher, supported ...string) *DistanceFallbackResolver {
	return &DistanceFallbackResolver{
		matcher:   matcher,
		supported: append([]string(nil), supported...),
	}
}

// Resolve returns nil when the locale cannot be scored.
func (r *DistanceFallbackResolver) Resolve(locale string) []string {
	chain, err := r.ResolveChain(locale)
	if err != nil {
		return nil
	}
	return chain
}

// ResolveChain is Resolve with errors from the matcher passed through, such as
// ErrInvalidLocale or ErrNoMatchingRule. A nil chain with a nil error means no
// supported locale is close enough.
func (r *DistanceFallbackResolver) ResolveChain(locale string) ([]string, error) {
	if r == nil || r.matcher == nil || locale == "" {
		return nil, nil
	}

	ranked, err := r.matcher.Rank(locale, r.supported)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	chain := make([]string, 0, len(ranked))
	for _, match := range ranked {
		chain = append(chain, match.Locale)
	}
	return chain, nil
}
