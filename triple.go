package langmatch

import (
	"strings"

	"golang.org/x/text/language"
)

// Triple is the (language, script, region) decomposition of a locale.
// Empty fields mean the subtag is absent.
type Triple struct {
	Language string
	Script   string
	Region   string
}

// String joins the non-empty subtags with "-", e.g. "en-Latn-US".
func (t Triple) String() string {
	parts := make([]string, 0, 3)
	for _, part := range [...]string{t.Language, t.Script, t.Region} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "-")
}

// IsZero reports whether every subtag is absent.
func (t Triple) IsZero() bool {
	return t == Triple{}
}

func (t Triple) languageOnly() Triple {
	return Triple{Language: t.Language}
}

// withScript keeps the language of t and replaces script, dropping the region.
func (t Triple) withScript(script string) Triple {
	return Triple{Language: t.Language, Script: script}
}

// Normalizer maximizes a locale identifier into its likely Triple.
type Normalizer interface {
	Maximize(locale string) (Triple, error)
}

// NormalizerFunc adapts a function to the Normalizer interface.
type NormalizerFunc func(locale string) (Triple, error)

func (f NormalizerFunc) Maximize(locale string) (Triple, error) {
	return f(locale)
}

// TagNormalizer maximizes identifiers with the CLDR likely subtags data
// shipped in golang.org/x/text/language.
type TagNormalizer struct{}

func (TagNormalizer) Maximize(locale string) (Triple, error) {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return Triple{}, err
	}
	return tripleFromTag(tag), nil
}

func tripleFromTag(tag language.Tag) Triple {
	var triple Triple

	if base, conf := tag.Base(); conf != language.No {
		triple.Language = base.String()
	}
	if script, conf := tag.Script(); conf != language.No {
		triple.Script = script.String()
	}
	if region, conf := tag.Region(); conf != language.No {
		triple.Region = region.String()
	}

	return triple
}
