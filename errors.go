package langmatch

import "errors"

// ErrInvalidLocale wraps failures reported by the Normalizer.
var ErrInvalidLocale = errors.New("langmatch: invalid locale identifier")

// ErrMalformedMatchTable indicates the match table does not have the expected shape.
var ErrMalformedMatchTable = errors.New("langmatch: malformed match table")

// ErrNoMatchingRule means no rule, not even a catch-all, matched a locale pair.
var ErrNoMatchingRule = errors.New("langmatch: no matching rule")

// ErrInvalidThreshold rejects negative selection thresholds.
var ErrInvalidThreshold = errors.New("langmatch: invalid threshold")

// ErrUnsupportedFormat is returned for table files with an unknown extension.
var ErrUnsupportedFormat = errors.New("langmatch: unsupported table format")
