package langmatch

import "fmt"

// DefaultThreshold is the score at which candidates are considered too far
// apart: two unrelated languages in unrelated regions.
const DefaultThreshold = 840

// Config captures matcher setup
type Config struct {
	Threshold  int
	Data       *MatchData
	Loader     Loader
	Normalizer Normalizer
	Hooks      []MatchHook

	thresholdSet bool
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if !cfg.thresholdSet {
		cfg.Threshold = DefaultThreshold
	}

	if cfg.Normalizer == nil {
		cfg.Normalizer = TagNormalizer{}
	}

	if cfg.Data == nil {
		var (
			data *MatchData
			err  error
		)
		if cfg.Loader != nil {
			loader := cfg.Loader
			// The caller's loader is shared; give this config its own copy.
			if files, ok := loader.(*FileLoader); ok && files != nil && files.normalizer == nil {
				scoped := *files
				scoped.normalizer = cfg.Normalizer
				loader = &scoped
			}
			data, err = loader.Load()
		} else {
			data, err = DefaultMatchData()
		}
		if err != nil {
			return nil, err
		}
		cfg.Data = data
	}

	return cfg, nil
}

// WithThreshold sets the exclusive score limit for a match.
func WithThreshold(threshold int) Option {
	return func(c *Config) error {
		if threshold < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidThreshold, threshold)
		}
		c.Threshold = threshold
		c.thresholdSet = true
		return nil
	}
}

// WithMatchData injects a prebuilt table; it takes precedence over loaders.
func WithMatchData(data *MatchData) Option {
	return func(c *Config) error {
		c.Data = data
		return nil
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

// WithMatchTableFile loads the match table from path, resolving variables
// through regionsPath when given or the embedded containment table otherwise.
func WithMatchTableFile(path string, regionsPath ...string) Option {
	return func(c *Config) error {
		loader := NewFileLoader(path)
		if len(regionsPath) > 0 {
			loader.WithRegionGroupsFile(regionsPath[0])
		}
		c.Loader = loader
		return nil
	}
}

// WithRegionGroups rebuilds the embedded match table against groups.
func WithRegionGroups(groups RegionGroups) Option {
	return func(c *Config) error {
		c.Loader = LoaderFunc(func() (*MatchData, error) {
			table, err := ParseMatchTableJSON(defaultMatchTableJSON)
			if err != nil {
				return nil, err
			}
			return NewMatchData(table, groups, c.Normalizer)
		})
		return nil
	}
}

func WithNormalizer(normalizer Normalizer) Option {
	return func(c *Config) error {
		c.Normalizer = normalizer
		return nil
	}
}

func WithHooks(hooks ...MatchHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}
