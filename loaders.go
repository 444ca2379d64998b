package langmatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader produces match data for a Matcher.
type Loader interface {
	Load() (*MatchData, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func() (*MatchData, error)

func (f LoaderFunc) Load() (*MatchData, error) {
	return f()
}

// FileLoader reads a match table and, optionally, a region group table from
// disk. Files are decoded by extension (.json, .yaml or .yml). Without a
// region file the embedded containment table is used.
type FileLoader struct {
	tablePath   string
	regionsPath string
	normalizer  Normalizer
}

func NewFileLoader(tablePath string) *FileLoader {
	return &FileLoader{tablePath: tablePath}
}

// WithRegionGroupsFile sets the region group table path.
func (l *FileLoader) WithRegionGroupsFile(path string) *FileLoader {
	if l == nil {
		return l
	}
	l.regionsPath = path
	return l
}

// WithNormalizer sets the normalizer used to maximize paradigm locales.
func (l *FileLoader) WithNormalizer(normalizer Normalizer) *FileLoader {
	if l == nil {
		return l
	}
	l.normalizer = normalizer
	return l
}

func (l *FileLoader) Load() (*MatchData, error) {
	if l == nil || l.tablePath == "" {
		return nil, errors.New("langmatch: no match table path configured")
	}

	regions, err := l.loadRegions()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.tablePath)
	if err != nil {
		return nil, fmt.Errorf("langmatch: read %s: %w", l.tablePath, err)
	}

	table, err := decodeMatchTableFile(l.tablePath, data)
	if err != nil {
		return nil, fmt.Errorf("langmatch: decode %s: %w", l.tablePath, err)
	}

	return NewMatchData(table, regions, l.normalizer)
}

func (l *FileLoader) loadRegions() (RegionGroups, error) {
	if l.regionsPath == "" {
		return DefaultRegionGroups()
	}
	return LoadRegionGroupsFile(l.regionsPath)
}

// LoadRegionGroupsFile reads a region group table from a JSON or YAML file.
func LoadRegionGroupsFile(path string) (RegionGroups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("langmatch: read %s: %w", path, err)
	}

	var raw map[string][]string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".yaml", ".yml":
		// YAML is a superset of JSON.
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("langmatch: decode %s: %w: %w", path, ErrMalformedMatchTable, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	groups, err := flattenRegionGroups(raw)
	if err != nil {
		return nil, fmt.Errorf("langmatch: decode %s: %w", path, err)
	}
	return groups, nil
}

func decodeMatchTableFile(path string, data []byte) (*MatchTable, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		return ParseMatchTableJSON(data)
	case ".yaml", ".yml":
		return ParseMatchTableYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
