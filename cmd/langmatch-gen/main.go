package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	cldr "golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"

	langmatch "github.com/goliatone/go-langmatch"
)

const (
	matchTableFile  = "languageMatching.json"
	regionGroupFile = "regions.yaml"
	matchSetType    = "written_new"
)

type generatorConfig struct {
	out      string
	cldrPath string
	version  string
}

type matchVariable struct {
	ID    string
	Value string
}

type languageMatch struct {
	Desired   string
	Supported string
	Distance  string
	Oneway    bool
}

type matchSource struct {
	Paradigms string
	Variables []matchVariable
	Matches   []languageMatch
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "langmatch-gen: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig

	pflag.StringVar(&cfg.out, "out", "data", "directory receiving languageMatching.json and regions.yaml")
	pflag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects a supplemental/ subdirectory)")
	pflag.StringVar(&cfg.version, "cldr-version", "", "CLDR version recorded in the generated table")

	pflag.Parse()

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}

	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set --cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	supplemental := data.Supplemental()
	if supplemental == nil {
		return errors.New("CLDR data has no supplemental section")
	}

	source, err := extractMatchSource(supplemental)
	if err != nil {
		return err
	}

	table, err := renderMatchTable(source, cfg.version)
	if err != nil {
		return err
	}

	// Refuse to write a table the library cannot load.
	if _, err := langmatch.ParseMatchTableJSON(table); err != nil {
		return fmt.Errorf("generated table does not validate: %w", err)
	}

	regions, err := renderRegionGroups(extractContainment(supplemental))
	if err != nil {
		return err
	}
	if _, err := langmatch.ParseRegionGroupsYAML(regions); err != nil {
		return fmt.Errorf("generated region groups do not validate: %w", err)
	}

	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.out, matchTableFile), table, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.out, regionGroupFile), regions, 0o644)
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("supplemental")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func extractMatchSource(supplemental *cldr.SupplementalData) (matchSource, error) {
	var source matchSource
	if supplemental.LanguageMatching == nil {
		return source, errors.New("missing languageMatching data")
	}

	sets := supplemental.LanguageMatching.LanguageMatches
	cldr.MakeSlice(&sets).SelectAnyOf("type", matchSetType)
	if len(sets) == 0 {
		return source, fmt.Errorf("missing languageMatches type %q", matchSetType)
	}
	set := sets[0]

	if len(set.ParadigmLocales) == 0 {
		return source, errors.New("missing paradigmLocales")
	}
	source.Paradigms = set.ParadigmLocales[0].Locales

	for _, mv := range set.MatchVariable {
		if mv == nil {
			continue
		}
		source.Variables = append(source.Variables, matchVariable{ID: mv.Id, Value: mv.Value})
	}

	for _, m := range set.LanguageMatch {
		if m == nil {
			continue
		}
		source.Matches = append(source.Matches, languageMatch{
			Desired:   m.Desired,
			Supported: m.Supported,
			Distance:  m.Distance,
			Oneway:    strings.EqualFold(m.Oneway, "true"),
		})
	}

	return source, nil
}

func extractContainment(supplemental *cldr.SupplementalData) map[string][]string {
	groups := make(map[string][]string)
	if supplemental.TerritoryContainment == nil {
		return groups
	}

	for _, g := range supplemental.TerritoryContainment.Group {
		if g == nil || g.Type == "" {
			continue
		}
		groups[g.Type] = appendUnique(groups[g.Type], strings.Fields(g.Contains)...)
	}
	return groups
}

func appendUnique(list []string, values ...string) []string {
	for _, value := range values {
		found := false
		for _, existing := range list {
			if existing == value {
				found = true
				break
			}
		}
		if !found {
			list = append(list, value)
		}
	}
	return list
}

// renderMatchTable writes the CLDR-JSON shape: one paradigm entry, the match
// variables, then the rules keyed by their supported pattern.
func renderMatchTable(source matchSource, version string) ([]byte, error) {
	if strings.TrimSpace(source.Paradigms) == "" {
		return nil, errors.New("empty paradigm locale list")
	}

	entries := make([]map[string]map[string]string, 0, 1+len(source.Variables)+len(source.Matches))
	entries = append(entries, map[string]map[string]string{
		"paradigmLocales": {"_locales": source.Paradigms},
	})

	for _, mv := range source.Variables {
		id := mv.ID
		if !strings.HasPrefix(id, "$") {
			id = "$" + id
		}
		entries = append(entries, map[string]map[string]string{
			id: {"_value": mv.Value},
		})
	}

	for _, m := range source.Matches {
		if m.Supported == "" || m.Desired == "" || m.Distance == "" {
			return nil, fmt.Errorf("incomplete languageMatch %+v", m)
		}
		value := map[string]string{
			"_desired":  m.Desired,
			"_distance": m.Distance,
		}
		if m.Oneway {
			value["oneway"] = "true"
		}
		entries = append(entries, map[string]map[string]string{m.Supported: value})
	}

	doc := map[string]any{
		"supplemental": map[string]any{
			"version": map[string]string{"_cldrVersion": version},
			"languageMatching": map[string]any{
				"written-new": entries,
			},
		},
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode match table: %w", err)
	}
	return buf.Bytes(), nil
}

func renderRegionGroups(groups map[string][]string) ([]byte, error) {
	if len(groups) == 0 {
		return nil, errors.New("missing territoryContainment data")
	}

	var buf bytes.Buffer
	buf.WriteString("# Territory containment (CLDR supplementalData territoryContainment).\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(groups); err != nil {
		return nil, fmt.Errorf("encode region groups: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
