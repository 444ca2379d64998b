package langmatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFileLoaderJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "match.json", sampleTableJSON)
	yamlPath := writeFile(t, dir, "match.yml", sampleTableYAML)

	for _, path := range []string{jsonPath, yamlPath} {
		data, err := NewFileLoader(path).WithNormalizer(sampleNormalizer).Load()
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if len(data.Rules) != 5 {
			t.Fatalf("Load(%s) rules = %d", path, len(data.Rules))
		}
		if !data.IsParadigm(Triple{Language: "en", Script: "Latn", Region: "GB"}) {
			t.Fatalf("Load(%s) lost paradigm locales", path)
		}
	}
}

func TestFileLoaderRegionGroupsFile(t *testing.T) {
	dir := t.TempDir()
	tablePath := writeFile(t, dir, "match.json", sampleTableJSON)
	regionsPath := writeFile(t, dir, "regions.json", `{"019": ["021", "BR"], "021": ["US", "CA"]}`)

	data, err := NewFileLoader(tablePath).
		WithRegionGroupsFile(regionsPath).
		WithNormalizer(sampleNormalizer).
		Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, region := range []string{"US", "CA", "BR"} {
		if !data.InGroup("americas", region) {
			t.Fatalf("$americas should contain %s", region)
		}
	}
	if data.InGroup("americas", "MX") {
		t.Fatal("MX is not in the custom table")
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "match.txt", sampleTableJSON)
	broken := writeFile(t, dir, "broken.json", `{"supplemental": {}}`)
	badRegions := writeFile(t, dir, "regions.toml", `x = 1`)
	table := writeFile(t, dir, "match.json", sampleTableJSON)

	if _, err := (*FileLoader)(nil).Load(); err == nil {
		t.Fatal("expected error for nil loader")
	}
	if _, err := NewFileLoader(filepath.Join(dir, "missing.json")).Load(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := NewFileLoader(txt).Load(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := NewFileLoader(broken).Load(); !errors.Is(err, ErrMalformedMatchTable) {
		t.Fatalf("expected ErrMalformedMatchTable, got %v", err)
	}
	if _, err := NewFileLoader(table).WithRegionGroupsFile(badRegions).Load(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for regions, got %v", err)
	}
}

func TestWithMatchTableFileOption(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "match.yaml", sampleTableYAML)

	m := mustMatcher(t, WithMatchTableFile(path), WithNormalizer(sampleNormalizer))

	got, err := m.Distance("en", "fr")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	// Language stage 799 plus region stage 39; only the English side is a paradigm locale.
	if got != 799+39 {
		t.Fatalf("Distance = %d want %d", got, 799+39)
	}
}
