package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"best", "-t", "100", "en-US", "en-GB", "fr"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.command != "best" || cfg.threshold != 100 {
		t.Fatalf("parseFlags = %+v", cfg)
	}
	if diff := cmp.Diff([]string{"en-US", "en-GB", "fr"}, cfg.args); diff != "" {
		t.Fatalf("args (-want +got):\n%s", diff)
	}

	cfg, err = parseFlags([]string{"distance", "en", "fr"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.threshold != 840 {
		t.Fatalf("default threshold = %d", cfg.threshold)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{"translate", "en"},
		{"distance", "en"},
		{"best"},
		{"--regions", "r.yaml", "best", "en", "fr"},
		{"--unknown", "best", "en"},
	}

	for _, args := range tests {
		if _, err := parseFlags(args); err == nil {
			t.Fatalf("parseFlags(%v) should fail", args)
		}
	}
}

func TestRunCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"distance", "en-US", "en-GB"}, "50\n"},
		{[]string{"best", "zh-Hant", "zh-Hans", "zh-Hant-HK"}, "zh-Hant-HK\n"},
		{[]string{"rank", "es-MX", "es", "es-419", "ja"}, "es-419\t39\t40\nes\t49\t49\n"},
	}

	for _, tc := range tests {
		cfg, err := parseFlags(tc.args)
		if err != nil {
			t.Fatalf("parseFlags(%v): %v", tc.args, err)
		}

		var out bytes.Buffer
		if err := run(cfg, &out); err != nil {
			t.Fatalf("run(%v): %v", tc.args, err)
		}
		if out.String() != tc.want {
			t.Fatalf("run(%v) = %q want %q", tc.args, out.String(), tc.want)
		}
	}
}

func TestRunBestWithoutMatch(t *testing.T) {
	cfg, err := parseFlags([]string{"best", "--threshold", "10", "de", "ja"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	var out bytes.Buffer
	if err := run(cfg, &out); !errors.Is(err, errNoMatch) {
		t.Fatalf("expected errNoMatch, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunWithTableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match.yaml")
	table := strings.Join([]string{
		"supplemental:",
		"  languageMatching:",
		"    written-new:",
		`      - paradigmLocales: {_locales: "en"}`,
		"      - $a: {_value: US}",
		"      - $b: {_value: GB}",
		"      - $c: {_value: FR}",
		"      - $d: {_value: DE}",
		`      - "*": {_desired: "*", _distance: 10}`,
		`      - "*_*": {_desired: "*_*", _distance: 10}`,
		`      - "*_*_*": {_desired: "*_*_*", _distance: 1}`,
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(table), 0o600); err != nil {
		t.Fatalf("write table: %v", err)
	}

	cfg, err := parseFlags([]string{"--table", path, "distance", "de", "fr"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	var out bytes.Buffer
	if err := run(cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	// language 100 plus region 10; neither side is a paradigm locale.
	if out.String() != "110\n" {
		t.Fatalf("distance = %q", out.String())
	}
}
