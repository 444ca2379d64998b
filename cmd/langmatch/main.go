package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	langmatch "github.com/goliatone/go-langmatch"
)

const usage = `usage:
  langmatch [flags] distance <desired> <supported>
  langmatch [flags] best <desired> <candidate>...
  langmatch [flags] rank <desired> <candidate>...
`

// exitNoMatch is returned by "best" when no candidate is within the threshold.
const exitNoMatch = 2

var errNoMatch = errors.New("no candidate within threshold")

type cliConfig struct {
	threshold   int
	tablePath   string
	regionsPath string
	command     string
	args        []string
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		reportError(err, 1)
	}

	if err := run(cfg, os.Stdout); err != nil {
		if errors.Is(err, errNoMatch) {
			reportError(err, exitNoMatch)
		}
		reportError(err, 1)
	}
}

func reportError(err error, code int) {
	fmt.Fprintf(os.Stderr, "langmatch: %v\n", err)
	os.Exit(code)
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig

	flags := pflag.NewFlagSet("langmatch", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.IntVarP(&cfg.threshold, "threshold", "t", langmatch.DefaultThreshold, "exclusive score limit for a match")
	flags.StringVar(&cfg.tablePath, "table", "", "match table file (.json or .yaml); defaults to the embedded CLDR table")
	flags.StringVar(&cfg.regionsPath, "regions", "", "region group file used with --table")

	if err := flags.Parse(args); err != nil {
		return cliConfig{}, fmt.Errorf("%w\n%s", err, usage)
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return cliConfig{}, errors.New("missing command\n" + usage)
	}
	cfg.command = strings.ToLower(rest[0])
	cfg.args = rest[1:]

	switch cfg.command {
	case "distance":
		if len(cfg.args) != 2 {
			return cliConfig{}, errors.New("distance takes exactly two locales\n" + usage)
		}
	case "best", "rank":
		if len(cfg.args) < 1 {
			return cliConfig{}, fmt.Errorf("%s needs a desired locale\n%s", cfg.command, usage)
		}
	default:
		return cliConfig{}, fmt.Errorf("unknown command %q\n%s", cfg.command, usage)
	}

	if cfg.regionsPath != "" && cfg.tablePath == "" {
		return cliConfig{}, errors.New("--regions requires --table")
	}

	return cfg, nil
}

func run(cfg cliConfig, out io.Writer) error {
	opts := []langmatch.Option{langmatch.WithThreshold(cfg.threshold)}
	if cfg.tablePath != "" {
		if cfg.regionsPath != "" {
			opts = append(opts, langmatch.WithMatchTableFile(cfg.tablePath, cfg.regionsPath))
		} else {
			opts = append(opts, langmatch.WithMatchTableFile(cfg.tablePath))
		}
	}

	matcher, err := langmatch.NewMatcher(opts...)
	if err != nil {
		return err
	}

	switch cfg.command {
	case "distance":
		distance, err := matcher.Distance(cfg.args[0], cfg.args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, distance)
	case "best":
		match, ok, err := matcher.BestMatch(cfg.args[0], cfg.args[1:])
		if err != nil {
			return err
		}
		if !ok {
			return errNoMatch
		}
		fmt.Fprintln(out, match)
	case "rank":
		ranked, err := matcher.Rank(cfg.args[0], cfg.args[1:])
		if err != nil {
			return err
		}
		for _, match := range ranked {
			fmt.Fprintf(out, "%s\t%d\t%d\n", match.Locale, match.Distance, match.Score)
		}
	}
	return nil
}
