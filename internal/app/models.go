package app

import (
	"flag"
	"strings"

	"github.com/moinuddin14/karate/pkg/runner"
)

const (
	Separator = ","
)

type (
	// Options describe one invocation of the command line tool.
	Options struct {
		FeaturesDirectories []string
		ReportsDirectory    string
		Tags                string
		Strict              bool
		Parallel            int
		HTMLReports         bool
		SnippetsDirectory   string
	}
)

// ParseOptions reads the command line flags. args excludes the program
// name.
func ParseOptions(args []string) (*Options, error) {
	flags := flag.NewFlagSet("karate", flag.ContinueOnError)

	features := flags.String("features", ".", "feature directories separated by comma")
	reports := flags.String("reports", "reports", "directory the reports are written to")
	tags := flags.String("tags", "", "cucumber tag expression selecting the scenarios to run")
	strict := flags.Bool("strict", false, "count pending and undefined steps as failures")
	parallel := flags.Int("parallel", 1, "number of features running concurrently")
	html := flags.Bool("html", false, "write an HTML report next to each XML report")
	snippets := flags.String("snippets", "", "directory pending step definitions are generated into")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	return &Options{
		FeaturesDirectories: splitDirectories(*features),
		ReportsDirectory:    *reports,
		Tags:                *tags,
		Strict:              *strict,
		Parallel:            *parallel,
		HTMLReports:         *html,
		SnippetsDirectory:   *snippets,
	}, nil
}

func splitDirectories(raw string) []string {
	directories := make([]string, 0)
	for _, directory := range strings.Split(raw, Separator) {
		if trimmed := strings.TrimSpace(directory); trimmed != "" {
			directories = append(directories, trimmed)
		}
	}
	return directories
}

// NewRunner builds the feature runner the options describe.
func (o *Options) NewRunner() *runner.Runner {
	return runner.NewRunner(runner.DefaultExecutor()).
		WithFeaturesDirectories(o.FeaturesDirectories...).
		WithReportsDirectory(o.ReportsDirectory).
		WithTags(o.Tags).
		WithStrict(o.Strict).
		WithParallel(o.Parallel).
		WithHTMLReports(o.HTMLReports)
}
