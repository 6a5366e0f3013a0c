package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/moinuddin14/karate/internal/generator"
	"github.com/moinuddin14/karate/pkg/runner"
)

// StartApplication runs every feature and, when a snippets directory is
// configured, generates pending step definitions for the steps that had
// no implementation. A run with failing features still writes its
// snippets before runner.ErrFeaturesFailed is returned.
func StartApplication(ctx context.Context, options *Options, featureRunner FeatureRunner) error {
	runErr := featureRunner.Run(ctx)
	if runErr != nil && !errors.Is(runErr, runner.ErrFeaturesFailed) {
		return runErr
	}

	if options.SnippetsDirectory != "" {
		path, err := generator.WriteSnippets(featureRunner, options.SnippetsDirectory)
		if err != nil {
			return err
		}
		if path != "" {
			slog.Info("wrote pending step definitions", "path", path)
		}
	}

	return runErr
}
