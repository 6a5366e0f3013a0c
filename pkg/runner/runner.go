package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	messages "github.com/cucumber/messages/go/v21"
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
	"golang.org/x/sync/errgroup"

	"github.com/moinuddin14/karate/pkg/gherkin_parser"
	"github.com/moinuddin14/karate/pkg/junit"
)

var (
	// ErrPending marks a step implementation as not written yet. A step
	// returning it reports as pending instead of failed.
	ErrPending = errors.New("step implementation is pending")

	// ErrFeaturesFailed is returned by Run when at least one feature
	// produced failures.
	ErrFeaturesFailed = errors.New("features failed")
)

type (
	// Hook runs before or after every scenario. Its result is reported
	// alongside the scenario's step results.
	Hook func(ctx context.Context) error

	stepDefinition struct {
		source  string
		pattern *regexp.Regexp
		fn      StepFunc
	}

	// Runner discovers feature files, executes their scenarios against
	// the registered step definitions and writes one report per feature.
	Runner struct {
		log      *slog.Logger
		executor StepExecutor
		steps    []stepDefinition

		featureDirectories []string
		reportsDirectory   string
		tagExpression      string
		strict             bool
		parallel           int
		htmlReports        bool
		beforeScenario     []Hook
		afterScenario      []Hook

		mu        sync.Mutex
		undefined map[string]struct{}
	}
)

func NewRunner(executor StepExecutor) *Runner {
	return &Runner{
		log:              slog.With("component", "runner"),
		executor:         executor,
		steps:            make([]stepDefinition, 0),
		reportsDirectory: "reports",
		parallel:         1,
		undefined:        make(map[string]struct{}),
	}
}

func (r *Runner) WithFeaturesDirectories(directories ...string) *Runner {
	r.featureDirectories = directories

	return r
}

func (r *Runner) WithReportsDirectory(directory string) *Runner {
	r.reportsDirectory = directory

	return r
}

// WithTags restricts the run to scenarios matching a Cucumber tag
// expression such as "(@smoke or @ui) and not @slow".
func (r *Runner) WithTags(expression string) *Runner {
	r.tagExpression = expression

	return r
}

// WithStrict makes pending and undefined steps count as failures.
func (r *Runner) WithStrict(strict bool) *Runner {
	r.strict = strict

	return r
}

// WithParallel sets how many features run concurrently. Scenarios
// within one feature always run sequentially.
func (r *Runner) WithParallel(n int) *Runner {
	if n > 0 {
		r.parallel = n
	}

	return r
}

// WithHTMLReports writes an HTML rendering next to each XML report.
func (r *Runner) WithHTMLReports(enabled bool) *Runner {
	r.htmlReports = enabled

	return r
}

func (r *Runner) WithBeforeScenario(hooks ...Hook) *Runner {
	r.beforeScenario = append(r.beforeScenario, hooks...)

	return r
}

func (r *Runner) WithAfterScenario(hooks ...Hook) *Runner {
	r.afterScenario = append(r.afterScenario, hooks...)

	return r
}

// RegisterStep binds a step pattern to its implementation. The pattern
// is a regular expression matched against the full step text; capture
// groups become the implementation's arguments. Registering the same
// pattern twice panics.
func (r *Runner) RegisterStep(pattern string, fn StepFunc) *Runner {
	for _, def := range r.steps {
		if def.source == pattern {
			panic("runner: step pattern registered twice: " + pattern)
		}
	}
	compiled, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		panic("runner: invalid step pattern " + pattern + ": " + err.Error())
	}
	r.steps = append(r.steps, stepDefinition{source: pattern, pattern: compiled, fn: fn})

	return r
}

// UndefinedSteps returns the distinct step texts that matched no
// registered pattern during the last run, sorted.
func (r *Runner) UndefinedSteps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	steps := make([]string, 0, len(r.undefined))
	for text := range r.undefined {
		steps = append(steps, text)
	}
	sort.Strings(steps)
	return steps
}

// Run executes every discovered feature and writes its report. It
// returns ErrFeaturesFailed (wrapped with counts) when any feature had
// failures, or the first infrastructure error encountered.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.featureDirectories) == 0 {
		r.featureDirectories = append(r.featureDirectories, ".")
	}

	evaluator, err := gherkin_parser.ParseTagExpression(r.tagExpression)
	if err != nil {
		return err
	}

	featureFiles, err := gherkin_parser.SearchFeatureFilesIn(r.featureDirectories)
	if err != nil {
		return err
	}

	var (
		failedMu sync.Mutex
		failed   int
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.parallel)
	for _, file := range featureFiles {
		file := file
		group.Go(func() error {
			isFail, err := r.runFeature(ctx, file, evaluator)
			if err != nil {
				return err
			}
			if isFail {
				failedMu.Lock()
				failed++
				failedMu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d %w", failed, len(featureFiles), ErrFeaturesFailed)
	}
	return nil
}

func (r *Runner) runFeature(ctx context.Context, file string, evaluator tagexpressions.Evaluatable) (bool, error) {
	document, err := gherkin_parser.ParseFeatureFile(file)
	if err != nil {
		return false, err
	}
	document = gherkin_parser.FilterDocumentByTags(document, evaluator)
	if document.Feature == nil {
		r.log.Warn("feature file has no feature", "file", file)
		return false, nil
	}

	formatter, err := junit.NewFormatter(file, r.reportPath(file))
	if err != nil {
		return false, err
	}
	formatter.SetStrict(r.strict)
	formatter.Feature(junit.Feature{Name: document.Feature.Name, Path: file})

	background := gherkin_parser.GetBackground(document.Feature)
	if background != nil {
		formatter.Background()
	}

	for _, child := range document.Feature.Children {
		switch {
		case child.Scenario != nil:
			r.runScenarioNode(ctx, formatter, child.Scenario, background)
		case child.Rule != nil:
			ruleBackground := gherkin_parser.GetRuleBackground(child.Rule)
			for _, ruleChild := range child.Rule.Children {
				if ruleChild.Scenario != nil {
					r.runScenarioNode(ctx, formatter, ruleChild.Scenario, background, ruleBackground)
				}
			}
		}
	}

	if err := formatter.Done(); err != nil {
		return false, err
	}
	if r.htmlReports {
		htmlPath := strings.TrimSuffix(formatter.ReportPath(), ".xml") + ".html"
		if err := junit.GenerateHTMLReport(htmlPath, formatter.Suite()); err != nil {
			return false, err
		}
	}
	return formatter.IsFail(), nil
}

func (r *Runner) runScenarioNode(ctx context.Context, formatter *junit.Formatter, scenario *messages.Scenario, backgrounds ...*messages.Background) {
	backgroundSteps := make([]messages.Step, 0)
	for _, background := range backgrounds {
		if background == nil {
			continue
		}
		for _, step := range background.Steps {
			backgroundSteps = append(backgroundSteps, *step)
		}
	}

	if gherkin_parser.IsOutline(scenario) {
		formatter.ScenarioOutline(scenario.Name)
		formatter.Examples()
		for _, instance := range gherkin_parser.ExpandOutline(scenario) {
			steps := append(append(make([]messages.Step, 0, len(backgroundSteps)+len(instance)), backgroundSteps...), instance...)
			r.runScenario(ctx, formatter, junit.Scenario{Name: scenario.Name, Outline: true}, steps)
		}
		return
	}

	steps := make([]messages.Step, 0, len(backgroundSteps)+len(scenario.Steps))
	steps = append(steps, backgroundSteps...)
	for _, step := range scenario.Steps {
		steps = append(steps, *step)
	}
	r.runScenario(ctx, formatter, junit.Scenario{Name: scenario.Name}, steps)
}

func (r *Runner) runScenario(ctx context.Context, formatter *junit.Formatter, scenario junit.Scenario, steps []messages.Step) {
	formatter.Scenario(scenario)
	for _, step := range steps {
		formatter.Step(junit.Step{Keyword: step.Keyword, Text: step.Text})
	}

	for _, hook := range r.beforeScenario {
		formatter.HookResult(r.runHook(ctx, hook))
	}

	failed := false
	for _, step := range steps {
		if failed {
			formatter.Result(junit.Result{Status: junit.StatusSkipped})
			continue
		}
		result := r.executeStep(ctx, step.Text)
		if result.Status == junit.StatusFailed {
			failed = true
		}
		formatter.Result(result)
	}

	for _, hook := range r.afterScenario {
		formatter.HookResult(r.runHook(ctx, hook))
	}

	formatter.EndScenario()
}

func (r *Runner) executeStep(ctx context.Context, text string) junit.Result {
	step, ok := r.resolve(text)
	if !ok {
		r.mu.Lock()
		r.undefined[text] = struct{}{}
		r.mu.Unlock()
		r.log.Warn("undefined step", "text", text)
		return junit.Result{Status: junit.StatusUndefined}
	}

	start := time.Now()
	err := r.safeExecute(ctx, step)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		return junit.Result{Status: junit.StatusPassed, Duration: elapsed}
	case errors.Is(err, ErrPending):
		return junit.Result{Status: junit.StatusPending, Duration: elapsed}
	default:
		stepErr := &junit.StepError{Message: err.Error()}
		var panicked *panicError
		if errors.As(err, &panicked) {
			stepErr.Message = panicked.Message()
			stepErr.StackTrace = panicked.Stack()
		}
		r.log.Error("step failed", "text", text, "error", err)
		return junit.Result{Status: junit.StatusFailed, Duration: elapsed, Error: stepErr}
	}
}

func (r *Runner) resolve(text string) (ResolvedStep, bool) {
	for _, def := range r.steps {
		match := def.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		return ResolvedStep{Text: text, Fn: def.fn, Args: match[1:]}, true
	}
	return ResolvedStep{}, false
}

func (r *Runner) safeExecute(ctx context.Context, step ResolvedStep) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &panicError{value: recovered, stack: string(debug.Stack())}
		}
	}()

	return r.executor.Execute(ctx, step)
}

func (r *Runner) runHook(ctx context.Context, hook Hook) junit.Result {
	start := time.Now()
	err := r.safeHook(ctx, hook)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		return junit.Result{Status: junit.StatusPassed, Duration: elapsed}
	case errors.Is(err, ErrPending):
		return junit.Result{Status: junit.StatusPending, Duration: elapsed}
	default:
		r.log.Error("hook failed", "error", err)
		return junit.Result{Status: junit.StatusFailed, Duration: elapsed, Error: &junit.StepError{Message: err.Error()}}
	}
}

func (r *Runner) safeHook(ctx context.Context, hook Hook) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &panicError{value: recovered, stack: string(debug.Stack())}
		}
	}()

	return hook(ctx)
}

// reportPath maps a feature file to its report file: path separators
// collapse into dots so one flat directory holds every report.
func (r *Runner) reportPath(featureFile string) string {
	flattened := strings.NewReplacer("/", ".", "\\", ".").Replace(filepath.Clean(featureFile))
	return filepath.Join(r.reportsDirectory, flattened+".xml")
}

// panicError carries the recovered value and stack of a panicking step.
type panicError struct {
	value any
	stack string
}

func (p *panicError) Error() string {
	return fmt.Sprintf("step panicked: %v", p.value)
}

func (p *panicError) Message() string { return fmt.Sprintf("%v", p.value) }

func (p *panicError) Stack() string { return p.stack }

// DefaultExecutor calls the step implementation directly.
func DefaultExecutor() StepExecutor { return directExecutor{} }

type directExecutor struct{}

func (directExecutor) Execute(ctx context.Context, step ResolvedStep) error {
	return step.Fn(ctx, step.Args...)
}
