package junit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Formatter turns the ordered event stream of one feature's execution
// into a JUnit XML report. The engine calls one method per event, in
// the grammar:
//
//	Feature once; then repeated
//	{Background?, Scenario, Step*, Result*, HookResult*, EndScenario}
//	or {ScenarioOutline, Examples, (Scenario, Step*, Result*,
//	HookResult*, EndScenario)+}; then Done once.
//
// Every call runs to completion synchronously; a Formatter serves
// exactly one feature stream and must not be shared across features.
// Events arriving outside the grammar panic: the engine is trusted to
// emit this exact sequence, and a broken stream is a defect upstream,
// not a recoverable condition.
type Formatter struct {
	log *slog.Logger
	out io.WriteCloser

	featurePath string
	reportPath  string

	suite  *Suite
	tc     *testCase
	strict bool

	currentScenario int
}

// NewFormatter creates a formatter writing its report to reportPath.
// The report file is acquired here and released exactly once, on the
// terminal write in Done (including on its error path).
func NewFormatter(featurePath, reportPath string) (*Formatter, error) {
	dir := filepath.Dir(reportPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create report directory %q: %w", dir, err)
		}
	}
	out, err := os.Create(reportPath)
	if err != nil {
		return nil, fmt.Errorf("could not create report file %q: %w", reportPath, err)
	}
	return newFormatter(featurePath, reportPath, out), nil
}

// newFormatter wires a formatter to an already-open sink.
func newFormatter(featurePath, reportPath string, out io.WriteCloser) *Formatter {
	return &Formatter{
		log:         slog.With("feature", featurePath),
		out:         out,
		featurePath: featurePath,
		reportPath:  reportPath,
		suite:       NewSuite(),
	}
}

// SetStrict switches strict mode. May be called at any time; it affects
// only outcome resolution for subsequent recomputation.
func (f *Formatter) SetStrict(strict bool) {
	f.strict = strict
	if f.tc != nil {
		f.tc.strict = strict
	}
}

// Feature starts the stream. Called exactly once, first.
func (f *Formatter) Feature(feature Feature) {
	f.log.Debug("feature", "name", feature.Name)
	f.assertState(f.tc == nil, "feature")
	f.suite.AttachFeature(feature)
	f.tc = newTestCase(feature, f.strict)
}

// Background notes a background block. The background's steps are
// reported through the scenario that follows; nothing is recorded here.
func (f *Formatter) Background() {
	f.log.Debug("background")
	f.assertState(f.tc != nil, "background")
}

// ScenarioOutline starts an outline. The accumulator is replaced with a
// fresh instance bound to the same feature and strictness, so the
// example counter starts over; the feature-level scenario ordinal is
// bumped once for the whole outline, not per example.
func (f *Formatter) ScenarioOutline(name string) {
	f.log.Debug("scenarioOutline", "name", name)
	f.assertState(f.tc != nil, "scenarioOutline")
	f.tc = newTestCase(f.tc.feature, f.strict)
	f.currentScenario++
}

// Examples notes the examples block of an outline.
func (f *Formatter) Examples() {
	f.log.Debug("examples")
	f.assertState(f.tc != nil, "examples")
}

// Scenario starts one concrete scenario and appends its report node to
// the document. Plain scenarios bump the feature-level ordinal; outline
// instances were already counted by their outline.
func (f *Formatter) Scenario(scenario Scenario) {
	f.log.Debug("scenario", "name", scenario.Name)
	f.assertState(f.tc != nil, "scenario")
	if !scenario.Outline {
		f.currentScenario++
	}
	node := f.tc.startScenario(scenario, f.currentScenario)
	f.suite.AddCase(node)
}

// Step records a step observation for the active scenario.
func (f *Formatter) Step(step Step) {
	f.log.Debug("step", "text", step.Text)
	f.assertState(f.tc != nil && f.tc.node != nil, "step")
	f.tc.addStep(step)
}

// Result records a step result and refreshes the active report node.
func (f *Formatter) Result(result Result) {
	f.log.Debug("result", "status", result.Status)
	f.assertState(f.tc != nil && f.tc.node != nil, "result")
	f.tc.addResult(result)
}

// HookResult records a before/after hook result and refreshes the
// active report node.
func (f *Formatter) HookResult(result Result) {
	f.log.Debug("hookResult", "status", result.Status)
	f.assertState(f.tc != nil && f.tc.node != nil, "hookResult")
	f.tc.addHookResult(result)
}

// EndScenario closes the active scenario's lifecycle. A scenario that
// recorded no steps gets the synthetic empty-scenario outcome.
func (f *Formatter) EndScenario() {
	f.log.Debug("endScenario")
	f.assertState(f.tc != nil && f.tc.node != nil, "endScenario")
	f.tc.finish()
}

// Done ends the stream: it derives the document summary from the
// assembled tree, prints the console summary, writes the report and
// releases the output resource. Called exactly once; it is not
// idempotent. No partial report is valid: any write or serialization
// failure is the generation's own failure.
func (f *Formatter) Done() (err error) {
	defer func() {
		if cerr := f.out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close report %q: %w", f.reportPath, cerr)
		}
	}()

	if err = f.suite.Finalize(); err != nil {
		return err
	}
	f.printSummary()
	if err = encodeSuite(f.out, f.suite); err != nil {
		return err
	}
	f.log.Debug("report written", "path", f.reportPath)
	return nil
}

func (f *Formatter) printSummary() {
	fmt.Println("---------------------------------------------------------")
	fmt.Println("feature: " + f.featurePath)
	fmt.Println("report: " + f.reportPath)
	fmt.Printf("scenarios: %2d | failed: %2d | skipped: %2d | time: %s\n",
		f.suite.Tests(), f.suite.Failures(), f.suite.Skipped(), formatSeconds(f.suite.TimeSeconds()))
	fmt.Println("---------------------------------------------------------")
}

// Suite exposes the underlying document, finalized after Done.
func (f *Formatter) Suite() *Suite { return f.suite }

// FeaturePath returns the path of the feature being reported on.
func (f *Formatter) FeaturePath() string { return f.featurePath }

// ReportPath returns the destination of the report document.
func (f *Formatter) ReportPath() string { return f.reportPath }

// TestCount returns the derived test count. Valid after Done.
func (f *Formatter) TestCount() int { return f.suite.Tests() }

// FailCount returns the derived failure count. Valid after Done.
func (f *Formatter) FailCount() int { return f.suite.Failures() }

// SkipCount returns the derived skip count. Valid after Done.
func (f *Formatter) SkipCount() int { return f.suite.Skipped() }

// TimeTaken returns the derived total seconds. Valid after Done.
func (f *Formatter) TimeTaken() float64 { return f.suite.TimeSeconds() }

// IsFail reports whether the finalized document contains failures.
func (f *Formatter) IsFail() bool { return f.suite.Failures() > 0 }

func (f *Formatter) assertState(ok bool, event string) {
	if !ok {
		panic(fmt.Sprintf("junit: %s event outside the formatter grammar for feature %s", event, f.featurePath))
	}
}
