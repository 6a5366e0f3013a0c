package junit

import (
	"strconv"
	"strings"
)

// listingColumn is the column the status string is padded out to in the
// step/result listing.
const listingColumn = 76

// notExecuted is the listing status for a step that has no result yet.
const notExecuted = "not executed"

// testCase accumulates the events of the scenario currently being
// executed and keeps its report node up to date. One testCase instance
// serves a whole feature for plain scenarios; an outline event swaps in
// a fresh instance so the example counter starts over.
type testCase struct {
	feature Feature
	strict  bool

	scenario      Scenario
	exampleNumber int

	steps       []Step
	stepResults []Result
	hookResults []Result

	node *Case
}

func newTestCase(feature Feature, strict bool) *testCase {
	return &testCase{feature: feature, strict: strict}
}

// startScenario resets the accumulator for a new scenario and returns
// its freshly named report node. ordinal is the feature-level scenario
// counter used when the scenario has a blank name.
func (t *testCase) startScenario(scenario Scenario, ordinal int) *Case {
	t.scenario = scenario
	t.steps = t.steps[:0]
	t.stepResults = t.stepResults[:0]
	t.hookResults = t.hookResults[:0]

	t.node = &Case{
		ClassName: t.feature.Path,
		Name:      t.caseName(ordinal),
	}
	return t.node
}

// caseName applies the naming rule: trimmed scenario name, ordinal
// fallback when blank, and a 1-based example ordinal suffix for
// outline instances.
func (t *testCase) caseName(ordinal int) string {
	name := strings.TrimSpace(t.scenario.Name)
	if name == "" {
		name = strconv.Itoa(ordinal)
	}
	if t.scenario.Outline {
		t.exampleNumber++
		return name + " (" + strconv.Itoa(t.exampleNumber) + ")"
	}
	return name
}

func (t *testCase) addStep(step Step) {
	t.steps = append(t.steps, step)
}

// addResult records a step result and refreshes the node. Repeated
// results replace the node's outcome rather than appending to it.
func (t *testCase) addResult(result Result) {
	t.stepResults = append(t.stepResults, result)
	t.refresh()
}

// addHookResult records a before/after hook result and refreshes the
// node. Hook results are kept apart from step results because hooks can
// fail or be pending independently of the step sequence.
func (t *testCase) addHookResult(result Result) {
	t.hookResults = append(t.hookResults, result)
	t.refresh()
}

// refresh recomputes the node's elapsed time and outcome slot from the
// full result history.
func (t *testCase) refresh() {
	t.node.Time = formatDuration(sumDurations(t.stepResults, t.hookResults))
	t.node.Outcome = resolveOutcome(t.stepResults, t.hookResults, t.strict, t.listing())
}

// finish handles the end of the scenario's lifecycle. A scenario that
// completed with zero recorded steps gets the synthetic empty-scenario
// outcome regardless of any result history.
func (t *testCase) finish() {
	if len(t.steps) > 0 {
		return
	}
	t.node.Time = formatDuration(sumDurations(t.stepResults, t.hookResults))
	t.node.Outcome = emptyOutcome(t.strict)
}

// listing renders one line per step: keyword and text dot-padded to
// listingColumn, followed by the status of the matching result
// ("not executed" when the result has not arrived yet).
func (t *testCase) listing() string {
	var sb strings.Builder
	for i, step := range t.steps {
		status := notExecuted
		if i < len(t.stepResults) {
			status = t.stepResults[i].Status.String()
		}
		start := sb.Len()
		sb.WriteString(step.Keyword)
		sb.WriteString(step.Text)
		for {
			sb.WriteByte('.')
			if sb.Len()-start >= listingColumn {
				break
			}
		}
		sb.WriteString(status)
		sb.WriteByte('\n')
	}
	return sb.String()
}
