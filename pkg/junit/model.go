package junit

import "time"

// Status represents the execution outcome of a single step or hook.
type Status int

const (
	// StatusPassed indicates the step executed successfully.
	StatusPassed Status = iota
	// StatusFailed indicates the step failed (assertion, panic, or returned error).
	StatusFailed
	// StatusUndefined indicates no step definition matched the step text.
	StatusUndefined
	// StatusPending indicates the step definition exists but is marked pending.
	StatusPending
	// StatusSkipped indicates the step was skipped due to an earlier failure.
	StatusSkipped
)

// String returns the status label used in report listings.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusUndefined:
		return "undefined"
	case StatusPending:
		return "pending"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

type (
	// Feature identifies the source unit a report is generated for.
	// Immutable for the lifetime of one report.
	Feature struct {
		// Name is the feature name as written in the .feature file.
		// May be empty; the report falls back to Path.
		Name string

		// Path is the location of the source .feature file. Used as the
		// classname of every test case in the report.
		Path string
	}

	// Scenario describes one scenario start event.
	Scenario struct {
		// Name is the scenario name as written in the .feature file.
		// May be blank; the report substitutes an ordinal.
		Name string

		// Outline is true when this scenario is a concrete instance
		// expanded from a Scenario Outline. Instances share the outline's
		// name with an example ordinal appended.
		Outline bool
	}

	// Step is one action line within a scenario. Purely descriptive; the
	// outcome arrives separately as a Result.
	Step struct {
		// Keyword is the Gherkin keyword including trailing whitespace
		// (e.g. "Given ", "When ", "Then ").
		Keyword string

		// Text is the step text after the keyword.
		Text string
	}

	// StepError carries the diagnostics of a failed result.
	StepError struct {
		// Message is the short error message.
		Message string

		// StackTrace is the full stack trace text.
		StackTrace string
	}

	// Result is the outcome of executing one step, or of a scenario hook.
	Result struct {
		// Status is the execution outcome.
		Status Status

		// Duration is the wall-clock execution time. Zero when the engine
		// did not measure one; never negative.
		Duration time.Duration

		// Error holds failure diagnostics. Nil unless Status is StatusFailed.
		Error *StepError
	}
)

// ErrorMessage returns the result's error message, or "" when there is none.
func (r Result) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}
