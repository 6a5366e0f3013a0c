package junit

// OutcomeKind selects which child element a test case carries.
// A test case has exactly one outcome at any time.
type OutcomeKind int

const (
	// OutcomeSystemOut marks a fully passed case; the body is the
	// informational step listing.
	OutcomeSystemOut OutcomeKind = iota
	// OutcomeFailure marks a failed case.
	OutcomeFailure
	// OutcomeSkipped marks a case with pending or undefined steps
	// (non-strict mode), or an empty scenario.
	OutcomeSkipped
)

// Fixed messages attached to derived outcomes.
const (
	msgPendingOrUndefined = "The scenario has pending or undefined step(s)"
	msgNoSteps            = "The scenario has no steps"
	msgNoFeatures         = "No features found"
)

// Outcome is the single outcome slot of a test case.
type Outcome struct {
	Kind OutcomeKind
	// Message is the message attribute of failure/skipped elements.
	// Empty for system-out and for plain (non-strict) skips.
	Message string
	// Body is the element's character data: the step/result listing,
	// plus the stack trace for failures.
	Body string
}

// resolveOutcome computes the dominant outcome of a scenario from its
// ordered step results and its hook results.
//
// A failed step result beats everything; an undefined or pending step
// result beats "all passed". Hook results only fill a candidate the step
// results left empty: a failed hook becomes the failed candidate, a
// pending hook becomes the skipped candidate. In strict mode a skipped
// candidate is reported as a failure.
func resolveOutcome(stepResults, hookResults []Result, strict bool, listing string) Outcome {
	var failed, skipped *Result
	for i := range stepResults {
		r := &stepResults[i]
		if failed == nil && r.Status == StatusFailed {
			failed = r
		}
		if skipped == nil && (r.Status == StatusUndefined || r.Status == StatusPending) {
			skipped = r
		}
	}
	for i := range hookResults {
		r := &hookResults[i]
		if failed == nil && r.Status == StatusFailed {
			failed = r
		}
		if skipped == nil && r.Status == StatusPending {
			skipped = r
		}
	}

	switch {
	case failed != nil:
		body := listing
		if failed.Error != nil {
			body += "\nStackTrace:\n" + failed.Error.StackTrace
		}
		return Outcome{Kind: OutcomeFailure, Message: failed.ErrorMessage(), Body: body}
	case skipped != nil:
		if strict {
			return Outcome{Kind: OutcomeFailure, Message: msgPendingOrUndefined, Body: listing}
		}
		return Outcome{Kind: OutcomeSkipped, Body: listing}
	default:
		return Outcome{Kind: OutcomeSystemOut, Body: listing}
	}
}

// emptyOutcome is the synthetic outcome for a scenario that completed
// with zero recorded steps. It bypasses result scanning entirely.
func emptyOutcome(strict bool) Outcome {
	kind := OutcomeSkipped
	if strict {
		kind = OutcomeFailure
	}
	return Outcome{Kind: kind, Message: msgNoSteps}
}
