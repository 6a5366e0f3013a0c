package junit

import (
	"fmt"
	"strconv"
	"strings"
)

// Case is one test-case node of the report document. Its single Outcome
// slot is replaced in place as results arrive; the node is never
// duplicated for repeated notifications.
type Case struct {
	// ClassName is the path of the feature file the case belongs to.
	ClassName string

	// Name is the display name per the scenario naming rule.
	Name string

	// Time is the elapsed seconds formatted with the 0.###### pattern.
	// Empty until the first result arrives.
	Time string

	// Outcome is the case's only child: failure, skipped or system-out.
	Outcome Outcome
}

// Suite assembles the report document for one feature. Test-case nodes
// are appended as scenarios arrive; the summary attributes are derived
// by scanning the assembled nodes at finalize time, never taken from
// the running counter kept during accumulation.
type Suite struct {
	feature Feature
	cases   []*Case
	running int

	name     string
	tests    int
	failures int
	skipped  int
	seconds  float64
}

// NewSuite creates an empty report document.
func NewSuite() *Suite {
	return &Suite{cases: make([]*Case, 0)}
}

// AttachFeature binds the feature whose name (or path fallback) names
// the finalized document.
func (s *Suite) AttachFeature(feature Feature) {
	s.feature = feature
}

// AddCase appends a test-case node and bumps the running test counter.
// The running counter is a display aid only; Finalize recounts from the
// tree.
func (s *Suite) AddCase(c *Case) {
	s.cases = append(s.cases, c)
	s.running++
}

// RunningTests reports the number of cases added so far. Display aid
// during accumulation; not the source of truth for the final summary.
func (s *Suite) RunningTests() int {
	return s.running
}

// Cases returns the assembled test-case nodes.
func (s *Suite) Cases() []*Case {
	return s.cases
}

// Finalize derives the document's summary from the assembled tree: it
// names the document, inserts the placeholder case when the feature
// produced no test cases, recounts tests/failures/skips by scanning the
// nodes, and sums the per-case elapsed times. Called exactly once, at
// stream end; calling it twice corrupts the summary.
func (s *Suite) Finalize() error {
	s.name = strings.TrimSpace(s.feature.Name)
	if s.name == "" {
		s.name = s.feature.Path
	}

	if len(s.cases) == 0 {
		s.cases = append(s.cases, &Case{
			ClassName: "dummy",
			Name:      "dummy",
			Outcome:   Outcome{Kind: OutcomeSkipped, Message: msgNoFeatures},
		})
	}

	s.tests = len(s.cases)
	s.failures = 0
	s.skipped = 0
	s.seconds = 0
	for _, c := range s.cases {
		switch c.Outcome.Kind {
		case OutcomeFailure:
			s.failures++
		case OutcomeSkipped:
			s.skipped++
		}
		sec, err := caseSeconds(c)
		if err != nil {
			return err
		}
		s.seconds += sec
	}
	return nil
}

// caseSeconds parses a node's recorded elapsed time. A case that never
// received a result has no recorded time and contributes zero; anything
// else that fails to parse means the document is corrupted.
func caseSeconds(c *Case) (float64, error) {
	if c.Time == "" {
		return 0, nil
	}
	sec, err := strconv.ParseFloat(c.Time, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed time %q on test case %q: %w", c.Time, c.Name, err)
	}
	return sec, nil
}

// Name returns the finalized document name.
func (s *Suite) Name() string { return s.name }

// Tests returns the finalized test count.
func (s *Suite) Tests() int { return s.tests }

// Failures returns the finalized failure count.
func (s *Suite) Failures() int { return s.failures }

// Skipped returns the finalized skip count.
func (s *Suite) Skipped() int { return s.skipped }

// TimeSeconds returns the finalized total elapsed seconds.
func (s *Suite) TimeSeconds() float64 { return s.seconds }
