//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=generator
package generator

type (
	// StepSource reports the step texts that matched no registered
	// pattern during a run.
	StepSource interface {
		UndefinedSteps() []string
	}
)
