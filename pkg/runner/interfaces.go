//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=runner
package runner

import "context"

type (
	// StepFunc is a registered step implementation. The args are the
	// capture groups of the step pattern, in order.
	StepFunc func(ctx context.Context, args ...string) error

	// ResolvedStep is a step text matched to its implementation.
	ResolvedStep struct {
		Text string
		Fn   StepFunc
		Args []string
	}

	// StepExecutor invokes one resolved step implementation.
	StepExecutor interface {
		Execute(ctx context.Context, step ResolvedStep) error
	}
)
