//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=app
package app

import "context"

type (
	// FeatureRunner executes the discovered features and reports the
	// steps that had no implementation.
	FeatureRunner interface {
		Run(ctx context.Context) error
		UndefinedSteps() []string
	}
)
