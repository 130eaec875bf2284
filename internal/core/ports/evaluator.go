package ports

import (
	"context"

	"go.trai.ch/sheaf/internal/core/domain"
)

// Evaluator runs a fragment or script and returns its text output.
//
//go:generate mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks
type Evaluator interface {
	// Evaluate executes src with env and returns the produced text and the updated environment.
	// The env passed in is never mutated.
	Evaluate(ctx context.Context, name string, src []byte, env domain.Env) (string, domain.Env, error)
}
