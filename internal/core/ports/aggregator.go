package ports

import (
	"context"

	"go.trai.ch/sheaf/internal/core/domain"
)

// Aggregator combines the files of an input set into one stylesheet.
//
//go:generate mockgen -source=aggregator.go -destination=mocks/mock_aggregator.go -package=mocks
type Aggregator interface {
	// Build returns the combined text and the options in effect after all scripts ran.
	Build(ctx context.Context, set *domain.InputSet, defaults domain.Options) (string, domain.Options, error)
}

// StylesheetService answers stylesheet requests.
type StylesheetService interface {
	// Serve resolves, validates and if necessary rebuilds the artifact for req.
	Serve(ctx context.Context, req domain.Request) (*domain.Response, error)
}
