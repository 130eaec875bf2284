package ports

import (
	"context"

	"go.trai.ch/sheaf/internal/core/domain"
)

// Lister takes a snapshot of the serving directory.
//
//go:generate mockgen -source=fragments.go -destination=mocks/mock_fragments.go -package=mocks
type Lister interface {
	// List returns the stylesheets, scripts and config source currently present.
	List(ctx context.Context) (*domain.Snapshot, error)
}

// Resolver maps a selector onto the files of a snapshot.
type Resolver interface {
	// Resolve returns the ordered input set for sel.
	// It returns domain.ErrFragmentNotFound when a token cannot be resolved under a strict policy.
	Resolve(sel domain.Selector, snap *domain.Snapshot) (*domain.InputSet, error)
}

// KeyDeriver names the artifact built from an input set.
type KeyDeriver interface {
	// Key returns a filesystem-safe artifact name that is stable for the same input names.
	Key(set *domain.InputSet) string
}
