package ports

import "go.trai.ch/sheaf/internal/core/domain"

// ArtifactStore persists aggregated stylesheets in the cache directory.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Stat returns the artifact metadata without its body.
	// Returns nil, nil if not found.
	Stat(key string) (*domain.Artifact, error)

	// Load returns the artifact including its body.
	// Returns nil, nil if not found.
	Load(key string) (*domain.Artifact, error)

	// Put writes the body under key, replacing any previous artifact atomically.
	Put(key string, body []byte) (*domain.Artifact, error)

	// Remove deletes the artifact. Removing a missing artifact is not an error.
	Remove(key string) error

	// Clear deletes every artifact.
	Clear() error
}
