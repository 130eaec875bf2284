// Package cas implements the on-disk artifact cache.
package cas

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore with one file per artifact.
// The file modification time is the artifact version.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Stat returns the artifact metadata without reading its body.
func (s *Store) Stat(key string) (*domain.Artifact, error) {
	path := s.path(key)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactStatFailed.Error()), "key", key)
	}
	return &domain.Artifact{Key: key, Path: path, ModTime: info.ModTime()}, nil
}

// Load returns the artifact with its body.
func (s *Store) Load(key string) (*domain.Artifact, error) {
	path := s.path(key)
	//nolint:gosec // Path is constructed from the cache directory and a derived key
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "key", key)
	}
	defer func() { _ = f.Close() }()

	// Stat the open file so the time matches the bytes read even if the file is replaced meanwhile.
	info, err := f.Stat()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "key", key)
	}
	body := make([]byte, info.Size())
	if _, err := io.ReadFull(f, body); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "key", key)
	}

	return &domain.Artifact{Key: key, Path: path, ModTime: info.ModTime(), Body: body}, nil
}

// Put writes body to a temporary file and renames it over the artifact.
func (s *Store) Put(key string, body []byte) (*domain.Artifact, error) {
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "dir", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "key", key)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		cleanup()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "key", key)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "key", key)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		cleanup()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "key", key)
	}

	path := s.path(key)
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "key", key)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactStatFailed.Error()), "key", key)
	}

	return &domain.Artifact{Key: key, Path: path, ModTime: info.ModTime(), Body: body}, nil
}

// Remove deletes the artifact if it exists.
func (s *Store) Remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactRemoveFailed.Error()), "key", key)
	}
	return nil
}

// Clear removes the whole cache directory.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactRemoveFailed.Error()), "dir", s.dir)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}
