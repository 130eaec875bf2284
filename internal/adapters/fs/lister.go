// Package fs provides file system adapters for listing and resolving stylesheet fragments.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"strings"

	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Lister = (*Lister)(nil)

// Lister takes snapshots of a flat serving directory.
type Lister struct {
	fsys         iofs.FS
	configSource string
}

// NewLister creates a Lister over fsys. configSource names the script evaluated before every build.
func NewLister(fsys iofs.FS, configSource string) *Lister {
	return &Lister{fsys: fsys, configSource: configSource}
}

// List reads the top level of the serving directory.
// Subdirectories and hidden files are skipped. Entries come back sorted by name.
func (l *Lister) List(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := iofs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrListFailed.Error())
	}

	snap := &domain.Snapshot{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		kind, ok := domain.KindOf(name)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrListFailed.Error()), "file", name)
		}

		file := domain.FragmentFile{Name: name, Kind: kind, ModTime: info.ModTime()}
		switch {
		case kind == domain.KindScript && name == l.configSource:
			snap.Config = &file
		case kind == domain.KindScript:
			snap.Scripts = append(snap.Scripts, file)
		default:
			snap.Stylesheets = append(snap.Stylesheets, file)
		}
	}

	return snap, nil
}
