package fs_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sheaf/internal/adapters/fs"
	"go.trai.ch/sheaf/internal/core/domain"
)

var epoch = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func file(mod time.Duration) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("x"), ModTime: epoch.Add(mod)}
}

func names(files []domain.FragmentFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestLister_List(t *testing.T) {
	fsys := fstest.MapFS{
		"b.css":            file(0),
		"a.css":            file(time.Second),
		"theme.tmpl":       file(0),
		"config.tmpl":      file(2 * time.Second),
		"readme.md":        file(0),
		".hidden.css":      file(0),
		".cache/k.css":     file(0),
		"nested/inner.css": file(0),
	}

	snap, err := fs.NewLister(fsys, domain.DefaultConfigSource).List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.css", "b.css"}, names(snap.Stylesheets))
	assert.Equal(t, []string{"theme.tmpl"}, names(snap.Scripts))
	require.NotNil(t, snap.Config)
	assert.Equal(t, "config.tmpl", snap.Config.Name)
	assert.Equal(t, domain.KindScript, snap.Config.Kind)
	assert.True(t, snap.Config.ModTime.Equal(epoch.Add(2*time.Second)))
	assert.True(t, snap.Stylesheets[0].ModTime.Equal(epoch.Add(time.Second)))
}

func TestLister_List_NoConfig(t *testing.T) {
	fsys := fstest.MapFS{"a.css": file(0)}

	snap, err := fs.NewLister(fsys, domain.DefaultConfigSource).List(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Config)
	assert.Empty(t, snap.Scripts)
}

func TestLister_List_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.NewLister(fstest.MapFS{}, domain.DefaultConfigSource).List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func snapshotOf(t *testing.T, fsys fstest.MapFS) *domain.Snapshot {
	t.Helper()
	snap, err := fs.NewLister(fsys, domain.DefaultConfigSource).List(context.Background())
	require.NoError(t, err)
	return snap
}

func TestResolver_Resolve(t *testing.T) {
	snap := snapshotOf(t, fstest.MapFS{
		"foo.css":     file(0),
		"bar.css":     file(0),
		"baz.css":     file(0),
		"theme.css":   file(0),
		"theme.tmpl":  file(0),
		"vars.tmpl":   file(0),
		"config.tmpl": file(0),
	})

	tests := []struct {
		name        string
		selector    string
		scripts     []string
		stylesheets []string
	}{
		{
			name:        "explicit and bare tokens keep order",
			selector:    "foo,bar.css",
			stylesheets: []string{"foo.css", "bar.css"},
		},
		{
			name:        "reverse order",
			selector:    "baz,foo",
			stylesheets: []string{"baz.css", "foo.css"},
		},
		{
			name:        "bare token matches both kinds",
			selector:    "theme",
			scripts:     []string{"theme.tmpl"},
			stylesheets: []string{"theme.css"},
		},
		{
			name:        "explicit script extension",
			selector:    "vars.tmpl,foo",
			scripts:     []string{"vars.tmpl"},
			stylesheets: []string{"foo.css"},
		},
		{
			name:        "empty selector selects everything",
			selector:    "",
			scripts:     []string{"theme.tmpl", "vars.tmpl"},
			stylesheets: []string{"bar.css", "baz.css", "foo.css", "theme.css"},
		},
		{
			name:        "whitespace around tokens",
			selector:    " foo , bar ",
			stylesheets: []string{"foo.css", "bar.css"},
		},
	}

	r := fs.NewResolver(domain.PolicyStrict)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := r.Resolve(domain.ParseSelector(tt.selector), snap)
			require.NoError(t, err)

			assert.Equal(t, tt.scripts, nilIfEmpty(names(set.Scripts)))
			assert.Equal(t, tt.stylesheets, nilIfEmpty(names(set.Stylesheets)))
			require.NotNil(t, set.Config)
			assert.Equal(t, "config.tmpl", set.Config.Name)
		})
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestResolver_Resolve_EmptyDirectory(t *testing.T) {
	snap := snapshotOf(t, fstest.MapFS{"a.css": file(0), "b.css": file(0)})

	set, err := fs.NewResolver(domain.PolicyStrict).Resolve(domain.Selector{}, snap)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.css", "b.css"}, names(set.Stylesheets))
	assert.Nil(t, set.Config)
}

func TestResolver_Resolve_Unresolved(t *testing.T) {
	snap := snapshotOf(t, fstest.MapFS{"foo.css": file(0)})

	t.Run("strict fails the request", func(t *testing.T) {
		_, err := fs.NewResolver(domain.PolicyStrict).Resolve(domain.ParseSelector("foo,missing"), snap)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrFragmentNotFound))
		assert.ErrorContains(t, err, domain.ErrFragmentNotFound.Error())
	})

	t.Run("config source is not addressable", func(t *testing.T) {
		withConfig := snapshotOf(t, fstest.MapFS{"config.tmpl": file(0)})
		_, err := fs.NewResolver(domain.PolicyStrict).Resolve(domain.ParseSelector("config"), withConfig)
		assert.ErrorIs(t, err, domain.ErrFragmentNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := fs.NewResolver(domain.PolicyStrict).Resolve(domain.ParseSelector("foo,,foo"), snap)
		assert.ErrorIs(t, err, domain.ErrFragmentNotFound)
	})

	t.Run("path traversal never matches", func(t *testing.T) {
		_, err := fs.NewResolver(domain.PolicyStrict).Resolve(domain.ParseSelector("../foo"), snap)
		assert.ErrorIs(t, err, domain.ErrFragmentNotFound)
	})

	t.Run("lenient drops the token", func(t *testing.T) {
		set, err := fs.NewResolver(domain.PolicyLenient).Resolve(domain.ParseSelector("missing,foo"), snap)
		require.NoError(t, err)
		assert.Equal(t, []string{"foo.css"}, names(set.Stylesheets))
	})

	t.Run("lenient with nothing left is empty", func(t *testing.T) {
		set, err := fs.NewResolver(domain.PolicyLenient).Resolve(domain.ParseSelector("missing"), snap)
		require.NoError(t, err)
		assert.True(t, set.Empty())
	})
}

func TestHashedKeyer_Key(t *testing.T) {
	k := fs.HashedKeyer{}

	// BLAKE3 of the empty string.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc949.css", k.Key(&domain.InputSet{}))

	ab := &domain.InputSet{Stylesheets: []domain.FragmentFile{{Name: "a.css"}, {Name: "b.css"}}}
	ba := &domain.InputSet{Stylesheets: []domain.FragmentFile{{Name: "b.css"}, {Name: "a.css"}}}

	key := k.Key(ab)
	assert.Len(t, key, 36)
	assert.Equal(t, key, k.Key(ab))
	assert.NotEqual(t, key, k.Key(ba))
	assert.Regexp(t, `^[0-9a-f]{32}\.css$`, key)
}

func TestLiteralKeyer_Key(t *testing.T) {
	set := &domain.InputSet{
		Config:      &domain.FragmentFile{Name: "config.tmpl"},
		Scripts:     []domain.FragmentFile{{Name: "vars.tmpl"}},
		Stylesheets: []domain.FragmentFile{{Name: "a.css"}, {Name: "b.css"}},
	}
	assert.Equal(t, "vars.tmpl-a.css-b.css", fs.LiteralKeyer{}.Key(set))
}

func TestNewKeyDeriver(t *testing.T) {
	k, err := fs.NewKeyDeriver(domain.KeyHashed)
	require.NoError(t, err)
	assert.IsType(t, fs.HashedKeyer{}, k)

	k, err = fs.NewKeyDeriver(domain.KeyLiteral)
	require.NoError(t, err)
	assert.IsType(t, fs.LiteralKeyer{}, k)

	_, err = fs.NewKeyDeriver("md5")
	require.ErrorContains(t, err, domain.ErrInvalidKeyStrategy.Error())
}
