package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sheaf/internal/core/domain"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "whitespace only", raw: "  ", want: nil},
		{name: "single", raw: "foo", want: []string{"foo"}},
		{name: "mixed extensions", raw: "foo,bar.css", want: []string{"foo", "bar.css"}},
		{name: "trims tokens", raw: " a , b ", want: []string{"a", "b"}},
		{name: "keeps empty tokens", raw: "a,,b", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := domain.ParseSelector(tt.raw)
			assert.Equal(t, tt.want, sel.Tokens)
			assert.Equal(t, tt.want == nil, sel.IsEmpty())
		})
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := domain.KindOf("a.css")
	require.True(t, ok)
	assert.Equal(t, domain.KindStylesheet, kind)

	kind, ok = domain.KindOf("vars.tmpl")
	require.True(t, ok)
	assert.Equal(t, domain.KindScript, kind)

	_, ok = domain.KindOf("readme.md")
	assert.False(t, ok)
}

func TestSnapshot_Lookup(t *testing.T) {
	snap := &domain.Snapshot{
		Stylesheets: []domain.FragmentFile{{Name: "a.css"}},
		Scripts:     []domain.FragmentFile{{Name: "a.tmpl", Kind: domain.KindScript}},
	}

	f, ok := snap.Lookup("a.tmpl")
	require.True(t, ok)
	assert.Equal(t, domain.KindScript, f.Kind)

	_, ok = snap.Lookup("b.css")
	assert.False(t, ok)

	_, ok = snap.Lookup("a")
	assert.False(t, ok)
}

func TestInputSet(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := domain.FragmentFile{Name: "config.tmpl", Kind: domain.KindScript, ModTime: base}
	set := &domain.InputSet{
		Config:      &cfg,
		Scripts:     []domain.FragmentFile{{Name: "vars.tmpl", Kind: domain.KindScript, ModTime: base}},
		Stylesheets: []domain.FragmentFile{{Name: "b.css", ModTime: base}, {Name: "a.css", ModTime: base}},
	}

	assert.False(t, set.Empty())
	assert.Equal(t, []string{"vars.tmpl", "b.css", "a.css"}, set.Names())
	assert.Len(t, set.Files(), 4)

	_, newer := set.NewerThan(base)
	assert.False(t, newer, "equal timestamps are not newer")

	set.Config.ModTime = base.Add(time.Second)
	f, newer := set.NewerThan(base)
	require.True(t, newer)
	assert.Equal(t, "config.tmpl", f.Name)

	var nilSet *domain.InputSet
	assert.True(t, nilSet.Empty())
	assert.True(t, (&domain.InputSet{Scripts: set.Scripts}).Empty())
}

func TestEnv_Clone(t *testing.T) {
	env := domain.NewEnv(domain.DefaultOptions())
	env.Vars["color"] = "red"

	clone := env.Clone()
	clone.Vars["color"] = "blue"
	clone.Options.Minify = false

	assert.Equal(t, "red", env.Vars["color"])
	assert.True(t, env.Options.Minify)
}

func TestCachePath(t *testing.T) {
	assert.Equal(t, "styles/.cache", domain.CachePath("styles", ""))
	assert.Equal(t, "styles/tmp", domain.CachePath("styles", "tmp"))
	assert.Equal(t, "/var/cache/sheaf", domain.CachePath("styles", "/var/cache/sheaf"))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "rebuilt", domain.OutcomeRebuilt.String())
	assert.Equal(t, "not-modified", domain.OutcomeNotModified.String())
}
