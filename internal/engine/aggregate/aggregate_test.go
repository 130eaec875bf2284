package aggregate_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sheaf/internal/adapters/evaluator"
	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports/mocks"
	"go.trai.ch/sheaf/internal/engine/aggregate"
	"go.trai.ch/sheaf/internal/engine/minify"
	"go.uber.org/mock/gomock"
)

func stylesheets(names ...string) []domain.FragmentFile {
	files := make([]domain.FragmentFile, 0, len(names))
	for _, n := range names {
		files = append(files, domain.FragmentFile{Name: n, Kind: domain.KindStylesheet})
	}
	return files
}

func TestBuild(t *testing.T) {
	fsys := fstest.MapFS{
		"a.css":       {Data: []byte("a { color: {{.brand}}; }\n")},
		"b.css":       {Data: []byte("/* note */\nb , c { margin : 0 ; }\n")},
		"vars.tmpl":   {Data: []byte(`{{set "brand" "#c00"}}ignored output`)},
		"config.tmpl": {Data: []byte(`{{set "brand" "#000"}}`)},
	}
	set := &domain.InputSet{
		Config:      &domain.FragmentFile{Name: "config.tmpl", Kind: domain.KindScript},
		Scripts:     []domain.FragmentFile{{Name: "vars.tmpl", Kind: domain.KindScript}},
		Stylesheets: stylesheets("a.css", "b.css"),
	}

	agg := aggregate.New(fsys, evaluator.New("", ""), minify.New())

	t.Run("defaults", func(t *testing.T) {
		css, opts, err := agg.Build(context.Background(), set, domain.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultOptions(), opts)
		assert.Equal(t, "/*!\na.css\n*/a{color:#c00}/*!\nb.css\n*/b,c{margin:0}", css)
	})

	t.Run("no names no minify", func(t *testing.T) {
		css, _, err := agg.Build(context.Background(), set, domain.Options{})
		require.NoError(t, err)
		assert.Equal(t, "a { color: #c00; }\n/* note */\nb , c { margin : 0 ; }\n", css)
	})
}

func TestBuild_ScriptOptions(t *testing.T) {
	fsys := fstest.MapFS{
		"config.tmpl": {Data: []byte(`{{option "minify" false}}`)},
		"a.css":       {Data: []byte("a { }")},
	}
	set := &domain.InputSet{
		Config:      &domain.FragmentFile{Name: "config.tmpl", Kind: domain.KindScript},
		Stylesheets: stylesheets("a.css"),
	}

	css, opts, err := aggregate.New(fsys, evaluator.New("", ""), minify.New()).
		Build(context.Background(), set, domain.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, opts.Minify)
	assert.Equal(t, "/*!\na.css\n*/a { }", css)
}

func TestBuild_FragmentOptionAppliesToLaterFragments(t *testing.T) {
	fsys := fstest.MapFS{
		"a.css": {Data: []byte(`{{option "include_component_names" false}}a{}`)},
		"b.css": {Data: []byte("b{}")},
	}
	set := &domain.InputSet{Stylesheets: stylesheets("a.css", "b.css")}

	css, _, err := aggregate.New(fsys, evaluator.New("", ""), minify.New()).
		Build(context.Background(), set, domain.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "/*!\na.css\n*/a{}b{}", css)
}

func TestBuild_MissingFile(t *testing.T) {
	set := &domain.InputSet{Stylesheets: stylesheets("gone.css")}

	_, _, err := aggregate.New(fstest.MapFS{}, evaluator.New("", ""), minify.New()).
		Build(context.Background(), set, domain.DefaultOptions())
	require.ErrorContains(t, err, domain.ErrFragmentReadFailed.Error())
}

func TestBuild_EvaluationErrorStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	ev := mocks.NewMockEvaluator(ctrl)
	mini := mocks.NewMockMinifier(ctrl)

	fsys := fstest.MapFS{
		"a.css": {Data: []byte("a")},
		"b.css": {Data: []byte("b")},
	}
	set := &domain.InputSet{Stylesheets: stylesheets("a.css", "b.css")}

	ev.EXPECT().
		Evaluate(gomock.Any(), "a.css", []byte("a"), gomock.Any()).
		Return("", domain.Env{}, domain.ErrEvaluationFailed)

	_, _, err := aggregate.New(fsys, ev, mini).Build(context.Background(), set, domain.DefaultOptions())
	require.ErrorIs(t, err, domain.ErrEvaluationFailed)
}

func TestBuild_MinifierFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ev := mocks.NewMockEvaluator(ctrl)
	mini := mocks.NewMockMinifier(ctrl)

	fsys := fstest.MapFS{"a.css": {Data: []byte("a{}")}}
	set := &domain.InputSet{Stylesheets: stylesheets("a.css")}

	ev.EXPECT().
		Evaluate(gomock.Any(), "a.css", []byte("a{}"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, src []byte, env domain.Env) (string, domain.Env, error) {
			return string(src), env, nil
		})
	mini.EXPECT().Minify("/*!\na.css\n*/a{}").Return("", assert.AnError)

	_, _, err := aggregate.New(fsys, ev, mini).Build(context.Background(), set, domain.DefaultOptions())
	require.ErrorContains(t, err, domain.ErrAggregationFailed.Error())
}
