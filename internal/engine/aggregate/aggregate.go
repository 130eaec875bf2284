// Package aggregate combines stylesheet fragments into a single stylesheet.
package aggregate

import (
	"context"
	iofs "io/fs"
	"strings"

	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Aggregator = (*Aggregator)(nil)

// Aggregator evaluates the files of an input set in order and concatenates the stylesheet output.
type Aggregator struct {
	fsys      iofs.FS
	evaluator ports.Evaluator
	minifier  ports.Minifier
}

// New creates an Aggregator reading fragments from fsys.
func New(fsys iofs.FS, evaluator ports.Evaluator, minifier ports.Minifier) *Aggregator {
	return &Aggregator{fsys: fsys, evaluator: evaluator, minifier: minifier}
}

// Build evaluates the config source and scripts for their effect on the
// environment, then every stylesheet for its output. The combined text is
// minified when the final options ask for it.
func (a *Aggregator) Build(ctx context.Context, set *domain.InputSet, defaults domain.Options) (string, domain.Options, error) {
	env := domain.NewEnv(defaults)

	scripts := set.Scripts
	if set.Config != nil {
		scripts = append([]domain.FragmentFile{*set.Config}, scripts...)
	}
	for _, f := range scripts {
		var err error
		// Script output is discarded.
		if _, env, err = a.evaluate(ctx, f, env); err != nil {
			return "", env.Options, err
		}
	}

	var b strings.Builder
	for _, f := range set.Stylesheets {
		if env.Options.IncludeComponentNames {
			b.WriteString("/*!\n" + f.Name + "\n*/")
		}
		out, next, err := a.evaluate(ctx, f, env)
		if err != nil {
			return "", env.Options, err
		}
		env = next
		b.WriteString(out)
	}

	css := b.String()
	if env.Options.Minify {
		minified, err := a.minifier.Minify(css)
		if err != nil {
			return "", env.Options, zerr.Wrap(err, domain.ErrAggregationFailed.Error())
		}
		css = minified
	}

	return css, env.Options, nil
}

func (a *Aggregator) evaluate(ctx context.Context, f domain.FragmentFile, env domain.Env) (string, domain.Env, error) {
	src, err := iofs.ReadFile(a.fsys, f.Name)
	if err != nil {
		return "", env, zerr.With(zerr.Wrap(err, domain.ErrFragmentReadFailed.Error()), "file", f.Name)
	}
	return a.evaluator.Evaluate(ctx, f.Name, src, env)
}
