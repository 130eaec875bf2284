package domain

import "maps"

// Options controls how fragments are combined.
type Options struct {
	// IncludeComponentNames prepends a preserved comment naming each stylesheet fragment.
	IncludeComponentNames bool
	// Minify runs the minification pipeline over the combined text.
	Minify bool
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		IncludeComponentNames: true,
		Minify:                true,
	}
}

// Env is the state threaded through fragment evaluation.
type Env struct {
	Options Options
	Vars    map[string]any
}

// NewEnv returns an environment with the given options and no variables.
func NewEnv(opts Options) Env {
	return Env{Options: opts, Vars: map[string]any{}}
}

// Clone returns a copy whose Vars can be mutated independently.
func (e Env) Clone() Env {
	vars := make(map[string]any, len(e.Vars))
	maps.Copy(vars, e.Vars)
	return Env{Options: e.Options, Vars: vars}
}
