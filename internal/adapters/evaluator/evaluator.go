// Package evaluator runs stylesheet fragments and scripts as text/template programs.
//
// Dot is the variable map. Scripts define variables with set and switch
// aggregation options with option; fragments read them back with var or
// plain field access.
package evaluator

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"text/template"

	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/sheaf/internal/gradient"
	"go.trai.ch/zerr"
)

var _ ports.Evaluator = (*Evaluator)(nil)

const (
	// PxBaseVar is the variable holding the base size used by px.
	PxBaseVar = "px_base"
	// DefaultPxBase is the base size used when px_base is not set.
	DefaultPxBase = 16
)

// Option names accepted by the option function.
const (
	OptionIncludeComponentNames = "include_component_names"
	OptionMinify                = "minify"
)

// Evaluator implements ports.Evaluator with text/template.
type Evaluator struct {
	leftDelim  string
	rightDelim string
}

// New creates an Evaluator. Empty delimiters select the text/template defaults.
func New(leftDelim, rightDelim string) *Evaluator {
	return &Evaluator{leftDelim: leftDelim, rightDelim: rightDelim}
}

// Evaluate parses and executes src. env is cloned; the clone carries every
// set and option call and is returned alongside the output.
func (e *Evaluator) Evaluate(ctx context.Context, name string, src []byte, env domain.Env) (string, domain.Env, error) {
	if err := ctx.Err(); err != nil {
		return "", env, err
	}

	next := env.Clone()
	tmpl, err := template.New(name).
		Delims(e.leftDelim, e.rightDelim).
		Option("missingkey=error").
		Funcs(funcs(&next)).
		Parse(string(src))
	if err != nil {
		return "", env, zerr.With(zerr.Wrap(err, domain.ErrEvaluationFailed.Error()), "file", name)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, next.Vars); err != nil {
		return "", env, zerr.With(zerr.Wrap(err, domain.ErrEvaluationFailed.Error()), "file", name)
	}

	return out.String(), next, nil
}

func funcs(env *domain.Env) template.FuncMap {
	return template.FuncMap{
		"set": func(key string, value any) string {
			env.Vars[key] = value
			return ""
		},
		"var": func(key string) (any, error) {
			v, ok := env.Vars[key]
			if !ok {
				return nil, zerr.With(domain.ErrUndefinedVar, "name", key)
			}
			return v, nil
		},
		"option": func(key string, value bool) (string, error) {
			switch key {
			case OptionIncludeComponentNames:
				env.Options.IncludeComponentNames = value
			case OptionMinify:
				env.Options.Minify = value
			default:
				return "", zerr.With(domain.ErrUnknownOption, "name", key)
			}
			return "", nil
		},
		"px": func(factor any) (string, error) {
			f, err := toFloat(factor)
			if err != nil {
				return "", err
			}
			base := float64(DefaultPxBase)
			if v, ok := env.Vars[PxBaseVar]; ok {
				if base, err = toFloat(v); err != nil {
					return "", zerr.With(err, "var", PxBaseVar)
				}
			}
			return gradient.PxSize(base, f), nil
		},
		"stop": func(color, offset string) gradient.Stop {
			return gradient.Stop{Color: color, Offset: offset}
		},
		"svgGradient": func(dir any, stops ...gradient.Stop) (string, error) {
			d, err := gradient.ParseDirection(dir)
			if err != nil {
				return "", err
			}
			return gradient.SVGDataURI(d.Degrees, stops), nil
		},
		"linearGradient": func(dir any, stops ...gradient.Stop) (string, error) {
			d, err := gradient.ParseDirection(dir)
			if err != nil {
				return "", err
			}
			return strings.TrimSuffix(gradient.LinearGradient(d, stops), "\n"), nil
		},
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, "not a number"), "value", n)
		}
		return f, nil
	default:
		return 0, zerr.With(zerr.New("not a number"), "value", v)
	}
}
