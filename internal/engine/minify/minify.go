// Package minify implements the textual stylesheet minification pipeline.
//
// The pipeline is lexically naive: commas and colons inside strings or url()
// values can be rewritten.
package minify

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Minifier = (*Pipeline)(nil)

// matchTimeout bounds each regular expression pass.
const matchTimeout = 5 * time.Second

// Stage is one named rewrite of the pipeline.
type Stage struct {
	Name  string
	Apply func(css string) (string, error)
}

var (
	commentRe     = mustCompile(`\s*/\*[^!].*?\*/\s*`, regexp2.Singleline)
	punctuationRe = mustCompile(`\s*([{};])\s*`, regexp2.None)
	semicolonsRe  = mustCompile(`;+`, regexp2.None)
	colonRe       = mustCompile(`([{;])([^\s:]+)\s*:\s*`, regexp2.None)
	commaRe       = mustCompile(`\s*,\s*(?=[^}]+{)`, regexp2.None)
)

func mustCompile(expr string, opts regexp2.RegexOptions) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, opts)
	re.MatchTimeout = matchTimeout
	return re
}

func replace(name string, re *regexp2.Regexp, repl string) Stage {
	return Stage{
		Name: name,
		Apply: func(css string) (string, error) {
			out, err := re.Replace(css, repl, -1, -1)
			if err != nil {
				return "", zerr.With(zerr.Wrap(err, "minification stage failed"), "stage", name)
			}
			return out, nil
		},
	}
}

// Stages returns the pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{
		{Name: "trim", Apply: trim},
		replace("strip-comments", commentRe, ""),
		replace("collapse-punctuation", punctuationRe, "$1"),
		replace("dedupe-semicolons", semicolonsRe, ";"),
		{Name: "drop-last-semicolon", Apply: dropLastSemicolon},
		replace("tighten-colons", colonRe, "$1$2:"),
		replace("tighten-selector-commas", commaRe, ","),
	}
}

func trim(css string) (string, error) {
	css = strings.ReplaceAll(css, "\r\n", "\n")
	return strings.Trim(css, " \t\n\r\x00\x0b"), nil
}

func dropLastSemicolon(css string) (string, error) {
	return strings.ReplaceAll(css, ";}", "}"), nil
}

// Pipeline runs a fixed sequence of stages.
type Pipeline struct {
	stages []Stage
}

// New returns the standard pipeline.
func New() *Pipeline {
	return &Pipeline{stages: Stages()}
}

// Minify runs every stage over css in order.
func (p *Pipeline) Minify(css string) (string, error) {
	var err error
	for _, stage := range p.stages {
		css, err = stage.Apply(css)
		if err != nil {
			return "", err
		}
	}
	return css, nil
}
