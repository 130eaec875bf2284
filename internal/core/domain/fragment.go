// Package domain contains the core types of the stylesheet aggregator.
package domain

import (
	"strings"
	"time"
)

// Kind distinguishes stylesheet fragments from configuration scripts.
type Kind uint8

const (
	// KindStylesheet is a fragment whose evaluated output becomes part of the stylesheet.
	KindStylesheet Kind = iota
	// KindScript is a script evaluated for its side effects on the environment.
	KindScript
)

// Ext returns the file extension for the kind.
func (k Kind) Ext() string {
	if k == KindScript {
		return ScriptExt
	}
	return StylesheetExt
}

func (k Kind) String() string {
	if k == KindScript {
		return "script"
	}
	return "stylesheet"
}

// KindOf reports the kind of a file name by its extension.
func KindOf(name string) (Kind, bool) {
	switch {
	case strings.HasSuffix(name, StylesheetExt):
		return KindStylesheet, true
	case strings.HasSuffix(name, ScriptExt):
		return KindScript, true
	default:
		return 0, false
	}
}

// FragmentFile is an immutable snapshot of one file in the serving directory.
type FragmentFile struct {
	Name    string
	Kind    Kind
	ModTime time.Time
}

// Snapshot is the listing of the serving directory taken once per request.
// Stylesheets and Scripts are sorted by name.
type Snapshot struct {
	Stylesheets []FragmentFile
	Scripts     []FragmentFile
	// Config is the configuration source, nil when absent.
	Config *FragmentFile
}

// Lookup returns the fragment with the given name.
func (s *Snapshot) Lookup(name string) (FragmentFile, bool) {
	kind, ok := KindOf(name)
	if !ok {
		return FragmentFile{}, false
	}
	files := s.Stylesheets
	if kind == KindScript {
		files = s.Scripts
	}
	for _, f := range files {
		if f.Name == name {
			return f, true
		}
	}
	return FragmentFile{}, false
}
