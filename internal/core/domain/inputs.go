package domain

import "time"

// InputSet is the ordered set of files resolved for one request.
type InputSet struct {
	// Config is the configuration source evaluated before everything else, nil when absent.
	Config      *FragmentFile
	Scripts     []FragmentFile
	Stylesheets []FragmentFile
}

// Empty reports whether there is nothing to emit.
func (s *InputSet) Empty() bool {
	return s == nil || len(s.Stylesheets) == 0
}

// Names returns the script names followed by the stylesheet names, in resolution order.
func (s *InputSet) Names() []string {
	names := make([]string, 0, len(s.Scripts)+len(s.Stylesheets))
	for _, f := range s.Scripts {
		names = append(names, f.Name)
	}
	for _, f := range s.Stylesheets {
		names = append(names, f.Name)
	}
	return names
}

// Files returns every file whose modification time governs the artifact, the config source first.
func (s *InputSet) Files() []FragmentFile {
	files := make([]FragmentFile, 0, len(s.Scripts)+len(s.Stylesheets)+1)
	if s.Config != nil {
		files = append(files, *s.Config)
	}
	files = append(files, s.Scripts...)
	return append(files, s.Stylesheets...)
}

// NewerThan returns the first input modified after t, if any.
func (s *InputSet) NewerThan(t time.Time) (FragmentFile, bool) {
	for _, f := range s.Files() {
		if f.ModTime.After(t) {
			return f, true
		}
	}
	return FragmentFile{}, false
}
