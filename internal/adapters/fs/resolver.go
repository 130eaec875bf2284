package fs

import (
	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Resolver = (*Resolver)(nil)

// Resolver maps selector tokens onto snapshot entries.
type Resolver struct {
	policy domain.ResolvePolicy
}

// NewResolver creates a Resolver. An empty policy means strict.
func NewResolver(policy domain.ResolvePolicy) *Resolver {
	if policy == "" {
		policy = domain.PolicyStrict
	}
	return &Resolver{policy: policy}
}

// Resolve returns the input set for sel.
//
// An empty selector selects every stylesheet and script. A token carrying an
// extension selects exactly that file; a bare token selects name.css and
// name.tmpl, whichever exist. Token order is kept per kind.
func (r *Resolver) Resolve(sel domain.Selector, snap *domain.Snapshot) (*domain.InputSet, error) {
	set := &domain.InputSet{Config: snap.Config}

	if sel.IsEmpty() {
		set.Scripts = append(set.Scripts, snap.Scripts...)
		set.Stylesheets = append(set.Stylesheets, snap.Stylesheets...)
		return set, nil
	}

	for _, token := range sel.Tokens {
		matched := false
		for _, name := range candidates(token) {
			f, ok := snap.Lookup(name)
			if !ok {
				continue
			}
			matched = true
			if f.Kind == domain.KindScript {
				set.Scripts = append(set.Scripts, f)
			} else {
				set.Stylesheets = append(set.Stylesheets, f)
			}
		}

		if !matched && r.policy == domain.PolicyStrict {
			return nil, zerr.With(zerr.Wrap(domain.ErrFragmentNotFound, "unresolved selector token"), "token", token)
		}
	}

	return set, nil
}

func candidates(token string) []string {
	if token == "" {
		return nil
	}
	if _, ok := domain.KindOf(token); ok {
		return []string{token}
	}
	return []string{token + domain.StylesheetExt, token + domain.ScriptExt}
}
