package domain

import "strings"

// Selector is the ordered list of fragment names requested by a client.
// An empty selector selects every fragment.
type Selector struct {
	Tokens []string
}

// ParseSelector splits a raw, already unescaped query string on commas.
// Tokens are kept verbatim apart from surrounding whitespace, including empty ones.
func ParseSelector(raw string) Selector {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = strings.TrimSpace(p)
	}
	return Selector{Tokens: tokens}
}

// IsEmpty reports whether the selector selects everything.
func (s Selector) IsEmpty() bool {
	return len(s.Tokens) == 0
}

func (s Selector) String() string {
	return strings.Join(s.Tokens, ",")
}
