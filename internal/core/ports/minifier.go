package ports

// Minifier shrinks aggregated stylesheet text.
//
//go:generate mockgen -source=minifier.go -destination=mocks/mock_minifier.go -package=mocks
type Minifier interface {
	Minify(css string) (string, error)
}
