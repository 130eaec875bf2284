package domain

// KeyStrategy selects how artifact keys are derived from an input set.
type KeyStrategy string

const (
	// KeyHashed names artifacts by a fixed-length digest of the joined input names.
	KeyHashed KeyStrategy = "hashed"
	// KeyLiteral names artifacts by the joined input names.
	KeyLiteral KeyStrategy = "literal"
)

// ResolvePolicy selects how unresolved selector tokens are treated.
type ResolvePolicy string

const (
	// PolicyStrict fails the whole request when any token is unresolved.
	PolicyStrict ResolvePolicy = "strict"
	// PolicyLenient drops unresolved tokens.
	PolicyLenient ResolvePolicy = "lenient"
)

// Config is the resolved sheaf configuration.
type Config struct {
	Root         string
	ConfigSource string
	CacheDir     string
	KeyStrategy  KeyStrategy
	Policy       ResolvePolicy
	Defaults     Options
	Addr         string
	Compress     bool
	Watch        bool
	LeftDelim    string
	RightDelim   string
	JSONLogs     bool
	Verbose      bool
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Root:         ".",
		ConfigSource: DefaultConfigSource,
		CacheDir:     DefaultCacheDirName,
		KeyStrategy:  KeyHashed,
		Policy:       PolicyStrict,
		Defaults:     DefaultOptions(),
		Addr:         DefaultAddr,
		LeftDelim:    "{{",
		RightDelim:   "}}",
	}
}
