package domain

import "go.trai.ch/zerr"

var (
	// ErrFragmentNotFound is returned when a selector token matches no fragment in the serving directory.
	ErrFragmentNotFound = zerr.New("fragment not found")

	// ErrListFailed is returned when the serving directory cannot be listed.
	ErrListFailed = zerr.New("failed to list serving directory")

	// ErrFragmentReadFailed is returned when a fragment or script cannot be read.
	ErrFragmentReadFailed = zerr.New("failed to read fragment")

	// ErrEvaluationFailed is returned when a fragment or script fails to evaluate.
	ErrEvaluationFailed = zerr.New("failed to evaluate fragment")

	// ErrUnknownOption is returned when a script sets an option that does not exist.
	ErrUnknownOption = zerr.New("unknown option")

	// ErrUndefinedVar is returned when a fragment reads a variable that no script defined.
	ErrUndefinedVar = zerr.New("undefined variable")

	// ErrCacheDirCreateFailed is returned when the artifact cache directory cannot be created.
	ErrCacheDirCreateFailed = zerr.New("failed to create cache directory")

	// ErrArtifactStatFailed is returned when a cached artifact cannot be stat'ed.
	ErrArtifactStatFailed = zerr.New("failed to stat artifact")

	// ErrArtifactReadFailed is returned when a cached artifact cannot be read.
	ErrArtifactReadFailed = zerr.New("failed to read artifact")

	// ErrArtifactWriteFailed is returned when an artifact cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrArtifactRemoveFailed is returned when a stale artifact cannot be removed.
	ErrArtifactRemoveFailed = zerr.New("failed to remove artifact")

	// ErrAggregationFailed is returned when building an artifact fails.
	ErrAggregationFailed = zerr.New("failed to aggregate stylesheet")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidKeyStrategy is returned when the cache key strategy is not recognised.
	ErrInvalidKeyStrategy = zerr.New("invalid cache key strategy, expected 'hashed' or 'literal'")

	// ErrInvalidResolvePolicy is returned when the resolver policy is not recognised.
	ErrInvalidResolvePolicy = zerr.New("invalid resolver policy, expected 'strict' or 'lenient'")

	// ErrServerFailed is returned when the HTTP server stops with an error.
	ErrServerFailed = zerr.New("http server failed")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")

	// ErrWatcherRunning is returned when a file watcher is started twice.
	ErrWatcherRunning = zerr.New("file watcher already started")
)
