package domain

import "time"

// Artifact is a cached aggregation result. Its file modification time is its version.
type Artifact struct {
	Key     string
	Path    string
	ModTime time.Time
	// Body is nil when only the metadata was loaded.
	Body []byte
}

// Request is a transport-neutral stylesheet request.
type Request struct {
	Selector Selector
	// IfModifiedSince is the zero time when the client sent no conditional header.
	IfModifiedSince time.Time
	IfNoneMatch     string
}

// Outcome describes how a request was answered.
type Outcome uint8

const (
	// OutcomeEmpty means no fragment was selected; the response is empty.
	OutcomeEmpty Outcome = iota
	// OutcomeNotModified means the client copy is current.
	OutcomeNotModified
	// OutcomeCached means a fresh artifact was served from the cache.
	OutcomeCached
	// OutcomeRebuilt means the artifact was (re)built for this request.
	OutcomeRebuilt
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeNotModified:
		return "not-modified"
	case OutcomeCached:
		return "cached"
	case OutcomeRebuilt:
		return "rebuilt"
	default:
		return "unknown"
	}
}

// Response is the result of a stylesheet request.
type Response struct {
	Outcome Outcome
	Key     string
	Body    []byte
	ModTime time.Time
	ETag    string
}
