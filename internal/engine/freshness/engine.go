// Package freshness implements the cache validation and conditional response protocol.
//
// An artifact is valid for an input set as long as no input was modified
// after the artifact file. Stale artifacts are removed and rebuilt in full.
package freshness

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/sheaf/internal/core/domain"
	"go.trai.ch/sheaf/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.StylesheetService = (*Engine)(nil)

// Engine answers stylesheet requests from the artifact cache, rebuilding on demand.
type Engine struct {
	lister     ports.Lister
	resolver   ports.Resolver
	keyer      ports.KeyDeriver
	store      ports.ArtifactStore
	aggregator ports.Aggregator
	tracer     ports.Tracer
	logger     ports.Logger
	defaults   domain.Options

	rebuilds singleflight.Group

	mu     sync.Mutex
	inputs map[string][]string
}

// Deps holds the collaborators of an Engine.
type Deps struct {
	Lister     ports.Lister
	Resolver   ports.Resolver
	Keyer      ports.KeyDeriver
	Store      ports.ArtifactStore
	Aggregator ports.Aggregator
	Tracer     ports.Tracer
	Logger     ports.Logger
}

// New creates an Engine. defaults are the options in effect before any script runs.
func New(deps Deps, defaults domain.Options) *Engine {
	return &Engine{
		lister:     deps.Lister,
		resolver:   deps.Resolver,
		keyer:      deps.Keyer,
		store:      deps.Store,
		aggregator: deps.Aggregator,
		tracer:     deps.Tracer,
		logger:     deps.Logger,
		defaults:   defaults,
		inputs:     make(map[string][]string),
	}
}

// Serve resolves the request selector and returns a cached, not-modified,
// rebuilt or empty response.
func (e *Engine) Serve(ctx context.Context, req domain.Request) (*domain.Response, error) {
	set, err := e.resolve(ctx, req.Selector)
	if err != nil {
		return nil, err
	}
	if set.Empty() {
		return &domain.Response{Outcome: domain.OutcomeEmpty}, nil
	}

	key := e.keyer.Key(set)
	e.remember(key, set)

	resp, err := e.check(ctx, key, set, req)
	if err != nil || resp != nil {
		return resp, err
	}

	return e.rebuild(ctx, key, set)
}

func (e *Engine) resolve(ctx context.Context, sel domain.Selector) (*domain.InputSet, error) {
	ctx, span := e.tracer.Start(ctx, "resolve")
	defer span.End()
	span.SetAttribute("selector", sel.String())

	snap, err := e.lister.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	set, err := e.resolver.Resolve(sel, snap)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("inputs", set.Names())
	return set, nil
}

// check returns a response when the cached artifact can be used, nil when it must be rebuilt.
func (e *Engine) check(ctx context.Context, key string, set *domain.InputSet, req domain.Request) (*domain.Response, error) {
	_, span := e.tracer.Start(ctx, "check")
	defer span.End()
	span.SetAttribute("key", key)

	art, err := e.store.Stat(key)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if art == nil {
		span.SetAttribute("result", "miss")
		return nil, nil
	}

	if newer, stale := set.NewerThan(art.ModTime); stale {
		span.SetAttribute("result", "stale")
		e.logger.Debug("artifact is stale", "key", key, "input", newer.Name)
		if err := e.store.Remove(key); err != nil {
			span.RecordError(err)
			return nil, err
		}
		return nil, nil
	}

	if !req.IfModifiedSince.IsZero() && req.IfModifiedSince.Unix() == art.ModTime.Unix() {
		span.SetAttribute("result", "not-modified")
		return &domain.Response{Outcome: domain.OutcomeNotModified, Key: key, ModTime: art.ModTime}, nil
	}

	loaded, err := e.store.Load(key)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if loaded == nil {
		// Removed by a concurrent invalidation.
		span.SetAttribute("result", "vanished")
		return nil, nil
	}

	etag := ETag(loaded.Body)
	if MatchETag(req.IfNoneMatch, etag) {
		span.SetAttribute("result", "not-modified")
		return &domain.Response{Outcome: domain.OutcomeNotModified, Key: key, ModTime: loaded.ModTime, ETag: etag}, nil
	}

	span.SetAttribute("result", "hit")
	return &domain.Response{
		Outcome: domain.OutcomeCached,
		Key:     key,
		Body:    loaded.Body,
		ModTime: loaded.ModTime,
		ETag:    etag,
	}, nil
}

// rebuild builds the artifact once per key no matter how many requests ask for it.
// The shared build outlives the request that started it; each caller only waits as
// long as its own context allows.
func (e *Engine) rebuild(ctx context.Context, key string, set *domain.InputSet) (*domain.Response, error) {
	buildCtx := context.WithoutCancel(ctx)
	ch := e.rebuilds.DoChan(key, func() (any, error) {
		ctx, span := e.tracer.Start(buildCtx, "rebuild")
		defer span.End()
		span.SetAttribute("key", key)

		css, _, err := e.aggregator.Build(ctx, set, e.defaults)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}

		art, err := e.store.Put(key, []byte(css))
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		span.SetAttribute("bytes", len(art.Body))
		return art, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrAggregationFailed.Error()), "key", key)
	}
	if res.Err != nil {
		return nil, zerr.With(zerr.Wrap(res.Err, domain.ErrAggregationFailed.Error()), "key", key)
	}

	art, ok := res.Val.(*domain.Artifact)
	if !ok {
		return nil, zerr.With(domain.ErrAggregationFailed, "key", key)
	}
	e.logger.Debug("rebuilt artifact", "key", key, "shared", res.Shared)

	return &domain.Response{
		Outcome: domain.OutcomeRebuilt,
		Key:     key,
		Body:    art.Body,
		ModTime: art.ModTime,
		ETag:    ETag(art.Body),
	}, nil
}

func (e *Engine) remember(key string, set *domain.InputSet) {
	files := set.Files()
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}

	e.mu.Lock()
	e.inputs[key] = names
	e.mu.Unlock()
}

// Invalidate removes every known artifact built from any of the named fragments.
// It returns the keys that were removed.
func (e *Engine) Invalidate(names []string) ([]string, error) {
	e.mu.Lock()
	var keys []string
	for key, inputs := range e.inputs {
		if slices.ContainsFunc(inputs, func(in string) bool { return slices.Contains(names, in) }) {
			keys = append(keys, key)
			delete(e.inputs, key)
		}
	}
	e.mu.Unlock()

	slices.Sort(keys)
	var removed []string
	for _, key := range keys {
		if err := e.store.Remove(key); err != nil {
			return removed, err
		}
		removed = append(removed, key)
	}
	return removed, nil
}
