package spectrum

import (
	"container/list"
	"context"
	"log/slog"
	"sync"

	"specgrid/internal/grid"
	"specgrid/internal/logging"
)

// Loader retrieves raw spectra for grid nodes with caching. A loader is
// bound to one catalog (one grid mode); the cache key is the node key.
//
// Concurrent Load calls for the same node share a single disk read.
// Entries persist for the loader's lifetime unless a byte bound is set, in
// which case least-recently-used spectra are evicted.
type Loader struct {
	catalog  *grid.Catalog
	logger   *slog.Logger
	maxBytes int64

	mu       sync.Mutex
	entries  map[grid.NodeKey]*list.Element
	lru      list.List // front = most recently used
	bytes    int64
	inflight map[grid.NodeKey]*loadCall
}

type cacheEntry struct {
	key grid.NodeKey
	raw *Raw
}

type loadCall struct {
	done chan struct{}
	raw  *Raw
	err  error
}

// LoaderOption customizes loader construction.
type LoaderOption func(*Loader)

// WithMaxBytes bounds the cache; zero keeps it unbounded.
func WithMaxBytes(maxBytes int64) LoaderOption {
	return func(l *Loader) { l.maxBytes = maxBytes }
}

// NewLoader builds a loader over the catalog.
func NewLoader(catalog *grid.Catalog, logger *slog.Logger, opts ...LoaderOption) *Loader {
	loader := &Loader{
		catalog:  catalog,
		logger:   logging.NewComponentLogger(logger, "loader"),
		entries:  make(map[grid.NodeKey]*list.Element),
		inflight: make(map[grid.NodeKey]*loadCall),
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// Load returns the raw spectrum for the node, reading it from disk on first
// access.
func (l *Loader) Load(ctx context.Context, key grid.NodeKey) (*Raw, error) {
	l.mu.Lock()
	if elem, ok := l.entries[key]; ok {
		l.lru.MoveToFront(elem)
		raw := elem.Value.(*cacheEntry).raw
		l.mu.Unlock()
		return raw, nil
	}
	if call, ok := l.inflight[key]; ok {
		l.mu.Unlock()
		select {
		case <-call.done:
			return call.raw, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &loadCall{done: make(chan struct{})}
	l.inflight[key] = call
	l.mu.Unlock()

	call.raw, call.err = l.read(key)
	close(call.done)

	l.mu.Lock()
	delete(l.inflight, key)
	if call.err == nil {
		l.insert(key, call.raw)
	}
	l.mu.Unlock()

	return call.raw, call.err
}

func (l *Loader) read(key grid.NodeKey) (*Raw, error) {
	path, err := l.catalog.Locate(key)
	if err != nil {
		return nil, err
	}
	raw, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("node spectrum loaded",
		logging.String("key", string(key)),
		logging.Int("points", len(raw.Wave)))
	return raw, nil
}

// insert assumes l.mu is held.
func (l *Loader) insert(key grid.NodeKey, raw *Raw) {
	elem := l.lru.PushFront(&cacheEntry{key: key, raw: raw})
	l.entries[key] = elem
	l.bytes += raw.SizeBytes()

	if l.maxBytes <= 0 {
		return
	}
	for l.bytes > l.maxBytes && l.lru.Len() > 1 {
		oldest := l.lru.Back()
		entry := oldest.Value.(*cacheEntry)
		l.lru.Remove(oldest)
		delete(l.entries, entry.key)
		l.bytes -= entry.raw.SizeBytes()
		l.logger.Debug("evicted cached spectrum",
			logging.String("key", string(entry.key)))
	}
}

// CachedCount reports how many spectra the cache currently holds.
func (l *Loader) CachedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// CachedBytes reports the approximate cache footprint.
func (l *Loader) CachedBytes() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bytes
}
