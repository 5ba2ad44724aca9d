// Package view holds the client-side state coordination behind the dashboard:
// lazy per-parent child caches, the background status poller, the manual
// refresh action, and the report period selector. All of it sits on top of
// the typed API client and none of it renders anything.
package view

import (
	"context"
	"sync"
)

// EntryState tags a cache entry's lifecycle.
type EntryState int

const (
	// NotLoaded means the parent has never been expanded (or was invalidated).
	NotLoaded EntryState = iota
	// Loading means a fetch is in flight.
	Loading
	// Loaded means the entry holds the fetched children.
	Loaded
	// Failed means the fetch errored; the entry holds an empty slice and the
	// error was dropped. Lazy loads degrade to "no data", not an error banner.
	Failed
)

// ChildCache lazily loads and caches a parent's child collection (holdings
// by account, leases by unit, ...). A child collection is fetched at most
// once until invalidated.
type ChildCache[T any] struct {
	fetch func(ctx context.Context, parentID string) ([]T, error)

	mu       sync.Mutex
	entries  map[string]*cacheEntry[T]
	expanded string
}

type cacheEntry[T any] struct {
	state EntryState
	items []T
	done  chan struct{} // closed when an in-flight fetch settles
}

// NewChildCache creates a cache backed by the given fetch function.
func NewChildCache[T any](fetch func(ctx context.Context, parentID string) ([]T, error)) *ChildCache[T] {
	return &ChildCache[T]{
		fetch:   fetch,
		entries: make(map[string]*cacheEntry[T]),
	}
}

// Toggle expands or collapses a parent row. Re-toggling the expanded parent
// collapses it without touching the cache. Expanding a parent whose entry is
// absent starts a background fetch; expanding while that fetch is in flight
// does not start a second one. The returned channel closes when the entry
// has settled (immediately if no fetch was needed).
func (c *ChildCache[T]) Toggle(ctx context.Context, parentID string) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expanded == parentID {
		c.expanded = ""
		return closedChan()
	}
	c.expanded = parentID

	entry, ok := c.entries[parentID]
	if ok {
		if entry.state == Loading {
			return entry.done
		}
		return closedChan()
	}

	entry = &cacheEntry[T]{state: Loading, done: make(chan struct{})}
	c.entries[parentID] = entry

	go c.load(ctx, parentID, entry)
	return entry.done
}

// load runs the fetch and settles the entry. Errors are swallowed: a failed
// lazy load caches an empty slice under the Failed tag.
func (c *ChildCache[T]) load(ctx context.Context, parentID string, entry *cacheEntry[T]) {
	items, err := c.fetch(ctx, parentID)

	c.mu.Lock()
	if err != nil {
		entry.state = Failed
		entry.items = []T{}
	} else {
		entry.state = Loaded
		entry.items = items
	}
	c.mu.Unlock()

	close(entry.done)
}

// Get returns a parent's cached children and the entry's state. The slice is
// nil unless the state is Loaded or Failed.
func (c *ChildCache[T]) Get(parentID string) ([]T, EntryState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[parentID]
	if !ok {
		return nil, NotLoaded
	}
	return entry.items, entry.state
}

// Put replaces a parent's entry from a mutation response, avoiding a refetch
// when the handler already knows the new collection.
func (c *ChildCache[T]) Put(parentID string, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[parentID] = &cacheEntry[T]{state: Loaded, items: items, done: closedChan()}
}

// Invalidate drops a parent's entry so the next expand refetches.
func (c *ChildCache[T]) Invalidate(parentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, parentID)
}

// Keys lists every parent id with a cache entry, in no particular order.
// The manual refresh action fans out over these.
func (c *ChildCache[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Expanded returns the currently expanded parent id, or "".
func (c *ChildCache[T]) Expanded() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded
}

// Reload fetches a parent's children immediately and stores the result,
// regardless of the entry's current state. Used after a global action whose
// effects on the cached data are not known client-side.
func (c *ChildCache[T]) Reload(ctx context.Context, parentID string) error {
	items, err := c.fetch(ctx, parentID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.entries[parentID] = &cacheEntry[T]{state: Failed, items: []T{}, done: closedChan()}
		return err
	}
	c.entries[parentID] = &cacheEntry[T]{state: Loaded, items: items, done: closedChan()}
	return nil
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
