package objstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// commonPrefix marks object ids that live in the document-wide store.
const commonPrefix = "g_"

// IsCommon reports whether an object id belongs to the document-wide store.
func IsCommon(id string) bool {
	return strings.HasPrefix(id, commonPrefix)
}

// Store is an asynchronous string-keyed object dictionary. The zero value
// is not usable; call New.
type Store struct {
	mu      sync.Mutex
	objs    map[string]interface{}
	done    map[string]bool
	waiters map[string][]func(interface{})
}

// New creates an empty store.
func New() *Store {
	return &Store{
		objs:    make(map[string]interface{}),
		done:    make(map[string]bool),
		waiters: make(map[string][]func(interface{})),
	}
}

// FromMap creates a store with every entry already resolved.
func FromMap(objs map[string]interface{}) *Store {
	s := New()
	for id, obj := range objs {
		s.Resolve(id, obj)
	}
	return s
}

// Get invokes cb with the object once it is resolved. If the object is
// already resolved the callback runs synchronously on the caller's
// goroutine; otherwise it runs on the resolving goroutine.
func (s *Store) Get(id string, cb func(interface{})) {
	s.mu.Lock()
	if s.done[id] {
		obj := s.objs[id]
		s.mu.Unlock()
		cb(obj)
		return
	}
	s.waiters[id] = append(s.waiters[id], cb)
	s.mu.Unlock()
}

// Resolve publishes an object and fires any pending callbacks. Resolving an
// id twice replaces the stored object; callbacks only fire once.
func (s *Store) Resolve(id string, obj interface{}) {
	s.mu.Lock()
	s.objs[id] = obj
	s.done[id] = true
	pending := s.waiters[id]
	delete(s.waiters, id)
	s.mu.Unlock()

	for _, cb := range pending {
		cb(obj)
	}
}

// Has reports whether the id has been resolved.
func (s *Store) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done[id]
}

// Cached returns the object if it has been resolved.
func (s *Store) Cached(id string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objs[id], s.done[id]
}

// Await blocks until every id in ids has been resolved in its store — the
// common store for "g_" ids, the page store otherwise — or until the context
// is cancelled.
func Await(ctx context.Context, common, page *Store, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(len(ids))
	for _, id := range ids {
		store := page
		if IsCommon(id) {
			store = common
		}
		if store == nil {
			return fmt.Errorf("no store for object %q", id)
		}
		store.Get(id, func(interface{}) { wg.Done() })
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
