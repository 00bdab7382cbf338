package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

// MemoryStore is an in-process DocumentStore with the same semantics as
// RedisStore. Documents are held encoded, so readers never share memory with
// writers.
type MemoryStore struct {
	mu        sync.Mutex
	now       func() time.Time
	documents map[string][]byte
	watchers  map[string]map[*memorySubscription]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:       time.Now,
		documents: make(map[string][]byte),
		watchers:  make(map[string]map[*memorySubscription]struct{}),
	}
}

// WithClock replaces the clock used for ServerTimestamp.
func (that *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.now = now

	return that
}

func (that *MemoryStore) Create(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return persistenceError("create", documentKey(collection, id), err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	key := documentKey(collection, id)
	if _, ok := that.documents[key]; ok {
		return fmt.Errorf("%w: %s", ErrDocumentExists, key)
	}

	doc, err := NewDocument(fields, that.now())
	if err != nil {
		return fmt.Errorf("could not build document %s: %w", key, err)
	}

	return that.commit(key, doc)
}

func (that *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	key := documentKey(collection, id)
	if err := ctx.Err(); err != nil {
		return nil, persistenceError("get", key, err)
	}

	that.mu.Lock()
	raw, ok := that.documents[key]
	that.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperror.ErrDeserialization, key, err)
	}

	return doc, nil
}

func (that *MemoryStore) UpdateFields(ctx context.Context, collection, id string, mutations ...Mutation) error {
	return that.RunTransaction(ctx, collection, id, func(Document) ([]Mutation, error) {
		return mutations, nil
	})
}

func (that *MemoryStore) AppendUnique(ctx context.Context, collection, id, path string, value any) error {
	return that.UpdateFields(ctx, collection, id, ArrayUnion(path, value))
}

// RunTransaction holds the store lock for the whole read-decide-write cycle,
// so fn always sees the latest document and never has to be retried.
func (that *MemoryStore) RunTransaction(ctx context.Context, collection, id string, fn TxFunc) error {
	key := documentKey(collection, id)
	if err := ctx.Err(); err != nil {
		return persistenceError("update", key, err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	raw, ok := that.documents[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", apperror.ErrDeserialization, key, err)
	}

	mutations, err := fn(doc.Clone())
	if err != nil {
		return err
	}

	if len(mutations) == 0 {
		return nil
	}

	if err = doc.Apply(that.now(), mutations...); err != nil {
		return fmt.Errorf("could not apply update to %s: %w", key, err)
	}

	return that.commit(key, doc)
}

// Put stores raw bytes as a document, bypassing validation. Tests use it to
// plant malformed documents.
func (that *MemoryStore) Put(collection, id string, raw []byte) {
	that.mu.Lock()
	defer that.mu.Unlock()

	key := documentKey(collection, id)
	that.documents[key] = raw
	that.notify(key, raw)
}

func (that *MemoryStore) Subscribe(ctx context.Context, collection, id string, onChange ChangeFunc) (Subscription, error) {
	key := documentKey(collection, id)
	if err := ctx.Err(); err != nil {
		return nil, persistenceError("subscribe", key, err)
	}

	sub := &memorySubscription{
		store:    that,
		key:      key,
		onChange: onChange,
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	that.mu.Lock()
	if that.watchers[key] == nil {
		that.watchers[key] = make(map[*memorySubscription]struct{})
	}
	that.watchers[key][sub] = struct{}{}
	sub.push(that.documents[key])
	that.mu.Unlock()

	go sub.run(ctx)

	return sub, nil
}

func (that *MemoryStore) Close() error {
	that.mu.Lock()
	watchers := that.watchers
	that.watchers = make(map[string]map[*memorySubscription]struct{})
	that.mu.Unlock()

	for _, subs := range watchers {
		for sub := range subs {
			sub.stop()
		}
	}

	return nil
}

// commit must be called with the lock held.
func (that *MemoryStore) commit(key string, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not marshal document %s: %w", key, err)
	}

	that.documents[key] = raw
	that.notify(key, raw)

	return nil
}

func (that *MemoryStore) notify(key string, raw []byte) {
	for sub := range that.watchers[key] {
		sub.push(raw)
	}
}

func (that *MemoryStore) unregister(sub *memorySubscription) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.watchers[sub.key], sub)
	if len(that.watchers[sub.key]) == 0 {
		delete(that.watchers, sub.key)
	}
}

// memorySubscription keeps only the newest undelivered snapshot. Handlers
// re-render from full snapshots, so skipping superseded ones loses nothing.
type memorySubscription struct {
	store    *MemoryStore
	key      string
	onChange ChangeFunc

	mu         sync.Mutex
	pending    []byte
	hasPending bool

	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (that *memorySubscription) push(raw []byte) {
	that.mu.Lock()
	that.pending = raw
	that.hasPending = true
	that.mu.Unlock()

	select {
	case that.notify <- struct{}{}:
	default:
	}
}

func (that *memorySubscription) run(ctx context.Context) {
	defer that.Close() //nolint: errcheck // never fails

	for {
		select {
		case <-ctx.Done():
			return
		case <-that.done:
			return
		case <-that.notify:
		}

		that.mu.Lock()
		raw, ok := that.pending, that.hasPending
		that.pending, that.hasPending = nil, false
		that.mu.Unlock()

		if !ok {
			continue
		}

		if raw == nil {
			that.onChange(nil, nil)
			continue
		}

		doc, err := DecodeDocument(raw)
		if err != nil {
			that.onChange(nil, fmt.Errorf("%w: %s: %w", apperror.ErrDeserialization, that.key, err))
			continue
		}

		that.onChange(doc, nil)
	}
}

func (that *memorySubscription) stop() {
	that.once.Do(func() {
		close(that.done)
	})
}

func (that *memorySubscription) Close() error {
	that.stop()
	that.store.unregister(that)

	return nil
}

var _ DocumentStore = (*MemoryStore)(nil)
