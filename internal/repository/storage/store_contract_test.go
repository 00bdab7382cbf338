package storage_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/repository/storage"
)

const (
	testCollection = "bingoGames"
	waitFor        = 5 * time.Second
	tick           = 10 * time.Millisecond
)

type newStoreFunc func(t *testing.T) (context.Context, storage.DocumentStore)

// snapshots records everything a subscription delivers.
type snapshots struct {
	mu   sync.Mutex
	docs []storage.Document
	errs []error
}

func (that *snapshots) onChange(doc storage.Document, err error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err != nil {
		that.errs = append(that.errs, err)
		return
	}

	that.docs = append(that.docs, doc)
}

func (that *snapshots) last() (storage.Document, int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.docs) == 0 {
		return nil, 0
	}

	return that.docs[len(that.docs)-1], len(that.docs)
}

func lookup(t *testing.T, doc storage.Document, path string) any {
	t.Helper()

	value, ok := doc.Lookup(path)
	require.True(t, ok, "missing %s", path)

	return value
}

// runDocumentStoreContract checks behaviour every DocumentStore must share.
func runDocumentStoreContract(t *testing.T, newStore newStoreFunc) {
	t.Run("Create then Get returns the document", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: a created document
		err := store.Create(ctx, testCollection, "AAAAAA", map[string]any{
			"players":       map[string]any{"p1": map[string]any{"name": "Player 1"}},
			"calledNumbers": []int{},
			"createdAt":     storage.ServerTimestamp,
		})
		require.NoError(t, err)

		// When: it is read back
		doc, err := store.Get(ctx, testCollection, "AAAAAA")

		// Then: fields survive and the timestamp is resolved by the store
		require.NoError(t, err)
		assert.Equal(t, "Player 1", lookup(t, doc, "players.p1.name"))
		assert.Equal(t, []any{}, lookup(t, doc, "calledNumbers"))

		createdAt, ok := lookup(t, doc, "createdAt").(string)
		require.True(t, ok)
		_, err = time.Parse(time.RFC3339Nano, createdAt)
		assert.NoError(t, err)
	})

	t.Run("Create never overwrites", func(t *testing.T) {
		ctx, store := newStore(t)

		require.NoError(t, store.Create(ctx, testCollection, "BBBBBB", map[string]any{"winner": "p1"}))

		err := store.Create(ctx, testCollection, "BBBBBB", map[string]any{"winner": "p2"})
		require.ErrorIs(t, err, storage.ErrDocumentExists)

		doc, err := store.Get(ctx, testCollection, "BBBBBB")
		require.NoError(t, err)
		assert.Equal(t, "p1", doc["winner"])
	})

	t.Run("Get on a missing document is not found", func(t *testing.T) {
		ctx, store := newStore(t)

		_, err := store.Get(ctx, testCollection, "NOPE")

		assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
	})

	t.Run("UpdateFields touches only the addressed fields", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: a document with two players
		require.NoError(t, store.Create(ctx, testCollection, "CCCCCC", map[string]any{
			"players": map[string]any{
				"p1": map[string]any{"name": "Player 1", "marked": []bool{false}},
			},
		}))

		// When: a second player and p1's marks are written separately
		require.NoError(t, store.UpdateFields(ctx, testCollection, "CCCCCC",
			storage.Set("players.p2", map[string]any{"name": "Player 2"})))
		require.NoError(t, store.UpdateFields(ctx, testCollection, "CCCCCC",
			storage.Set("players.p1.marked", []bool{true})))

		// Then: both writes are present and nothing else changed
		doc, err := store.Get(ctx, testCollection, "CCCCCC")
		require.NoError(t, err)
		assert.Equal(t, "Player 1", lookup(t, doc, "players.p1.name"))
		assert.Equal(t, []any{true}, lookup(t, doc, "players.p1.marked"))
		assert.Equal(t, "Player 2", lookup(t, doc, "players.p2.name"))
	})

	t.Run("UpdateFields on a missing document is not found", func(t *testing.T) {
		ctx, store := newStore(t)

		err := store.UpdateFields(ctx, testCollection, "NOPE", storage.Set("winner", "p1"))

		assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
	})

	t.Run("Concurrent AppendUnique loses nothing and keeps no duplicates", func(t *testing.T) {
		ctx, store := newStore(t)
		require.NoError(t, store.Create(ctx, testCollection, "DDDDDD", map[string]any{"calledNumbers": []int{}}))

		// When: many writers append overlapping values at once
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, store.AppendUnique(ctx, testCollection, "DDDDDD", "calledNumbers", i%10+1))
			}()
		}
		wg.Wait()

		// Then: each distinct value is present exactly once
		doc, err := store.Get(ctx, testCollection, "DDDDDD")
		require.NoError(t, err)
		assert.Len(t, lookup(t, doc, "calledNumbers"), 10)
	})

	t.Run("RunTransaction error writes nothing", func(t *testing.T) {
		ctx, store := newStore(t)
		require.NoError(t, store.Create(ctx, testCollection, "EEEEEE", map[string]any{"winner": nil}))

		errRejected := errors.New("rejected")
		err := store.RunTransaction(ctx, testCollection, "EEEEEE", func(storage.Document) ([]storage.Mutation, error) {
			return []storage.Mutation{storage.Set("winner", "p1")}, errRejected
		})
		require.ErrorIs(t, err, errRejected)

		doc, err := store.Get(ctx, testCollection, "EEEEEE")
		require.NoError(t, err)
		assert.Nil(t, doc["winner"])
	})

	t.Run("RunTransaction sees the current document", func(t *testing.T) {
		ctx, store := newStore(t)
		require.NoError(t, store.Create(ctx, testCollection, "FFFFFF", map[string]any{"winner": nil}))

		// When: two transactions race to set the winner only if unset
		ids := []string{"p1", "p2"}
		wrote := make([]bool, len(ids))

		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.RunTransaction(ctx, testCollection, "FFFFFF", func(doc storage.Document) ([]storage.Mutation, error) {
					wrote[i] = false
					if doc["winner"] != nil {
						return nil, nil
					}
					wrote[i] = true
					return []storage.Mutation{storage.Set("winner", id)}, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		// Then: exactly one transaction committed a winner and the other saw it set
		var writers []string
		for i, id := range ids {
			if wrote[i] {
				writers = append(writers, id)
			}
		}
		require.Len(t, writers, 1)

		doc, err := store.Get(ctx, testCollection, "FFFFFF")
		require.NoError(t, err)
		assert.Equal(t, writers[0], doc["winner"])
	})

	t.Run("Subscribe delivers the current snapshot and every change", func(t *testing.T) {
		ctx, store := newStore(t)
		require.NoError(t, store.Create(ctx, testCollection, "GGGGGG", map[string]any{"calledNumbers": []int{}}))

		// Given: a subscription
		var got snapshots
		sub, err := store.Subscribe(ctx, testCollection, "GGGGGG", got.onChange)
		require.NoError(t, err)
		t.Cleanup(func() { _ = sub.Close() })

		// Then: the initial snapshot arrives first
		require.Eventually(t, func() bool {
			_, n := got.last()
			return n >= 1
		}, waitFor, tick)

		// When: a number is appended
		require.NoError(t, store.AppendUnique(ctx, testCollection, "GGGGGG", "calledNumbers", 42))

		// Then: the full updated document is pushed
		require.Eventually(t, func() bool {
			doc, _ := got.last()
			numbers, ok := doc["calledNumbers"].([]any)
			return ok && len(numbers) == 1
		}, waitFor, tick)
	})

	t.Run("Subscribe to a missing document yields nil", func(t *testing.T) {
		ctx, store := newStore(t)

		var (
			mu      sync.Mutex
			calls   int
			lastDoc storage.Document
		)
		sub, err := store.Subscribe(ctx, testCollection, "HHHHHH", func(doc storage.Document, err error) {
			mu.Lock()
			defer mu.Unlock()
			assert.NoError(t, err)
			calls++
			lastDoc = doc
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = sub.Close() })

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return calls == 1 && lastDoc == nil
		}, waitFor, tick)
	})

	t.Run("Closed subscription receives nothing more", func(t *testing.T) {
		ctx, store := newStore(t)
		require.NoError(t, store.Create(ctx, testCollection, "IIIIII", map[string]any{"calledNumbers": []int{}}))

		var got snapshots
		sub, err := store.Subscribe(ctx, testCollection, "IIIIII", got.onChange)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			_, n := got.last()
			return n >= 1
		}, waitFor, tick)

		// When: the subscription is closed and the document changes
		require.NoError(t, sub.Close())
		_, before := got.last()

		for i := range 3 {
			require.NoError(t, store.AppendUnique(ctx, testCollection, "IIIIII", "calledNumbers", fmt.Sprint(i)))
		}

		// Then: no further snapshots arrive
		time.Sleep(100 * time.Millisecond)
		_, after := got.last()
		assert.Equal(t, before, after)
	})
}
