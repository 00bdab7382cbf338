package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

// publishScript bumps the document revision and publishes the snapshot tagged
// with it. It runs inside the committing MULTI.
var publishScript = redis.NewScript(`
local revision = redis.call("INCR", KEYS[1])
redis.call("PUBLISH", ARGV[1], revision .. "\n" .. ARGV[2])
return revision
`)

func publishChange(ctx context.Context, pipe redis.Pipeliner, collection, id string, raw []byte) {
	publishScript.Eval(ctx, pipe, []string{revisionKey(collection, id)}, changesChannel(collection, id), string(raw))
}

// decodeChange splits a "<revision>\n<document>" notification.
func decodeChange(payload string) (int64, []byte, error) {
	head, body, ok := strings.Cut(payload, "\n")
	if !ok {
		return 0, nil, errors.New("notification without revision")
	}

	revision, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("bad revision %q: %w", head, err)
	}

	return revision, []byte(body), nil
}

// RedisStore keeps each document as a JSON value under "<collection>:<id>" and
// publishes every committed snapshot on "<collection>:<id>:changes", tagged with
// the revision counter kept under "<collection>:<id>:rev".
type RedisStore struct {
	logger    *slog.Logger
	client    *redis.Client
	txRetries int
}

func NewRedisStore(logger *slog.Logger, client *redis.Client, txRetries int) *RedisStore {
	if txRetries <= 0 {
		txRetries = defaultTxRetries
	}

	return &RedisStore{
		logger:    logger.With("component", "redis-store"),
		client:    client,
		txRetries: txRetries,
	}
}

func (that *RedisStore) Create(ctx context.Context, collection, id string, fields map[string]any) error {
	key := documentKey(collection, id)

	now, err := that.client.Time(ctx).Result()
	if err != nil {
		return persistenceError("read server time", key, err)
	}

	doc, err := NewDocument(fields, now)
	if err != nil {
		return fmt.Errorf("could not build document %s: %w", key, err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not marshal document %s: %w", key, err)
	}

	err = that.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return persistenceError("create", key, err)
		}

		if exists > 0 {
			return fmt.Errorf("%w: %s", ErrDocumentExists, key)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, 0)
			publishChange(ctx, pipe, collection, id, raw)
			return nil
		})

		return err
	}, key)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%w: %s", ErrDocumentExists, key)
	case errors.Is(err, ErrDocumentExists), errors.Is(err, apperror.ErrPersistence):
		return err
	case err != nil:
		return persistenceError("create", key, err)
	}

	return nil
}

func (that *RedisStore) Get(ctx context.Context, collection, id string) (Document, error) {
	key := documentKey(collection, id)

	raw, err := that.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	}

	if err != nil {
		return nil, persistenceError("get", key, err)
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperror.ErrDeserialization, key, err)
	}

	return doc, nil
}

func (that *RedisStore) UpdateFields(ctx context.Context, collection, id string, mutations ...Mutation) error {
	return that.RunTransaction(ctx, collection, id, func(Document) ([]Mutation, error) {
		return mutations, nil
	})
}

func (that *RedisStore) AppendUnique(ctx context.Context, collection, id, path string, value any) error {
	return that.UpdateFields(ctx, collection, id, ArrayUnion(path, value))
}

// RunTransaction reads the document under WATCH, lets fn decide the writes and
// commits them in MULTI together with the change notification. A concurrent
// write to the same key aborts the commit and fn runs again on fresh data.
func (that *RedisStore) RunTransaction(ctx context.Context, collection, id string, fn TxFunc) error {
	key := documentKey(collection, id)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
		}

		if err != nil {
			return persistenceError("get", key, err)
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

		now, err := tx.Time(ctx).Result()
		if err != nil {
			return persistenceError("read server time", key, err)
		}

		if err = doc.Apply(now, mutations...); err != nil {
			return fmt.Errorf("could not apply update to %s: %w", key, err)
		}

		updated, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("could not marshal document %s: %w", key, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			publishChange(ctx, pipe, collection, id, updated)
			return nil
		})
		if err != nil && !errors.Is(err, redis.TxFailedErr) {
			return persistenceError("commit", key, err)
		}

		return err
	}

	for attempt := range that.txRetries {
		var fnErr error
		err := that.client.Watch(ctx, func(tx *redis.Tx) error {
			fnErr = txf(tx)
			return fnErr
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			that.logger.Debug("transaction conflict, retrying", "key", key, "attempt", attempt+1)
			continue
		}

		if err != nil && fnErr == nil {
			return persistenceError("watch", key, err)
		}

		return err
	}

	return fmt.Errorf("%w: %s: %w", apperror.ErrPersistence, key, ErrTxConflict)
}

// Subscribe delivers the current snapshot first and then every newer one.
// Notifications published before the initial read are dropped by revision.
func (that *RedisStore) Subscribe(ctx context.Context, collection, id string, onChange ChangeFunc) (Subscription, error) {
	key := documentKey(collection, id)

	pubsub := that.client.Subscribe(ctx, changesChannel(collection, id))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, persistenceError("subscribe", key, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &redisSubscription{pubsub: pubsub, cancel: cancel}
	messages := pubsub.Channel()

	go func() {
		doc, seen, err := that.snapshot(subCtx, collection, id)
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			onChange(nil, nil)
		case subCtx.Err() != nil:
			return
		default:
			onChange(doc, err)
		}

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				revision, raw, err := decodeChange(msg.Payload)
				if err != nil {
					onChange(nil, fmt.Errorf("%w: %s: %w", apperror.ErrDeserialization, key, err))
					continue
				}

				if revision <= seen {
					continue
				}
				seen = revision

				snapshot, err := DecodeDocument(raw)
				if err != nil {
					onChange(nil, fmt.Errorf("%w: %s: %w", apperror.ErrDeserialization, key, err))
					continue
				}

				onChange(snapshot, nil)
			}
		}
	}()

	return sub, nil
}

// snapshot reads a document together with its revision in one MULTI.
func (that *RedisStore) snapshot(ctx context.Context, collection, id string) (Document, int64, error) {
	key := documentKey(collection, id)

	var docCmd, revisionCmd *redis.StringCmd
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		docCmd = pipe.Get(ctx, key)
		revisionCmd = pipe.Get(ctx, revisionKey(collection, id))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, persistenceError("get", key, err)
	}

	revision, err := revisionCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("%w: %s: revision: %w", apperror.ErrDeserialization, key, err)
	}

	raw, err := docCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, revision, fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		return nil, revision, fmt.Errorf("%w: %s: %w", apperror.ErrDeserialization, key, err)
	}

	return doc, revision, nil
}

func (that *RedisStore) Close() error {
	if err := that.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	cancel context.CancelFunc
	once   sync.Once
	err    error
}

func (that *redisSubscription) Close() error {
	that.once.Do(func() {
		that.cancel()
		that.err = that.pubsub.Close()
	})

	return that.err
}

func persistenceError(op, key string, err error) error {
	return fmt.Errorf("%w: failed to %s %s: %w", apperror.ErrPersistence, op, key, err)
}

var _ DocumentStore = (*RedisStore)(nil)

