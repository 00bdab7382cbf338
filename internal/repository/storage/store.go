package storage

import (
	"context"
	"errors"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already exists")
	ErrTxConflict       = errors.New("transaction aborted after repeated conflicts")
)

const defaultTxRetries = 10

// TxFunc inspects the current document and returns the writes to commit.
// It may run more than once when the document changes concurrently.
type TxFunc func(doc Document) ([]Mutation, error)

// ChangeFunc receives every snapshot of a watched document. A nil document
// with a nil error means the document does not exist.
type ChangeFunc func(doc Document, err error)

type Subscription interface {
	Close() error
}

// DocumentStore is a collection/document database with field-scoped writes
// and change notifications.
type DocumentStore interface {
	Create(ctx context.Context, collection, id string, fields map[string]any) error
	Get(ctx context.Context, collection, id string) (Document, error)
	UpdateFields(ctx context.Context, collection, id string, mutations ...Mutation) error
	AppendUnique(ctx context.Context, collection, id, path string, value any) error
	RunTransaction(ctx context.Context, collection, id string, fn TxFunc) error
	Subscribe(ctx context.Context, collection, id string, onChange ChangeFunc) (Subscription, error)
	Close() error
}

func documentKey(collection, id string) string {
	return collection + ":" + id
}

func changesChannel(collection, id string) string {
	return documentKey(collection, id) + ":changes"
}

func revisionKey(collection, id string) string {
	return documentKey(collection, id) + ":rev"
}
