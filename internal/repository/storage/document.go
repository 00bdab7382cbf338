package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var ErrInvalidPath = errors.New("invalid field path")

// Document is a decoded JSON document. Numbers are kept as json.Number.
type Document map[string]any

type serverTimestamp struct{}

// ServerTimestamp is replaced with the store's clock when a write commits.
var ServerTimestamp = serverTimestamp{} //nolint: gochecknoglobals // sentinel value

type mutationOp int

const (
	opSet mutationOp = iota
	opArrayUnion
)

// Mutation is a single field-scoped write addressed by a dotted path such as
// "players.abc.marked".
type Mutation struct {
	op     mutationOp
	path   string
	values []any
}

func Set(path string, value any) Mutation {
	return Mutation{op: opSet, path: path, values: []any{value}}
}

// ArrayUnion appends each value that is not already present in the array.
func ArrayUnion(path string, values ...any) Mutation {
	return Mutation{op: opArrayUnion, path: path, values: values}
}

func (that Mutation) Path() string {
	return that.path
}

// Lookup returns the value at a dotted path.
func (that Document) Lookup(path string) (any, bool) {
	var current any = map[string]any(that)

	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Clone returns a deep copy that shares nothing with the original.
func (that Document) Clone() Document {
	raw, err := json.Marshal(that)
	if err != nil {
		return Document{}
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		return Document{}
	}

	return doc
}

// Decode converts the document into a typed value.
func (that Document) Decode(out any) error {
	raw, err := json.Marshal(that)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	if err = decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	return nil
}

func DecodeDocument(raw []byte) (Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	if doc == nil {
		doc = Document{}
	}

	return doc, nil
}

// NewDocument normalises a typed value into a Document, resolving any
// top-level ServerTimestamp fields with now.
func NewDocument(fields map[string]any, now time.Time) (Document, error) {
	doc := make(Document, len(fields))

	for key, value := range fields {
		normalized, err := normalize(value, now)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		doc[key] = normalized
	}

	return doc, nil
}

// Apply runs mutations in order against the document.
func (that Document) Apply(now time.Time, mutations ...Mutation) error {
	for _, mutation := range mutations {
		if err := that.apply(now, mutation); err != nil {
			return err
		}
	}

	return nil
}

func (that Document) apply(now time.Time, mutation Mutation) error {
	segments := strings.Split(mutation.path, ".")
	for _, segment := range segments {
		if segment == "" {
			return fmt.Errorf("%w: %q", ErrInvalidPath, mutation.path)
		}
	}

	parent, err := that.parentOf(segments)
	if err != nil {
		return fmt.Errorf("%w: %q", err, mutation.path)
	}

	leaf := segments[len(segments)-1]

	switch mutation.op {
	case opSet:
		value, err := normalize(mutation.values[0], now)
		if err != nil {
			return err
		}
		parent[leaf] = value

	case opArrayUnion:
		var items []any
		if existing, ok := parent[leaf]; ok && existing != nil {
			items, ok = existing.([]any)
			if !ok {
				return fmt.Errorf("%w: %q is not an array", ErrInvalidPath, mutation.path)
			}
		}

		for _, raw := range mutation.values {
			value, err := normalize(raw, now)
			if err != nil {
				return err
			}

			if !containsValue(items, value) {
				items = append(items, value)
			}
		}

		if items == nil {
			items = []any{}
		}
		parent[leaf] = items
	}

	return nil
}

// parentOf walks to the map holding the last segment, creating maps on the way.
func (that Document) parentOf(segments []string) (map[string]any, error) {
	node := map[string]any(that)

	for _, segment := range segments[:len(segments)-1] {
		next, ok := node[segment]
		if !ok || next == nil {
			child := make(map[string]any)
			node[segment] = child
			node = child
			continue
		}

		child, ok := next.(map[string]any)
		if !ok {
			return nil, ErrInvalidPath
		}
		node = child
	}

	return node, nil
}

func containsValue(items []any, value any) bool {
	for _, item := range items {
		if reflect.DeepEqual(item, value) {
			return true
		}
	}

	return false
}

// normalize turns any JSON-encodable value into the generic form stored in a
// Document, so writes compare equal to values read back from the store.
func normalize(value any, now time.Time) (any, error) {
	if _, ok := value.(serverTimestamp); ok {
		return now.UTC().Format(time.RFC3339Nano), nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var out any
	if err = decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to normalize value: %w", err)
	}

	return out, nil
}
