package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Blob holds the serialized JSON array of one collection.
type Blob interface {
	// Read returns the stored bytes, or nil and no error if the collection
	// has never been written.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored bytes as a whole.
	Write(ctx context.Context, data []byte) error
}

// Record is implemented by every type stored in a Collection.
type Record interface {
	GetID() string
	SetID(id string)
}

// Field gives a Collection access to a string key of its records.
type Field[T any] struct {
	Get func(T) string
	Set func(T, string)
}

// Collection is an ordered list of records persisted as one JSON array.
//
// Every operation loads the whole array, works on it and, for mutations,
// writes the whole array back. Lookups are linear scans so that duplicate
// keys left by older data behave predictably: Upsert touches the first match
// and FindLastBy returns the last one.
//
// The mutex serializes operations within this process only; two processes
// sharing the same backend can still lose updates.
type Collection[T Record] struct {
	name      string
	blob      Blob
	newRecord func() T

	mu sync.Mutex
}

// NewCollection creates a collection on top of blob. newRecord must return
// an empty record; Upsert uses it when no record matches.
func NewCollection[T Record](name string, blob Blob, newRecord func() T) *Collection[T] {
	return &Collection[T]{
		name:      name,
		blob:      blob,
		newRecord: newRecord,
	}
}

// LoadAll returns every record in stored order.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// PersistAll replaces the stored array with records.
func (c *Collection[T]) PersistAll(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persist(ctx, records)
}

// Append stores rec at the end of the collection under a new ID.
func (c *Collection[T]) Append(ctx context.Context, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	rec.SetID(uuid.New().String())
	return c.persist(ctx, append(records, rec))
}

// AppendUnique is Append guarded by a uniqueness check on field. The check
// and the write happen under one lock, so concurrent callers with the same
// key store at most one record. It returns ErrDuplicateKey if the key is taken.
func (c *Collection[T]) AppendUnique(ctx context.Context, field Field[T], rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	key := field.Get(rec)
	for _, existing := range records {
		if field.Get(existing) == key {
			return ErrDuplicateKey
		}
	}
	rec.SetID(uuid.New().String())
	return c.persist(ctx, append(records, rec))
}

// FindAllBy returns the records whose field equals value, in stored order.
func (c *Collection[T]) FindAllBy(ctx context.Context, field Field[T], value string) ([]T, error) {
	records, err := c.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []T
	for _, rec := range records {
		if field.Get(rec) == value {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// FindLastBy returns the most recently appended record whose field equals
// value. The boolean is false when nothing matches.
func (c *Collection[T]) FindLastBy(ctx context.Context, field Field[T], value string) (T, bool, error) {
	var zero T
	records, err := c.LoadAll(ctx)
	if err != nil {
		return zero, false, err
	}

	for i := len(records) - 1; i >= 0; i-- {
		if field.Get(records[i]) == value {
			return records[i], true, nil
		}
	}
	return zero, false, nil
}

// Upsert applies update to the first record whose field equals value. If
// there is none, update is applied to a new record that already carries a
// fresh ID and the key, and that record is appended. The returned boolean
// is true when a record was created.
func (c *Collection[T]) Upsert(ctx context.Context, field Field[T], value string, update func(T)) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	records, err := c.load(ctx)
	if err != nil {
		return zero, false, err
	}

	for _, rec := range records {
		if field.Get(rec) == value {
			update(rec)
			if err := c.persist(ctx, records); err != nil {
				return zero, false, err
			}
			return rec, false, nil
		}
	}

	rec := c.newRecord()
	rec.SetID(uuid.New().String())
	field.Set(rec, value)
	update(rec)
	if err := c.persist(ctx, append(records, rec)); err != nil {
		return zero, false, err
	}
	return rec, true, nil
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.blob.Read(ctx)
	if err != nil {
		return nil, &StorageError{Op: "read", Collection: c.name, Err: err}
	}
	if data == nil {
		return nil, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &StorageError{Op: "decode", Collection: c.name, Err: ErrNotArray}
	}

	var decoded []T
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, &StorageError{Op: "decode", Collection: c.name, Err: err}
	}

	// A literal null element has no record behind it.
	records := decoded[:0]
	for _, rec := range decoded {
		if !isNilRecord(rec) {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (c *Collection[T]) persist(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return &StorageError{Op: "encode", Collection: c.name, Err: err}
	}
	if err := c.blob.Write(ctx, data); err != nil {
		return &StorageError{Op: "write", Collection: c.name, Err: err}
	}
	return nil
}

func isNilRecord[T Record](rec T) bool {
	v := reflect.ValueOf(rec)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	return false
}
