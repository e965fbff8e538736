// Package records stores whole collections of JSON records under a single
// key of a storage.KV. Every operation reads the full collection, changes
// it in memory and writes it back.
package records

import (
	"encoding/json"
	"errors"
	"fmt"

	"schoolPortal/internal/storage"
)

// ErrCorruptStore matches any CorruptStoreError through errors.Is.
var ErrCorruptStore = errors.New("corrupt store")

// CorruptStoreError is returned when a key holds text that does not decode.
type CorruptStoreError struct {
	Key string
	Err error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt store under %q: %v", e.Key, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

func (e *CorruptStoreError) Is(target error) bool { return target == ErrCorruptStore }

// Collection is an ordered list of T persisted as a JSON array under Key.
// Records are identified by the value idOf returns.
type Collection[K comparable, T any] struct {
	kv   storage.KV
	key  string
	idOf func(T) K
}

func NewCollection[K comparable, T any](kv storage.KV, key string, idOf func(T) K) *Collection[K, T] {
	return &Collection[K, T]{kv: kv, key: key, idOf: idOf}
}

func (c *Collection[K, T]) Key() string { return c.key }

// Initialize writes seed only if the key is absent. It reports whether it
// wrote.
func (c *Collection[K, T]) Initialize(seed []T) (bool, error) {
	_, ok, err := c.kv.Get(c.key)
	if err != nil {
		return false, fmt.Errorf("initialize %s: %w", c.key, err)
	}
	if ok {
		return false, nil
	}
	if err := c.Save(seed); err != nil {
		return false, err
	}
	return true, nil
}

// All returns the collection in storage order. An absent key is an empty
// collection; unparseable content is a *CorruptStoreError.
func (c *Collection[K, T]) All() ([]T, error) {
	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &CorruptStoreError{Key: c.key, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[K, T]) Get(id K) (T, bool, error) {
	return c.Find(func(item T) bool { return c.idOf(item) == id })
}

// Find returns the first record satisfying match.
func (c *Collection[K, T]) Find(match func(T) bool) (T, bool, error) {
	var zero T
	items, err := c.All()
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if match(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Filter returns every record satisfying match, in storage order.
func (c *Collection[K, T]) Filter(match func(T) bool) ([]T, error) {
	items, err := c.All()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Append adds rec at the end without looking at its id.
func (c *Collection[K, T]) Append(rec T) error {
	items, err := c.All()
	if err != nil {
		return err
	}
	return c.Save(append(items, rec))
}

// Update applies mutate to the record with the given id. The id itself is
// restored afterwards so mutate cannot move a record.
func (c *Collection[K, T]) Update(id K, mutate func(*T)) (bool, error) {
	items, err := c.All()
	if err != nil {
		return false, err
	}
	for i := range items {
		if c.idOf(items[i]) != id {
			continue
		}
		before := items[i]
		mutate(&items[i])
		if c.idOf(items[i]) != id {
			items[i] = before
			return false, fmt.Errorf("update %s: record id may not change", c.key)
		}
		return true, c.Save(items)
	}
	return false, nil
}

// Delete removes the record with the given id.
func (c *Collection[K, T]) Delete(id K) (bool, error) {
	_, ok, err := c.DeleteFirst(func(item T) bool { return c.idOf(item) == id })
	return ok, err
}

// DeleteFirst removes the first record satisfying match and returns it.
func (c *Collection[K, T]) DeleteFirst(match func(T) bool) (T, bool, error) {
	var zero T
	items, err := c.All()
	if err != nil {
		return zero, false, err
	}
	for i, item := range items {
		if match(item) {
			rest := append(items[:i:i], items[i+1:]...)
			return item, true, c.Save(rest)
		}
	}
	return zero, false, nil
}

// Save replaces the whole collection.
func (c *Collection[K, T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(c.key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}
