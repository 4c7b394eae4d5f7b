package store

import (
	"encoding/json"
	"fmt"
)

// Collection is a typed view over one storage key with a default seed.
// T is usually a slice of records, or a single snapshot struct.
type Collection[T any] struct {
	db   *DB
	key  string
	seed func() T
}

// NewCollection binds a collection to its storage key. seed produces the
// value written the first time the key is read and found empty.
func NewCollection[T any](db *DB, key string, seed func() T) *Collection[T] {
	return &Collection[T]{db: db, key: key, seed: seed}
}

// Key returns the storage key.
func (c *Collection[T]) Key() string { return c.key }

// Load returns the persisted value. An absent key is seeded first. The stored
// blob is decoded as-is: there is no schema check or migration.
func (c *Collection[T]) Load() (T, error) {
	var v T

	raw, ok, err := c.db.Get(c.key)
	if err != nil {
		return v, fmt.Errorf("reading %s: %w", c.key, err)
	}
	if !ok {
		seed, err := json.Marshal(c.seed())
		if err != nil {
			return v, fmt.Errorf("encoding seed for %s: %w", c.key, err)
		}
		raw, err = c.db.PutIfAbsent(c.key, seed)
		if err != nil {
			return v, fmt.Errorf("seeding %s: %w", c.key, err)
		}
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decoding %s: %w", c.key, err)
	}
	return v, nil
}

// Save overwrites the whole persisted value.
func (c *Collection[T]) Save(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}
	if err := c.db.Put(c.key, data); err != nil {
		return fmt.Errorf("writing %s: %w", c.key, err)
	}
	return nil
}
