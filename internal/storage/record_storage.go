package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Collection keeps one named list of records as a JSON array inside a single
// KV entry. Records are only ever appended; the whole entry is dropped on clear.
type Collection[T any] struct {
	kv     KV
	key    string
	logger *zap.Logger

	// read-modify-write 직렬화
	mu sync.Mutex
}

func NewCollection[T any](kv KV, key string, logger *zap.Logger) *Collection[T] {
	return &Collection[T]{
		kv:     kv,
		key:    key,
		logger: logger.With(zap.String("collection", key)),
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Append adds record to the end of the collection and writes the whole
// collection back. Unreadable stored data is treated as an empty collection.
func (c *Collection[T]) Append(record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := append(c.load(), record)
	data, err := json.Marshal(records)
	if err != nil {
		c.logger.Error("Append(): failed to encode collection", zap.Error(err))
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(c.key, string(data)); err != nil {
		c.logger.Error("Append(): failed to write collection", zap.Error(err))
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

// ReadAll returns the stored records in insertion order. It never fails:
// missing or invalid data yields an empty slice.
func (c *Collection[T]) ReadAll() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// ClearAll removes every record once confirm returns true. When archive is
// set it receives the records about to be deleted; an archive error keeps the
// collection. The snapshot and the delete happen under one lock, so an Append
// racing the clear either lands in the snapshot or survives it.
func (c *Collection[T]) ClearAll(confirm func() bool, archive func([]T) error) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if archive != nil {
		if err := archive(c.load()); err != nil {
			c.logger.Error("ClearAll(): snapshot failed, collection kept", zap.Error(err))
			return false, fmt.Errorf("archive %s: %w", c.key, err)
		}
	}

	if err := c.kv.Delete(c.key); err != nil {
		c.logger.Error("ClearAll(): failed to delete collection", zap.Error(err))
		return false, fmt.Errorf("clear %s: %w", c.key, err)
	}
	c.logger.Info("ClearAll(): all records cleared")
	return true, nil
}

func (c *Collection[T]) load() []T {
	records := []T{}

	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		c.logger.Error("failed to read collection", zap.Error(err))
		return records
	}
	if !ok || raw == "" {
		return records
	}

	var stored []T
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		c.logger.Error("stored collection is not a valid JSON array", zap.Error(err))
		return records
	}
	return append(records, stored...)
}
