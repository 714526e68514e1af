package persist

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"buylist/internal/model"
	"buylist/internal/storage"
)

// DefaultKey is the store key holding the serialized list.
const DefaultKey = "buyListItems"

// Adapter reads and writes the whole list as one JSON value under a single key.
type Adapter struct {
	kv     storage.KV
	key    string
	logger *zap.Logger
}

func New(kv storage.KV, key string, logger *zap.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{kv: kv, key: key, logger: logger}
}

func (a *Adapter) Key() string { return a.key }

// Save overwrites the stored list with items.
func (a *Adapter) Save(items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := a.kv.Set(a.key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", a.key, err)
	}
	return nil
}

// Load returns the stored list. Missing, unreadable or malformed data all
// yield nil: callers treat that as nothing persisted.
func (a *Adapter) Load() []model.Item {
	data, ok, err := a.kv.Get(a.key)
	if err != nil {
		a.logger.Warn("read stored items", zap.String("key", a.key), zap.Error(err))
		return nil
	}
	if !ok || data == "" {
		return nil
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		a.logger.Warn("parse stored items", zap.String("key", a.key), zap.Error(err))
		return nil
	}
	return items
}

// Clear drops the stored list.
func (a *Adapter) Clear() error {
	if err := a.kv.Delete(a.key); err != nil {
		return fmt.Errorf("delete %s: %w", a.key, err)
	}
	return nil
}
