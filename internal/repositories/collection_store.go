package repositories

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"portside_pos_backend/pkg/utils"
)

// Collection keys. They match the keys the browser client used in local
// storage so exported data can be imported unchanged.
const (
	KeyMenu         = "menuData"
	KeyActiveOrders = "activeOrders"
	KeySalesHistory = "salesHistory"
	KeyStaff        = "staffData"
	KeyInventory    = "inventory"
	KeyExpenses     = "expenses"
	KeyAdminConfig  = "adminConfig"
	KeyAppSettings  = "appSettings"
)

// CollectionStore is the shared persisted state every screen reads and
// writes. Each collection is one JSON document under a fixed key.
//
// Atomically runs fn against a transactional view of the store: all writes
// made through tx land together or not at all. Calling Atomically on a
// transactional view just runs fn in the same transaction.
type CollectionStore interface {
	Read(key string, dest interface{}) (bool, error)
	Write(key string, value interface{}) error
	Atomically(fn func(tx CollectionStore) error) error
}

// decodeCollection unmarshals a stored document. A JSON null counts as absent.
func decodeCollection(key string, raw []byte, dest interface{}) (bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptCollection, key, err)
	}
	return true, nil
}

func encodeCollection(key string, value interface{}) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s: %v", ErrDatabaseError, key, err)
	}
	return raw, nil
}

// loadCollection reads key into a T. Missing or unreadable data falls back
// to the collection's default; only storage failures are returned.
func loadCollection[T any](exec CollectionStore, key string, fallback func() T) (T, error) {
	var value T
	found, err := exec.Read(key, &value)
	if err != nil {
		if errors.Is(err, ErrCorruptCollection) {
			utils.LogWarn(err, "Collection unreadable, using defaults", map[string]interface{}{"collection": key})
			return fallback(), nil
		}
		var zero T
		return zero, err
	}
	if !found {
		return fallback(), nil
	}
	return value, nil
}
