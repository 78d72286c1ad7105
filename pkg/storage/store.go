// Package storage persists the in-progress form record under a single key.
// Backends only move opaque bytes; LoadRecord and SaveRecord own the JSON
// encoding so every backend shares one wire format.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-formstep/pkg/model"
)

// DefaultKey is the key the record is stored under unless configured otherwise.
const DefaultKey = "formData"

var (
	// ErrNotFound is returned by Load when no value exists for the key.
	ErrNotFound = errors.New("storage: key not found")
	// ErrEmptyKey is returned when an operation is attempted with a blank key.
	ErrEmptyKey = errors.New("storage: key is required")
	// ErrCorrupt wraps decode failures of a persisted record.
	ErrCorrupt = errors.New("storage: corrupt record")
)

// Store is a minimal key-value store.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadRecord reads and decodes the record stored under key. A missing key
// yields ErrNotFound; undecodable bytes yield an error wrapping ErrCorrupt.
func LoadRecord(ctx context.Context, store Store, key string) (model.FormData, error) {
	if store == nil {
		return model.FormData{}, errors.New("storage: store is nil")
	}
	raw, err := store.Load(ctx, key)
	if err != nil {
		return model.FormData{}, err
	}
	var data model.FormData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.FormData{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return data, nil
}

// SaveRecord encodes data as a JSON object and writes it under key.
func SaveRecord(ctx context.Context, store Store, key string, data model.FormData) error {
	if store == nil {
		return errors.New("storage: store is nil")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("storage: encode record: %w", err)
	}
	return store.Save(ctx, key, raw)
}
