// Package testsupport holds helpers shared by backend tests. StoreContract
// runs the behaviour every storage.Store must honour so each backend only has
// to supply a constructor.
package testsupport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/storage"
)

// StoreContract exercises load/save/delete semantics against a fresh store
// returned by newStore for each subtest.
func StoreContract(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Load(context.Background(), "absent")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		assert.ErrorIs(t, store.Save(ctx, "  ", []byte("{}")), storage.ErrEmptyKey)
		_, err := store.Load(ctx, "")
		assert.ErrorIs(t, err, storage.ErrEmptyKey)
		assert.ErrorIs(t, store.Delete(ctx, ""), storage.ErrEmptyKey)
	})

	t.Run("save overwrites", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.Save(ctx, "k", []byte(`{"name":"one"}`)))
		require.NoError(t, store.Save(ctx, "k", []byte(`{"name":"two"}`)))
		got, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"two"}`, string(got))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.Save(ctx, "k", []byte("{}")))
		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "k"))
		_, err := store.Load(ctx, "k")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("keys are isolated", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		require.NoError(t, store.Save(ctx, "formData:a", []byte(`"a"`)))
		require.NoError(t, store.Save(ctx, "formData:b", []byte(`"b"`)))
		require.NoError(t, store.Delete(ctx, "formData:a"))
		got, err := store.Load(ctx, "formData:b")
		require.NoError(t, err)
		assert.Equal(t, `"b"`, string(got))
	})

	t.Run("record round trip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		want := model.FormData{Name: "Ada", DOB: "1990-01-01", Gender: "Female", Email: "ada@example.com", Phone: "5551234567", Address: "12 Analytical Row"}
		require.NoError(t, storage.SaveRecord(ctx, store, storage.DefaultKey, want))
		got, err := storage.LoadRecord(ctx, store, storage.DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("cancelled context", func(t *testing.T) {
		store := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, store.Save(ctx, "k", []byte("{}")))
	})
}
