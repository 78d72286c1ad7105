package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formstep/internal/config"
	"github.com/goliatone/go-formstep/pkg/model"
	"github.com/goliatone/go-formstep/pkg/storage"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Store:      config.StoreFile,
		StoreDir:   filepath.Join(dir, "records"),
		SQLitePath: filepath.Join(dir, "formstep.db"),
		StorageKey: storage.DefaultKey,
		LogLevel:   "error",
		LogFormat:  "json",
		LogFile:    filepath.Join(dir, "formstep.log"),
	}
}

func TestOpenStore_Drivers(t *testing.T) {
	ctx := context.Background()
	for _, driver := range []string{config.StoreMemory, config.StoreFile, config.StoreSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := baseConfig(t)
			cfg.Store = driver

			store, err := OpenStore(ctx, cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })

			want := model.FormData{Name: "Ada"}
			require.NoError(t, storage.SaveRecord(ctx, store, cfg.StorageKey, want))
			got, err := storage.LoadRecord(ctx, store, cfg.StorageKey)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Store = "etcd"
	_, err := OpenStore(context.Background(), cfg)
	assert.ErrorContains(t, err, `unknown store driver "etcd"`)
}

func TestNew_BuildsRuntime(t *testing.T) {
	cfg := baseConfig(t)

	rt, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, rt.Logger)
	require.NotNil(t, rt.Store)
	assert.Equal(t, "Date of Birth", rt.Layout.Field(model.FieldDOB).Label)

	rt.Logger.Error("boom")
	require.NoError(t, rt.Close())
	require.NoError(t, rt.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "boom")
}

func TestNew_BadLayoutReleasesResources(t *testing.T) {
	cfg := baseConfig(t)
	cfg.LayoutFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "bootstrap: layout")
}
