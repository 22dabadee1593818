package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("http.addr", ":8080"))

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".weyfar"), dir)
}

func TestConfigStore_LoadsTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[api]
base_url = "https://api.example.com"
rate_per_second = 2.5
timeout_seconds = 15

[api.paths]
flights = "/v2/shopping/flight-offers"

[kafka]
brokers = ["localhost:9092", "localhost:9093"]

[search]
enhance = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", store.GetString("api.base_url"))
	assert.InDelta(t, 2.5, store.GetFloat("api.rate_per_second"), 0.0001)
	assert.Equal(t, 15, store.GetInt("api.timeout_seconds"))
	assert.Equal(t, "/v2/shopping/flight-offers", store.GetString("api.paths.flights"))
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, store.GetStringSlice("kafka.brokers"))
	assert.True(t, store.GetBool("search.enhance"))
	assert.Equal(t, []string{
		"api.base_url", "api.paths.flights", "api.rate_per_second", "api.timeout_seconds",
		"kafka.brokers", "search.enhance",
	}, store.Keys())
}

func TestConfigStore_TypedGettersConvert(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.timeout_seconds", "30"))
	require.NoError(t, store.Set("api.rate_per_second", int64(4)))
	require.NoError(t, store.Set("kafka.brokers", "a:9092,b:9092"))

	assert.Equal(t, 30, store.GetInt("api.timeout_seconds"))
	assert.InDelta(t, 4.0, store.GetFloat("api.rate_per_second"), 0.0001)
	assert.Equal(t, []string{"a:9092", "b:9092"}, store.GetStringSlice("kafka.brokers"))

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("api.base_url", "https://api.example.com"))
	require.NoError(t, store1.Set("api.rate_per_second", 5.0))
	require.NoError(t, store1.Set("airline.cache", "sqlite"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", store2.GetString("api.base_url"))
	assert.InDelta(t, 5.0, store2.GetFloat("api.rate_per_second"), 0.0001)
	assert.Equal(t, "sqlite", store2.GetString("airline.cache"))

	raw, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[api]")
	assert.Contains(t, string(raw), "[airline]")
}

func TestConfigStore_Set_RejectsConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "https://api.example.com"))

	err = store.Set("api", "x")
	require.Error(t, err)

	_, ok := store.Get("api")
	assert.False(t, ok, "failed set must be rolled back")
	assert.Equal(t, "https://api.example.com", store.GetString("api.base_url"))
}

func TestConfigStore_Set_InvalidKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "  ", ".api", "api."} {
		assert.Error(t, store.Set(key, "x"), key)
	}
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api.client_secret", "s3cret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[api\nbase_url ="), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_Reload(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("http.addr", ":8080"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[http]\naddr = \":9090\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, ":9090", store.GetString("http.addr"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("search.timeout_seconds", int64(i))
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.timeout_seconds")
			_ = store.Keys()
		}()
	}
	wg.Wait()

	_, ok := store.Get("search.timeout_seconds")
	assert.True(t, ok)
}
