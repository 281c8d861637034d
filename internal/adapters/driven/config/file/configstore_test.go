package file

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(KeyAccount, "user@example.com"))
	require.NoError(t, s.Set(KeyDriveID, "drive-123"))
	require.NoError(t, s.Set(KeySheetsNameCache, true))
	require.NoError(t, s.Set("limits.max", int64(42)))

	// A fresh store reads the persisted file back.
	s2, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", s2.GetString(KeyAccount))
	assert.Equal(t, "drive-123", s2.GetString(KeyDriveID))
	assert.True(t, s2.GetBool(KeySheetsNameCache))
	assert.Equal(t, 42, s2.GetInt("limits.max"))
}

func TestConfigStoreMissingKeys(t *testing.T) {
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", s.GetString("no.such.key"))
	assert.Equal(t, 0, s.GetInt("no.such.key"))
	assert.False(t, s.GetBool("no.such.key"))
	assert.Nil(t, s.GetStringSlice("no.such.key"))

	_, ok := s.Get("no.such.key")
	assert.False(t, ok)
}

func TestConfigStoreWrongTypes(t *testing.T) {
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("key", "not a bool"))
	assert.False(t, s.GetBool("key"))
	assert.Equal(t, 0, s.GetInt("key"))
}

func TestConfigStoreLoadsNestedTOML(t *testing.T) {
	dir := t.TempDir()
	toml := `
[auth]
account = "user@example.com"
client_id = "cid"
client_secret = "secret"

[drive]
drive_id = "d-1"

[sheets]
name_cache = true

[limits]
sheets_rps = 3
sheets_burst = 6
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))

	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", s.GetString(KeyAccount))
	assert.Equal(t, "cid", s.GetString(KeyClientID))
	assert.Equal(t, "secret", s.GetString(KeyClientSecret))
	assert.Equal(t, "d-1", s.GetString(KeyDriveID))
	assert.True(t, s.GetBool(KeySheetsNameCache))
	assert.Equal(t, 3, s.GetInt(fmt.Sprintf(KeyRateLimitRPS, "sheets")))
	assert.Equal(t, 6, s.GetInt(fmt.Sprintf(KeyRateLimitBurst, "sheets")))
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"top": "value",
		"a": map[string]any{
			"b": int64(1),
			"c": map[string]any{
				"d": "deep",
			},
		},
	}, "")

	assert.Equal(t, "value", flat["top"])
	assert.Equal(t, int64(1), flat["a.b"])
	assert.Equal(t, "deep", flat["a.c.d"])
	assert.NotContains(t, flat, "a")
}

func TestConfigStoreStringSlice(t *testing.T) {
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("list", []any{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, s.GetStringSlice("list"))

	require.NoError(t, s.Set("typed", []string{"x"}))
	assert.Equal(t, []string{"x"}, s.GetStringSlice("typed"))
}
