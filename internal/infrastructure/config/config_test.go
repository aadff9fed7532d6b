package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://api.glose.com", cfg.Catalog.BaseURL)
	assert.Equal(t, "5a8411b53ed02c04187ff02a", cfg.Catalog.UserID)
	assert.Equal(t, 3, cfg.Catalog.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Catalog.BackoffUnit)
	assert.Equal(t, 20, cfg.Pagination.ShelfPageSize)
	assert.Equal(t, 12, cfg.Pagination.BookPageSize)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadFile_YAMLValues(t *testing.T) {
	path := writeConfig(t, `
catalog:
  base_url: http://catalog.local
  max_attempts: 5
  backoff_unit: 250ms
  breaker:
    enabled: true
    consecutive_failures: 3
pagination:
  book_page_size: 24
log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.local", cfg.Catalog.BaseURL)
	assert.Equal(t, 5, cfg.Catalog.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Catalog.BackoffUnit)
	assert.True(t, cfg.Catalog.Breaker.Enabled)
	assert.Equal(t, uint32(3), cfg.Catalog.Breaker.ConsecutiveFailures)
	assert.Equal(t, 24, cfg.Pagination.BookPageSize)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "catalog:\n  user_id: from-file\n")
	t.Setenv("SHELFVIEWER_CATALOG_USER_ID", "from-env")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Catalog.UserID)
}

func TestLoadFile_Validation(t *testing.T) {
	cases := map[string]string{
		"端口非法":   "server:\n  port: 70000\n",
		"地址非法":   "catalog:\n  base_url: not-a-url\n",
		"重试次数非法": "catalog:\n  max_attempts: 0\n",
		"分页非法":   "pagination:\n  shelf_page_size: 0\n",
		"日志格式非法": "log:\n  format: xml\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingExplicitFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
