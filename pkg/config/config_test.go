package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beminee/mockauth/pkg/userapi"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "mockauth.yaml", `
listen: "127.0.0.1:8080"
upstream: "http://localhost:9000"
dataFile: "/tmp/users.json"
log:
  level: debug
  format: json
delay:
  min: 10ms
  max: 20ms
seedUsers:
  - username: admin
    password: admin
    firstName: Ada
    lastName: Min
    rank: Admin
  - username: demo
    password: demo
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "http://localhost:9000", cfg.Upstream)
	assert.Equal(t, "/tmp/users.json", cfg.DataFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	min, max, err := cfg.DelayBounds()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, min)
	assert.Equal(t, 20*time.Millisecond, max)

	users := cfg.Users()
	require.Len(t, users, 2)
	assert.Equal(t, 1, users[0].ID)
	assert.Equal(t, userapi.RankAdmin, users[0].Rank)
	assert.Equal(t, 2, users[1].ID)
	assert.Equal(t, userapi.RankRegular, users[1].Rank, "blank rank defaults to Regular")
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "mockauth.json", `{"listen": "0.0.0.0:4000"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:4000", cfg.Listen)
	// Unset fields keep defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "listen: [unclosed")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeFile(t, "bad.json", "{not json")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestValidate_BadRank(t *testing.T) {
	path := writeFile(t, "rank.yaml", `
listen: "127.0.0.1:4000"
seedUsers:
  - username: x
    password: p
    rank: Superuser
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown rank")
}

func TestValidate_SeedUserNeedsUsername(t *testing.T) {
	path := writeFile(t, "seed.yaml", `
listen: "127.0.0.1:4000"
seedUsers:
  - password: p
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "username is required")
}

func TestDelayBounds_Defaults(t *testing.T) {
	min, max, err := Default().DelayBounds()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, min)
	assert.Equal(t, time.Second, max)
}

func TestDelayBounds_InvalidWindow(t *testing.T) {
	cfg := Default()
	cfg.Delay = DelayConfig{Min: "2s", Max: "1s"}
	_, _, err := cfg.DelayBounds()
	assert.Error(t, err)
}

func TestDelayBounds_BadDuration(t *testing.T) {
	cfg := Default()
	cfg.Delay = DelayConfig{Min: "fast"}
	_, _, err := cfg.DelayBounds()
	assert.ErrorContains(t, err, "invalid delay.min")
}
