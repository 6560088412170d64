package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/music-bingo/internal/domain"
)

func TestLoad(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	// Create a test config file
	configPath := filepath.Join(tempDir, "test_config.yaml")
	configContent := `
log_level: -4
songs: songs.yaml
game:
  id: BBC-01
  title: Friday Night
  mode: bingo
  rows: 2
  columns: 4
  tickets: 30
  page_order: false
  lead_in: 10s
  transition: 1500ms
storage:
  type: local
  output_dir: games
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "songs.yaml", cfg.Songs)
	assert.Equal(t, "BBC-01", cfg.Game.ID)
	assert.Equal(t, 2, cfg.Game.Rows)
	assert.Equal(t, 4, cfg.Game.Columns)
	assert.Equal(t, 30, cfg.Game.NumberOfTickets)
	assert.Equal(t, "games", cfg.Storage.OutputDir)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeBingo, opts.Mode)
	assert.Equal(t, "Friday Night", opts.Title)
	assert.Equal(t, 8, opts.SongsPerTicket())
	assert.False(t, opts.PageOrder)
	assert.Equal(t, 10*time.Second, opts.LeadIn)
	assert.Equal(t, 1500*time.Millisecond, opts.Transition)
}

func TestLoadDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: 0\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "bingo", cfg.Game.Mode)
	assert.Equal(t, 3, cfg.Game.Rows)
	assert.Equal(t, 5, cfg.Game.Columns)
	assert.Equal(t, 24, cfg.Game.NumberOfTickets)
	require.NotNil(t, cfg.Game.PageOrder)
	assert.True(t, *cfg.Game.PageOrder)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "output", cfg.Storage.OutputDir)

	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BINGO_STORAGE_TYPE", "gcs")
	t.Setenv("BINGO_GCS_BUCKET", "bingo-games")
	t.Setenv("BINGO_GCS_PREFIX", "club")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/sa.json")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
storage:
  type: local
  gcs:
    bucket: from-file
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "gcs", cfg.Storage.Type)
	assert.Equal(t, "bingo-games", cfg.Storage.GCS.Bucket)
	assert.Equal(t, "club", cfg.Storage.GCS.Prefix)
	assert.Equal(t, "/secrets/sa.json", cfg.Storage.GCS.CredentialsFile)
}

func TestOptionsInvalidMode(t *testing.T) {
	cfg := Default()
	cfg.Game.Mode = "karaoke"

	_, err := cfg.Options()
	assert.Error(t, err)
}

func TestLoadNonExistentFile(t *testing.T) {
	// Test loading a non-existent config file
	cfg, err := Load("non_existent_file.yaml")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	// Create an invalid YAML file
	configPath := filepath.Join(tempDir, "invalid_config.yaml")
	configContent := `
log_level: -4
game:
  rows: [this is not valid yaml
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	// Test loading the invalid config
	cfg, err := Load(configPath)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
