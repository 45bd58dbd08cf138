package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/pagewindow/internal/catalog"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "seed"}, names)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "catalog.db")
	configPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("database:\n  driver: sqlite\n  dsn: "+dsn+"\nlogger:\n  level: error\n"), 0o600))

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"seed", "--config", configPath, "--count", "7"})
	require.NoError(t, cmd.Execute())

	db, err := catalog.Open("sqlite", dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var count int64
	require.NoError(t, db.Model(&catalog.Product{}).Count(&count).Error)
	assert.Equal(t, int64(7), count)
}

func TestSeedCommand_BadConfig(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"seed", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	cmd.SetErr(io.Discard)

	require.Error(t, cmd.Execute())
}
