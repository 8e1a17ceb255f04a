package seed

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hotline-inc/hotline/internal/infrastructure/repository"
	"github.com/hotline-inc/hotline/internal/interfaces/cli/migrate"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestSeedCommand(t *testing.T) {
	t.Setenv("ENV", "")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "hotline.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, `
database:
  driver: sqlite
  path: `+dbPath+`
storage:
  driver: mem
logger:
  level: error
`)

	up := migrate.NewCommand()
	up.SetArgs([]string{"up", "--config", cfgPath})
	require.NoError(t, up.Execute())

	seedPath := filepath.Join(dir, "seeds.yaml")
	writeFile(t, seedPath, `
callers: [Accueil, "  Mme Dupont "]
reasons: [Imprimante HS]
tags: [printer, vpn, ""]
`)

	out := runCommand(t, "--config", cfgPath, "--file", seedPath)
	assert.Contains(t, out, "Added 5 saved field(s)")

	out = runCommand(t, "--config", cfgPath, "--file", seedPath)
	assert.Contains(t, out, "Added 0 saved field(s)")

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	g, err := repository.NewSavedFieldRepository(gdb).List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Accueil", "Mme Dupont"}, g.Callers)
	assert.Equal(t, []string{"Imprimante HS"}, g.Reasons)
	assert.ElementsMatch(t, []string{"printer", "vpn"}, g.Tags)
}

func TestSeedCommand_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seeds.yaml")
	writeFile(t, seedPath, "callerz: [Accueil]\n")

	cmd := NewCommand()
	cmd.SetArgs([]string{"--file", seedPath})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
