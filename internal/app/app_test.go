package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestPrepare_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	writeFile(t, cfgPath, "log_file = \""+filepath.Join(dir, "pkgdrop.log")+"\"\n")

	env, err := Prepare(Options{ConfigPath: cfgPath, Console: true})
	require.NoError(t, err)
	defer env.Close()

	assert.Equal(t, 12801, env.Config.Port)
	assert.Len(t, env.Catalog, 3)
	assert.NotNil(t, env.Session)
	assert.Same(t, env.Store, env.Session.Store())
}

func TestPrepare_Overrides(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	writeFile(t, catalogPath, `packages:
  - id: 7
    title: Only Entry
    pkg_url: https://example.com/only.pkg
`)
	cfgPath := filepath.Join(dir, "config.toml")
	writeFile(t, cfgPath, `
host = "10.0.0.2"
scan_delay = "0s"
request_timeout = "5s"
log_file = "`+filepath.Join(dir, "logs", "pkgdrop.log")+`"
`)

	env, err := Prepare(Options{
		ConfigPath:  cfgPath,
		CatalogPath: catalogPath,
		Host:        " 10.0.0.9 ",
	})
	require.NoError(t, err)
	defer env.Close()

	assert.Equal(t, "10.0.0.9", env.Config.Host)
	assert.Equal(t, 5*time.Second, env.Config.RequestTimeout)
	require.Len(t, env.Catalog, 1)
	assert.Equal(t, "Only Entry", env.Catalog[0].Title)

	// The TUI logger writes to the configured file.
	env.Logger.Info("hello")
	require.NoError(t, env.Logger.Sync())
	_, err = os.Stat(filepath.Join(dir, "logs", "pkgdrop.log"))
	assert.NoError(t, err)
}

func TestPrepare_Errors(t *testing.T) {
	dir := t.TempDir()

	badCfg := filepath.Join(dir, "bad.toml")
	writeFile(t, badCfg, "port = \"nope\"\n")
	_, err := Prepare(Options{ConfigPath: badCfg, Console: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")

	goodCfg := filepath.Join(dir, "good.toml")
	writeFile(t, goodCfg, "")
	_, err = Prepare(Options{
		ConfigPath:  goodCfg,
		CatalogPath: filepath.Join(dir, "missing.toml"),
		Console:     true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}
