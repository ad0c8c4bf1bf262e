package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-plantillas/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "/assets/plantillas", cfg.HTTP.AssetPrefix)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "@every 10m", cfg.Catalogs.RefreshSchedule)
	assert.False(t, cfg.Plantillas.SeedSamples)
	assert.Empty(t, cfg.File)
}

func TestLoad_FlagsOverrideEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plantillas.yaml")
	content := []byte(`
http:
  addr: ":7000"
  cors_origins: ["https://rrhh.example.com"]
log:
  level: warn
catalogs:
  refresh_schedule: "@hourly"
plantillas:
  dir: /srv/plantillas
theme:
  name: acme
`)
	require.NoError(t, os.WriteFile(file, content, 0o600))

	t.Setenv("PLANTILLAS_LOG_LEVEL", "debug")
	t.Setenv("PLANTILLAS_DATABASE_DSN", "file:env.db")

	cfg, err := config.Load([]string{"--config", file, "--addr", ":9000", "--seed"})
	require.NoError(t, err)

	assert.Equal(t, file, cfg.File)
	assert.Equal(t, ":9000", cfg.HTTP.Addr, "flag wins over file")
	assert.Equal(t, []string{"https://rrhh.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "debug", cfg.Log.Level, "env wins over file")
	assert.Equal(t, "file:env.db", cfg.Database.DSN)
	assert.Equal(t, "@hourly", cfg.Catalogs.RefreshSchedule)
	assert.Equal(t, "/srv/plantillas", cfg.Plantillas.Dir)
	assert.Equal(t, "acme", cfg.Theme.Name)
	assert.True(t, cfg.Plantillas.SeedSamples)
	assert.True(t, cfg.Catalogs.SeedSamples)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := config.Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestLoad_RejectsUnknownLogFormat(t *testing.T) {
	_, err := config.Load([]string{"--log-format", "xml"})
	require.ErrorContains(t, err, "unknown log format")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.NewLogger(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("plantilla", "ingreso").Info("rendered")
	assert.Contains(t, buf.String(), `"plantilla":"ingreso"`)

	_, err = config.NewLogger(config.LogConfig{Level: "loud"}, &buf)
	require.Error(t, err)
}

func TestDecodeThemeManifest(t *testing.T) {
	manifest, err := config.DecodeThemeManifest([]byte(`
name: acme
version: 1.0.0
tokens:
  primary: "#123456"
templates:
  forms.input: templates/acme/input.tmpl
assets:
  prefix: /themes/acme
  files:
    stylesheet: plantillas.css
variants:
  dark:
    tokens:
      primary: "#000000"
`))
	require.NoError(t, err)

	assert.Equal(t, "acme", manifest.Name)
	assert.Equal(t, "#123456", manifest.Tokens["primary"])
	assert.Equal(t, "templates/acme/input.tmpl", manifest.Templates["forms.input"])
	assert.Equal(t, "/themes/acme", manifest.Assets.Prefix)
	assert.Equal(t, "plantillas.css", manifest.Assets.Files["stylesheet"])
	require.Contains(t, manifest.Variants, "dark")
	assert.Equal(t, "#000000", manifest.Variants["dark"].Tokens["primary"])

	_, err = config.DecodeThemeManifest([]byte("version: 1"))
	require.Error(t, err)
}
