package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngrash/timedate/internal/environ"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Default(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, Default().Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "timedate.yaml", `
log:
  level: debug
  format: json
catalog:
  source: zoneinfo
  zoneinfo_dir: /usr/share/zoneinfo
  list_limit: 200
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset fields keep defaults")
	assert.Equal(t, SourceZoneinfo, cfg.Catalog.Source)
	assert.Equal(t, "/usr/share/zoneinfo", cfg.Catalog.ZoneinfoDir)
	assert.Equal(t, 200, cfg.Catalog.ListLimit)
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "timedate.toml", `
[log]
level = "warn"
file = "/var/log/timedate.log"
max_backups = 7

[catalog]
source = "tzdata"
tzdata_path = "/usr/share/zoneinfo/tzdata.zi"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LogConfig{
		Level:      "warn",
		Format:     "console",
		File:       "/var/log/timedate.log",
		MaxSizeMB:  10,
		MaxBackups: 7,
	}, cfg.Log)
	assert.Equal(t, CatalogConfig{
		Source:     SourceTZData,
		TZDataPath: "/usr/share/zoneinfo/tzdata.zi",
		ListLimit:  50,
	}, cfg.Catalog)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad level", "c.yaml", "log:\n  level: loud\n", "loglevel"},
		{"bad format", "c.yaml", "log:\n  format: xml\n", "oneof"},
		{"bad source", "c.toml", "[catalog]\nsource = \"cloud\"\n", "oneof"},
		{"zoneinfo without dir", "c.yaml", "catalog:\n  source: zoneinfo\n", "required_if"},
		{"tzdata without path", "c.toml", "[catalog]\nsource = \"tzdata\"\n", "required_if"},
		{"limit too large", "c.yaml", "catalog:\n  list_limit: 5000\n", "max"},
		{"limit zero", "c.yaml", "catalog:\n  list_limit: 0\n", "min"},
		{"unknown yaml key", "c.yaml", "catalog:\n  sauce: compiled\n", "sauce"},
		{"unknown toml key", "c.toml", "[catalog]\nsauce = \"compiled\"\n", "sauce"},
		{"malformed toml", "c.toml", "[catalog\n", "decode"},
		{"unsupported extension", "c.json", "{}", "unsupported config format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPath(t *testing.T) {
	env := environ.Map{EnvPath: "/etc/timedate.yaml"}
	assert.Equal(t, "flag.toml", Path("flag.toml", env))
	assert.Equal(t, "/etc/timedate.yaml", Path("", env))
	assert.Equal(t, "", Path("", environ.Map{}))
}
