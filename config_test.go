package procinfo

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/troian/toml"

	"github.com/cloudradar-monitoring/procinfo/pkg/archtable"
	"github.com/cloudradar-monitoring/procinfo/pkg/kvscan"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "procinfo")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfig(t *testing.T) {
	os.Setenv("PROCINFO_LOG_LEVEL", "debug")
	defer os.Unsetenv("PROCINFO_LOG_LEVEL")

	cfg := NewConfig()
	assert.Equal(t, LogLevelDebug, cfg.LogLevel, "log level should be set from env")
	assert.Equal(t, 0, cfg.MaxKeyLength)
	assert.Equal(t, 0, cfg.MaxValueLength)
	assert.Empty(t, cfg.Architectures)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, archtable.Default().Entries(), table.Entries())
}

func TestTryUpdateConfigFromFile(t *testing.T) {
	const sampleConfig = `
log_level = "error"
max_key_length = 64
max_value_length = 256

[[architecture]]
prefix = "microblaze"
processor = "CPU-Ver"
platform = "FPGA-Arch"

[[architecture]]
prefix = "s390"
processor = "Type"
platform = "Manufacturer"
format = "sysinfo"
`
	path := writeFile(t, filepath.Join(tempDir(t), "procinfo.conf"), sampleConfig)

	cfg := NewConfig()
	err := TryUpdateConfigFromFile(cfg, path)
	require.NoError(t, err)

	assert.Equal(t, LogLevelError, cfg.LogLevel)
	assert.Equal(t, 64, cfg.MaxKeyLength)
	assert.Equal(t, 256, cfg.MaxValueLength)
	require.Len(t, cfg.Architectures, 2)
	assert.Equal(t, ArchitectureConfig{Prefix: "microblaze", Processor: "CPU-Ver", Platform: "FPGA-Arch"}, cfg.Architectures[0])

	table, err := cfg.Table()
	require.NoError(t, err)

	entries := table.Entries()
	assert.Equal(t, "microblaze", entries[0].Prefix)
	assert.Equal(t, kvscan.FormatGeneric, entries[0].Format)
	assert.Equal(t, kvscan.FormatSysinfo, entries[1].Format)

	_, err = table.Resolve("arm/cpuinfo")
	assert.Error(t, err, "a configured table replaces the built-in one")
}

func TestHandleConfigSetup(t *testing.T) {
	dir := tempDir(t)

	t.Run("config-file-does-exist", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "exists.conf"), "log_level = \"debug\"\n")

		cfg, err := HandleConfigSetup(path)
		require.NoError(t, err)
		assert.Equal(t, LogLevelDebug, cfg.LogLevel)
	})

	t.Run("config-file-does-not-exist", func(t *testing.T) {
		_, err := HandleConfigSetup(filepath.Join(dir, "missing.conf"))
		assert.Error(t, err)
	})

	t.Run("default-config-file-does-not-exist", func(t *testing.T) {
		oldPath := DefaultCfgPath
		defer func() { DefaultCfgPath = oldPath }()
		DefaultCfgPath = filepath.Join(dir, "default", "procinfo.conf")

		cfg, err := HandleConfigSetup(DefaultCfgPath)
		require.NoError(t, err)
		assert.Equal(t, NewConfig().LogLevel, cfg.LogLevel)
	})

	t.Run("invalid-format", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "format.conf"), `
[[architecture]]
prefix = "arm"
processor = "Processor"
platform = "Hardware"
format = "ini"
`)
		_, err := HandleConfigSetup(path)
		assert.Error(t, err)
	})

	t.Run("invalid-entry", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "entry.conf"), `
[[architecture]]
prefix = "arm"
processor = "Processor"
`)
		_, err := HandleConfigSetup(path)
		assert.Error(t, err)
	})

	t.Run("invalid-log-level", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "level.conf"), "log_level = \"trace\"\n")
		_, err := HandleConfigSetup(path)
		assert.Error(t, err)
	})

	t.Run("negative-limit", func(t *testing.T) {
		path := writeFile(t, filepath.Join(dir, "limit.conf"), "max_value_length = -1\n")
		_, err := HandleConfigSetup(path)
		assert.Error(t, err)
	})
}

func TestDumpToml(t *testing.T) {
	cfg := NewConfig()
	dump := cfg.DumpToml()

	assert.Contains(t, dump, `prefix = "powerpc64"`)
	assert.Contains(t, dump, `format = "sysinfo"`)
	assert.Empty(t, cfg.Architectures, "dumping must not change the config")

	loaded := &Config{}
	_, err := toml.Decode(dump, loaded)
	require.NoError(t, err)

	table, err := loaded.Table()
	require.NoError(t, err)
	assert.Equal(t, archtable.Default().Entries(), table.Entries())
}
