package procinfo

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/troian/toml"

	"github.com/cloudradar-monitoring/procinfo/pkg/archtable"
	"github.com/cloudradar-monitoring/procinfo/pkg/kvscan"
)

var DefaultCfgPath string

type Config struct {
	LogLevel  LogLevel `toml:"log_level" comment:"\"debug\", \"info\", \"error\" verbose level; can be overridden with -l flag"`
	LogFile   string   `toml:"log,omitempty" comment:"log file, logs go to stderr only when empty"`
	LogSyslog string   `toml:"log_syslog" comment:"\"local\" or remote syslog address udp://host:port, disabled when empty"`

	// zero disables the cap, 64 and 256 match the historical field sizes
	MaxKeyLength   int `toml:"max_key_length" comment:"maximum length of a key capture, 0 means unlimited"`
	MaxValueLength int `toml:"max_value_length" comment:"maximum length of a value capture, 0 means unlimited"`

	Architectures []ArchitectureConfig `toml:"architecture" comment:"ordered architecture table, replaces the built-in one when set; first matching prefix wins"`
}

type ArchitectureConfig struct {
	Prefix    string `toml:"prefix"`
	Processor string `toml:"processor"`
	Platform  string `toml:"platform"`
	Format    string `toml:"format,omitempty"`
}

func NewConfig() *Config {
	cfg := &Config{
		LogLevel: LogLevelInfo,
	}

	if lvl := LogLevel(os.Getenv("PROCINFO_LOG_LEVEL")); lvl.IsValid() {
		cfg.LogLevel = lvl
	}

	return cfg
}

// HandleConfigSetup returns the default config updated from the file at configFilePath.
// A missing file is only accepted at the default location.
func HandleConfigSetup(configFilePath string) (*Config, error) {
	cfg := NewConfig()
	if configFilePath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		if configFilePath == DefaultCfgPath {
			log.Debugf("config file %s not found, using defaults", configFilePath)
			return cfg, nil
		}
		return nil, fmt.Errorf("config file not exists: %s", configFilePath)
	}

	if err := TryUpdateConfigFromFile(cfg, configFilePath); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", configFilePath)
	}

	return cfg, nil
}

func TryUpdateConfigFromFile(cfg *Config, configFilePath string) error {
	_, err := toml.DecodeFile(configFilePath, cfg)
	if err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", configFilePath)
	}

	return nil
}

func (cfg *Config) Validate() error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = LogLevelInfo
	}

	if !cfg.LogLevel.IsValid() {
		return fmt.Errorf("invalid log_level \"%s\"", cfg.LogLevel)
	}

	if cfg.MaxKeyLength < 0 || cfg.MaxValueLength < 0 {
		return errors.New("max_key_length and max_value_length can't be negative")
	}

	_, err := cfg.Table()
	return err
}

// Table builds the architecture table in effect.
func (cfg *Config) Table() (*archtable.Table, error) {
	if len(cfg.Architectures) == 0 {
		return archtable.Default(), nil
	}

	entries := make([]archtable.Entry, 0, len(cfg.Architectures))
	for _, a := range cfg.Architectures {
		e := archtable.Entry{
			Prefix:       a.Prefix,
			ProcessorKey: a.Processor,
			PlatformKey:  a.Platform,
		}

		if a.Format != "" {
			f, err := kvscan.ParseFormat(a.Format)
			if err != nil {
				return nil, errors.Wrapf(err, "architecture \"%s\"", a.Prefix)
			}
			e.Format = f
		}

		entries = append(entries, e)
	}

	return archtable.NewTable(entries)
}

func (cfg *Config) scanOptions(format kvscan.Format) kvscan.Options {
	return kvscan.Options{
		Format:         format,
		MaxKeyLength:   cfg.MaxKeyLength,
		MaxValueLength: cfg.MaxValueLength,
	}
}

// DumpToml renders the config with the architecture table in effect.
func (cfg *Config) DumpToml() string {
	dump := *cfg
	if len(dump.Architectures) == 0 {
		for _, e := range archtable.DefaultEntries {
			dump.Architectures = append(dump.Architectures, ArchitectureConfig{
				Prefix:    e.Prefix,
				Processor: e.ProcessorKey,
				Platform:  e.PlatformKey,
				Format:    archtable.DefaultFormat(e.Prefix).String(),
			})
		}
	}

	buff := &bytes.Buffer{}
	enc := toml.NewEncoder(buff)
	err := enc.Encode(&dump)
	if err != nil {
		log.WithError(err).Errorln("Failed to encode config to buffer")
	}

	return buff.String()
}
