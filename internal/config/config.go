// Package config loads the application configuration from YAML via Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// appDirName is the directory under ~/.config holding all app files.
const appDirName = "gifttracker"

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// ReceiptsConfig holds the IMAP mailbox scanned for purchase receipts.
// Receipt import is disabled when Host is empty. The password is never
// stored here; see the credential package.
type ReceiptsConfig struct {
	Host         string `mapstructure:"host" yaml:"host"`
	Port         string `mapstructure:"port" yaml:"port"`
	Username     string `mapstructure:"username" yaml:"username"`
	TLS          bool   `mapstructure:"tls" yaml:"tls"`
	Mailbox      string `mapstructure:"mailbox" yaml:"mailbox"`
	LookbackDays int    `mapstructure:"lookback_days" yaml:"lookback_days"`
	Limit        int    `mapstructure:"limit" yaml:"limit"`
}

// Enabled reports whether a receipt mailbox is configured.
func (r ReceiptsConfig) Enabled() bool {
	return r.Host != "" && r.Username != ""
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Receipts ReceiptsConfig `mapstructure:"receipts" yaml:"receipts"`
}

// Dir returns ~/.config/gifttracker, or the working directory when the
// home directory cannot be resolved.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", appDirName)
}

// DefaultPath returns the default path of the configuration file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// SettingsCachePath returns the path of the local settings cache that sits
// next to the configuration file at path.
func SettingsCachePath(path string) string {
	return filepath.Join(filepath.Dir(path), "settings.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *AppConfig {
	dir := Dir()
	return &AppConfig{
		Database: DatabaseConfig{Path: filepath.Join(dir, "gifttracker.db")},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "gifttracker.log"),
		},
		Receipts: ReceiptsConfig{
			Port:         "993",
			TLS:          true,
			Mailbox:      "INBOX",
			LookbackDays: 30,
			Limit:        50,
		},
	}
}

// Load reads configuration from the YAML file at path. If the file does not
// exist, it returns Default().
func Load(path string) (*AppConfig, error) {
	def := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("receipts.port", def.Receipts.Port)
	v.SetDefault("receipts.tls", def.Receipts.TLS)
	v.SetDefault("receipts.mailbox", def.Receipts.Mailbox)
	v.SetDefault("receipts.lookback_days", def.Receipts.LookbackDays)
	v.SetDefault("receipts.limit", def.Receipts.Limit)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return def, nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to a YAML file at path, creating parent directories.
func Save(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("receipts.host", cfg.Receipts.Host)
	v.Set("receipts.port", cfg.Receipts.Port)
	v.Set("receipts.username", cfg.Receipts.Username)
	v.Set("receipts.tls", cfg.Receipts.TLS)
	v.Set("receipts.mailbox", cfg.Receipts.Mailbox)
	v.Set("receipts.lookback_days", cfg.Receipts.LookbackDays)
	v.Set("receipts.limit", cfg.Receipts.Limit)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
