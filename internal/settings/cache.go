package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/nhle/gift-tracker/internal/model"
)

// Cache is the fast local copy of the settings read at startup.
type Cache interface {
	Load() (model.AppSettings, error)
	Save(s model.AppSettings) error
}

// FileCache keeps settings in a YAML file.
type FileCache struct {
	path string
	mu   sync.Mutex
}

// NewFileCache returns a cache backed by the YAML file at path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Load reads the cache file. A missing file yields the defaults. Keys
// absent from the file or holding invalid values keep their defaults.
func (c *FileCache) Load() (model.AppSettings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := model.DefaultSettings()

	v := viper.New()
	v.SetConfigFile(c.path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return out, nil
		}
		return out, fmt.Errorf("reading settings cache %s: %w", c.path, err)
	}

	for _, key := range model.SettingKeys {
		if !v.IsSet(string(key)) {
			continue
		}
		_ = out.Apply(key, v.GetString(string(key)))
	}
	return out, nil
}

// Save writes s to the cache file, creating parent directories.
func (c *FileCache) Save(s model.AppSettings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(c.path)
	v.SetConfigType("yaml")
	for _, key := range model.SettingKeys {
		v.Set(string(key), s.Value(key))
	}

	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing settings cache %s: %w", c.path, err)
	}
	return nil
}
