package feed

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigCache holds per-feed configurations loaded from YAML files in the
// feeds directory. The feed name is the file name without its extension.
type ConfigCache struct {
	feedsDir string
	cache    map[string]*Config
	mu       sync.RWMutex
}

func NewConfigCache(feedsDir string) *ConfigCache {
	return &ConfigCache{
		feedsDir: feedsDir,
		cache:    make(map[string]*Config),
	}
}

// Run loads every feed configuration found in the feeds directory. A missing
// directory is not an error, the cache just stays empty.
func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.feedsDir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(cc.feedsDir)
	if err != nil {
		return fmt.Errorf("failed to read feeds directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		feedName := strings.TrimSuffix(entry.Name(), ext)

		config, err := cc.LoadConfig(feedName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", entry.Name(), err)
		}

		slog.Debug("Configuration loaded",
			"feed", feedName,
			"enabled", config.Settings.Enabled,
			"refresh_interval", config.Settings.RefreshInterval)
	}

	return nil
}

// LoadConfig reads the configuration file for feedName from disk and replaces
// the cached entry. Used both at startup and for reloads over the API.
func (cc *ConfigCache) LoadConfig(feedName string) (*Config, error) {
	configFile := cc.configFilePath(feedName)

	feedConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}
	feedConfig.Name = feedName

	if err := cc.validateConfig(feedConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[feedConfig.Name] = feedConfig

	return feedConfig, nil
}

func (cc *ConfigCache) GetConfig(feedName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	feedConfig, ok := cc.cache[feedName]
	if !ok {
		return nil, fmt.Errorf("feed config with name '%s' not found", feedName)
	}
	return feedConfig, nil
}

func (cc *ConfigCache) GetConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configs := make(map[string]*Config, len(cc.cache))
	for name, config := range cc.cache {
		configs[name] = config
	}
	return configs
}

func (cc *ConfigCache) GetEnabledConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	enabled := make(map[string]*Config)
	for name, config := range cc.cache {
		if config.Settings.Enabled {
			enabled[name] = config
		}
	}
	return enabled
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var feedConfig Config
	if err := yaml.Unmarshal(data, &feedConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if feedConfig.Settings.RefreshInterval == 0 {
		feedConfig.Settings.RefreshInterval = 3600
	}
	if feedConfig.Settings.MaxItems == 0 {
		feedConfig.Settings.MaxItems = 100
	}
	if feedConfig.Settings.Timeout == 0 {
		feedConfig.Settings.Timeout = 30
	}

	return &feedConfig, nil
}

func (cc *ConfigCache) validateConfig(feedConfig *Config) error {
	if feedConfig == nil {
		return fmt.Errorf("feedConfig is nil")
	}

	if feedConfig.Name == "" {
		return fmt.Errorf("feed name is required")
	}
	if feedConfig.URL == "" {
		return fmt.Errorf("feed URL is required")
	}

	parsed, err := url.Parse(feedConfig.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("feed URL '%s' is not a valid absolute URL", feedConfig.URL)
	}

	if feedConfig.Settings.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must be non-negative")
	}
	if feedConfig.Settings.MaxItems < 0 {
		return fmt.Errorf("max items must be non-negative")
	}
	if feedConfig.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	return nil
}

func (cc *ConfigCache) configFilePath(feedName string) string {
	for _, ext := range []string{".yml", ".yaml"} {
		path := filepath.Join(cc.feedsDir, feedName+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(cc.feedsDir, feedName+".yml")
}
