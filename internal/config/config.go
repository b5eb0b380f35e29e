// Package config handles loading and hot-reloading tool configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/pdfchunk/internal/plan"
)

// Config is the full tool configuration surface.
type Config struct {
	// Mode selects chapter detection or fixed-size chunking.
	Mode string `mapstructure:"mode" yaml:"mode"`
	// ChunkSize is the pages per chunk in pages mode and in fallback.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`
	// SearchDepth is how many leading pages are scanned for a TOC.
	SearchDepth int `mapstructure:"search_depth" yaml:"search_depth"`
	// PageOffset corrects printed page numbers to physical page indexes.
	// The default of 0 assumes one front-matter sheet before printed page
	// 1; it is never auto-detected.
	PageOffset int `mapstructure:"page_offset" yaml:"page_offset"`
	// MaxFilename bounds sanitized output filenames, in bytes.
	MaxFilename int `mapstructure:"max_filename" yaml:"max_filename"`
	// OutputDir is the base directory for per-book output directories.
	// Empty means next to the input file.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:        string(plan.ModeChapters),
		ChunkSize:   99,
		SearchDepth: 25,
		PageOffset:  0,
		MaxFilename: 200,
	}
}

// Validate rejects configuration the core would refuse at runtime.
func (c *Config) Validate() error {
	if _, ok := plan.ParseMode(c.Mode); !ok {
		return fmt.Errorf("unknown mode %q (want chapters or pages)", c.Mode)
	}
	if c.ChunkSize < 1 {
		return plan.ErrInvalidChunkSize
	}
	if c.SearchDepth < 1 {
		return fmt.Errorf("search_depth must be at least 1")
	}
	if c.MaxFilename < 1 {
		return fmt.Errorf("max_filename must be at least 1")
	}
	return nil
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("mode", defaults.Mode)
	viper.SetDefault("chunk_size", defaults.ChunkSize)
	viper.SetDefault("search_depth", defaults.SearchDepth)
	viper.SetDefault("page_offset", defaults.PageOffset)
	viper.SetDefault("max_filename", defaults.MaxFilename)
	viper.SetDefault("output_dir", defaults.OutputDir)

	// Environment variables with PDFCHUNK_ prefix
	viper.SetEnvPrefix("PDFCHUNK")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.pdfchunk")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration. Invalid edits are
// ignored and the previous configuration stays active.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# pdfchunk configuration
# page_offset corrects printed page numbers to physical PDF pages when front
# matter shifts numbering. It is never guessed; measure it against your
# document and set it here or with --page-offset.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
