package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. GIBBERISH_DEFAULT_EXTENSION.
const EnvPrefix = "gibberish"

// Config represents the main configuration for gibberish.
type Config struct {
	DefaultExtension string        `toml:"default_extension" envconfig:"DEFAULT_EXTENSION"`
	LogDir           string        `toml:"log_dir" envconfig:"LOG_DIR"`
	Store            StoreConfig   `toml:"store" envconfig:"STORE"`
	History          HistoryConfig `toml:"history" envconfig:"HISTORY"`
}

// StoreConfig selects where files are read from and written to.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StoreConfig struct {
	// "filesystem" (default), "memory", "memfs" or "s3"
	Type string `toml:"type" envconfig:"TYPE"`

	// FileSystem-specific fields (only used when Type == "filesystem").
	// An empty root resolves names against the working directory.
	FSRoot string `toml:"fs_root,omitempty" envconfig:"FS_ROOT"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty" envconfig:"S3_BUCKET"`
	S3Prefix          string `toml:"s3_prefix,omitempty" envconfig:"S3_PREFIX"`
	S3Region          string `toml:"s3_region,omitempty" envconfig:"S3_REGION"`
	S3Endpoint        string `toml:"s3_endpoint,omitempty" envconfig:"S3_ENDPOINT"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty" envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty" envconfig:"S3_SECRET_ACCESS_KEY"`
}

// HistoryConfig represents configuration for the local invocation history.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type HistoryConfig struct {
	// "sqlite", "memory" or "none"
	Type string `toml:"type" envconfig:"TYPE"`

	// Only used for type=sqlite.
	DataDir string `toml:"data_dir,omitempty" envconfig:"DATA_DIR"`
}

// NewConfig creates a new Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		DefaultExtension: "gibberish",
		LogDir:           filepath.Join(baseDir, "log"),
		Store:            StoreConfig{Type: "filesystem"},
		History: HistoryConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config at path, falling back to NewConfig(baseDir) when the
// file does not exist, then applies environment overrides.
func Load(path, baseDir string) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if err != nil {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return nil, err
		}
		cfg = NewConfig(baseDir)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any GIBBERISH_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}
	return nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
