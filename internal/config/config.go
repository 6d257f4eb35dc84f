package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docscan/internal/filemanager"
	"docscan/internal/logging"
	"docscan/internal/privacy"
	"docscan/pkg/fileops"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	APP_NAME = "docscan" // application name used for config directory

	// EnvPrefix marks environment overrides, e.g. DOCSCAN_DOCUMENTS_DIR
	EnvPrefix = "DOCSCAN_"
)

// Config holds the server configuration.
type Config struct {
	// DocumentsDir is the flat directory whose files are served.
	DocumentsDir string `yaml:"documents_dir" json:"documents_dir" koanf:"documents_dir"`
	// MaxFileSize caps the bytes read per file; 0 disables the cap.
	MaxFileSize int64   `yaml:"max_file_size" json:"max_file_size" koanf:"max_file_size"`
	Markers     Markers `yaml:"markers,omitempty" json:"markers" koanf:"markers"`
	// ServerName is announced to MCP clients.
	ServerName string `yaml:"server_name,omitempty" json:"server_name" koanf:"server_name"`
}

// Markers are extra classification markers added to the built-in sets.
type Markers struct {
	Confidential []string `yaml:"confidential,omitempty" json:"confidential" koanf:"confidential"`
	Sensitive    []string `yaml:"sensitive,omitempty" json:"sensitive" koanf:"sensitive"`
}

// ConfigPath returns the default config file path for the current platform.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DocumentsDir: filemanager.GetDefaultDocumentsDir(),
		MaxFileSize:  filemanager.DefaultMaxFileSize,
		ServerName:   APP_NAME,
	}
}

// Load builds the configuration from defaults, then the YAML file at path,
// then DOCSCAN_* environment variables. An empty path means ConfigPath(). A
// missing file is not an error; an unreadable or malformed one is.
func Load(path string, logger *logging.AppLogger) (*Config, error) {
	if path == "" {
		path = ConfigPath()
		logger.Debug("Determined config path", "path", path)
	}

	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		logger.Debug("Reading config file", "path", path)
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	} else {
		logger.Debug("No config file, using defaults", "path", path)
	}

	// DOCSCAN_DOCUMENTS_DIR -> documents_dir, DOCSCAN_MARKERS_SENSITIVE -> markers.sensitive
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.DocumentsDir = fileops.ExpandPath(strings.TrimSpace(cfg.DocumentsDir))
	return cfg, nil
}

func envKeyValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "markers_"); ok {
		var markers []string
		for _, m := range strings.Split(value, ",") {
			if m = strings.TrimSpace(m); m != "" {
				markers = append(markers, m)
			}
		}
		return "markers." + rest, markers
	}
	return key, value
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DocumentsDir, validation.By(func(value interface{}) error {
			dir, _ := value.(string)
			return filemanager.ValidateDocumentsDir(dir)
		})),
		validation.Field(&c.MaxFileSize, validation.Min(int64(0)).Error("must be non-negative")),
		validation.Field(&c.Markers),
	)
}

func (m Markers) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Confidential, validation.Each(validation.Required)),
		validation.Field(&m.Sensitive, validation.Each(validation.Required)),
	)
}

// Classifier returns a classifier with the built-in markers plus the
// configured extras.
func (c *Config) Classifier() *privacy.Classifier {
	return privacy.NewClassifier(privacy.WithExtraMarkers(c.Markers.Confidential, c.Markers.Sensitive))
}

// SaveTo writes the config as YAML to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yamlv3.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
