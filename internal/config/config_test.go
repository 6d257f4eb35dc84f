package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docscan/internal/filemanager"
	"docscan/internal/logging"
	"docscan/internal/privacy"

	"github.com/adrg/xdg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func quietLogger() *logging.AppLogger {
	logger, _ := logging.NewTestLogger()
	return logger
}

func TestLoad_LogsThroughGivenLogger(t *testing.T) {
	logger, buf := logging.NewTestLogger()
	path := writeConfig(t, "server_name: logged\n")

	if _, err := Load(path, logger); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Reading config file") {
		t.Errorf("Expected load to be logged, got: %s", buf.String())
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	if got := ConfigPath(); got != "/custom/config/docscan/config.yaml" {
		t.Errorf("Expected path under XDG_CONFIG_HOME, got %s", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.DocumentsDir == "" {
		t.Error("Default config should have a documents directory")
	}
	if config.MaxFileSize != filemanager.DefaultMaxFileSize {
		t.Errorf("Expected default max file size, got %d", config.MaxFileSize)
	}
	if config.ServerName != "docscan" {
		t.Errorf("Expected default server name, got %q", config.ServerName)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), quietLogger())
	if err != nil {
		t.Fatalf("Missing config file should not be an error: %v", err)
	}
	if config.DocumentsDir != filemanager.GetDefaultDocumentsDir() {
		t.Errorf("Expected default documents dir, got %s", config.DocumentsDir)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `documents_dir: /srv/docs
max_file_size: 2048
server_name: team-docs
markers:
  confidential:
    - "salary:"
  sensitive:
    - "draft"
`)

	config, err := Load(path, quietLogger())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.DocumentsDir != "/srv/docs" {
		t.Errorf("DocumentsDir mismatch: got %s", config.DocumentsDir)
	}
	if config.MaxFileSize != 2048 {
		t.Errorf("MaxFileSize mismatch: got %d", config.MaxFileSize)
	}
	if config.ServerName != "team-docs" {
		t.Errorf("ServerName mismatch: got %s", config.ServerName)
	}
	if len(config.Markers.Confidential) != 1 || config.Markers.Confidential[0] != "salary:" {
		t.Errorf("Confidential markers mismatch: %v", config.Markers.Confidential)
	}

	classifier := config.Classifier()
	if got := classifier.Classify("Salary: 90k"); got != privacy.Confidential {
		t.Errorf("Configured marker should classify as confidential, got %v", got)
	}
	if got := classifier.Classify("password: still built in"); got != privacy.Confidential {
		t.Errorf("Built-in markers must survive extras, got %v", got)
	}
	if got := classifier.Classify("DRAFT roadmap"); got != privacy.Sensitive {
		t.Errorf("Configured sensitive marker not applied, got %v", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "documents_dir: /srv/docs\nmax_file_size: 2048\n")
	t.Setenv("DOCSCAN_DOCUMENTS_DIR", "/data/shared")
	t.Setenv("DOCSCAN_MAX_FILE_SIZE", "0")
	t.Setenv("DOCSCAN_MARKERS_SENSITIVE", "draft, preliminary ,")

	config, err := Load(path, quietLogger())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.DocumentsDir != "/data/shared" {
		t.Errorf("Environment should override file, got %s", config.DocumentsDir)
	}
	if config.MaxFileSize != 0 {
		t.Errorf("Expected max file size override to 0, got %d", config.MaxFileSize)
	}
	want := []string{"draft", "preliminary"}
	if strings.Join(config.Markers.Sensitive, "|") != strings.Join(want, "|") {
		t.Errorf("Expected sensitive markers %v, got %v", want, config.Markers.Sensitive)
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, "documents_dir: ~/documents\n")

	config, err := Load(path, quietLogger())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.DocumentsDir != filepath.Join(home, "documents") {
		t.Errorf("Expected ~ to expand, got %s", config.DocumentsDir)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: yaml: content: [")

	if _, err := Load(path, quietLogger()); err == nil {
		t.Error("Should error when loading invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unlimited size", func(c *Config) { c.MaxFileSize = 0 }, ""},
		{"empty dir", func(c *Config) { c.DocumentsDir = "" }, "documents_dir"},
		{"traversal", func(c *Config) { c.DocumentsDir = "/srv/../../etc" }, "path traversal"},
		{"negative size", func(c *Config) { c.MaxFileSize = -1 }, "max_file_size"},
		{"blank marker", func(c *Config) { c.Markers.Sensitive = []string{"ok", ""} }, "markers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.DocumentsDir = t.TempDir()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid config, got: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigSaveLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := Config{
		DocumentsDir: "/test/documents",
		MaxFileSize:  4096,
		ServerName:   "saved",
		Markers:      Markers{Confidential: []string{"api key:"}},
	}

	if err := original.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %s", err)
	}

	loaded, err := Load(configPath, quietLogger())
	if err != nil {
		t.Fatalf("Failed to load config: %s", err)
	}

	if loaded.DocumentsDir != original.DocumentsDir {
		t.Errorf("DocumentsDir mismatch: expected %s, got %s", original.DocumentsDir, loaded.DocumentsDir)
	}
	if loaded.MaxFileSize != original.MaxFileSize {
		t.Errorf("MaxFileSize mismatch: expected %d, got %d", original.MaxFileSize, loaded.MaxFileSize)
	}
	if loaded.ServerName != original.ServerName {
		t.Errorf("ServerName mismatch: expected %s, got %s", original.ServerName, loaded.ServerName)
	}
	if len(loaded.Markers.Confidential) != 1 || loaded.Markers.Confidential[0] != "api key:" {
		t.Errorf("Markers mismatch: %v", loaded.Markers)
	}
}

func TestConfigFilePermissions(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := DefaultConfig().SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %s", err)
	}

	fileInfo, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %s", err)
	}
	if mode := fileInfo.Mode(); mode&0077 != 0 {
		t.Errorf("Config file should not be readable by group/others, got mode %o", mode)
	}
}
