package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/pkg/errors"

	"github.com/mollysec/molly/internal/file"
)

var defaultConfig = Config{
	ServerURL:      "http://192.168.1.38:5000",
	RequestTimeout: 60,
	StateDirectory: "~/.molly",
}

// Config holds configuration for the molly client.
type Config struct {
	// Base address of the Molly backend.
	ServerURL string `json:"server_url"`
	// Timeout for backend requests, in seconds.
	RequestTimeout int `json:"request_timeout"`
	// Directory holding the session database.
	StateDirectory string `json:"state_directory"`
}

// Parse a configuration file, creating it with defaults if absent.
// Environment variables MOLLY_SERVER_URL and MOLLY_STATE_DIR override the
// file's values.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	if err := mergo.Merge(config, defaultConfig); err != nil {
		return nil, errors.Wrap(err, "merging defaults")
	}

	if url := os.Getenv("MOLLY_SERVER_URL"); url != "" {
		config.ServerURL = url
	}
	if dir := os.Getenv("MOLLY_STATE_DIR"); dir != "" {
		config.StateDirectory = dir
	}

	expandedStateDirectory, err := file.ExpandPath(config.StateDirectory)
	if err != nil {
		return nil, errors.Wrap(err, "expanding state directory path")
	}
	config.StateDirectory = expandedStateDirectory
	if err := os.MkdirAll(config.StateDirectory, 0755); err != nil {
		return nil, errors.Wrap(err, "creating state directory")
	}
	return config, nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
