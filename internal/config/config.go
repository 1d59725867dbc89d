package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed sample_config.json
var sampleConfig string

const (
	// DefaultPath is the config file consulted when no --config flag is given.
	DefaultPath = "synco.json"

	defaultBufferSize = "1M"
	defaultLogLevel   = "ERROR"
	defaultPIDFile    = "synco.pid"
)

// Config holds the sync job settings loaded from a JSON file. The
// struct is immutable for the duration of a run; components receive it
// at construction and never consult globals.
type Config struct {
	// Local is the source path handed to rclone.
	Local string `json:"local"`
	// Remote is the destination, typically a named rclone remote.
	Remote string `json:"remote"`

	BufferSize string   `json:"buffer_size"`
	LogLevel   string   `json:"log_level"`
	BWLimit    string   `json:"bwlimit"`
	ExtraFlags []string `json:"extra_flags"`

	// PIDFile locates the instance lock record. Relative paths are
	// kept relative so the at-most-one-instance rule stays scoped to
	// the working directory.
	PIDFile string `json:"pid_file"`
	// HistoryDB locates the run history database.
	HistoryDB string `json:"history_db"`
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		BufferSize: defaultBufferSize,
		LogLevel:   defaultLogLevel,
		PIDFile:    defaultPIDFile,
		HistoryDB:  defaultHistoryDB(),
	}
}

// Load reads, normalizes, and validates the configuration file at
// path (DefaultPath when empty). A missing file, unparseable content,
// or missing required key is an error; callers treat all three as
// fatal before any lock or sync activity starts.
func Load(path string) (*Config, string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, "", err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", resolved, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

// Validate ensures required keys are present. Optional fields are
// passed through permissively; rclone is the authority on their shape.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Local) == "" {
		return fmt.Errorf("missing required config key: local")
	}
	if strings.TrimSpace(c.Remote) == "" {
		return fmt.Errorf("missing required config key: remote")
	}
	return nil
}

func (c *Config) normalize() error {
	c.Local = strings.TrimSpace(c.Local)
	c.Remote = strings.TrimSpace(c.Remote)
	c.BWLimit = strings.TrimSpace(c.BWLimit)

	if strings.TrimSpace(c.BufferSize) == "" {
		c.BufferSize = defaultBufferSize
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaultLogLevel
	}
	if strings.TrimSpace(c.PIDFile) == "" {
		c.PIDFile = defaultPIDFile
	}
	if strings.TrimSpace(c.HistoryDB) == "" {
		c.HistoryDB = defaultHistoryDB()
	}

	var err error
	if c.PIDFile, err = ExpandPath(c.PIDFile); err != nil {
		return fmt.Errorf("pid_file: %w", err)
	}
	if c.HistoryDB, err = ExpandPath(c.HistoryDB); err != nil {
		return fmt.Errorf("history_db: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading "~" against the user home directory.
// Paths without one are returned untouched, so relative lock paths
// keep their working-directory scope and rclone remotes like "r:/b"
// are never rewritten.
func ExpandPath(pathValue string) (string, error) {
	if !strings.HasPrefix(pathValue, "~") {
		return pathValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if pathValue == "~" {
		return home, nil
	}
	if len(pathValue) > 1 && pathValue[1] == '/' {
		return filepath.Join(home, pathValue[2:]), nil
	}
	return pathValue, nil
}

func defaultHistoryDB() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "synco", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "synco-history.db"
	}
	return filepath.Join(home, ".local", "share", "synco", "history.db")
}

// CreateSample writes a sample configuration file to the given path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
