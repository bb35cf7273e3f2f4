package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/tasklist/internal/storage"
)

type Config struct {
	Store        string `yaml:"store"`
	DBPath       string `yaml:"db_path"`
	StateFile    string `yaml:"state_file"`
	SeedExamples bool   `yaml:"seed_examples"`
	LogFile      string `yaml:"log_file"`
}

// Dir is where tasklist keeps its config and data by default.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return ".tasklist"
	}
	return filepath.Join(base, "tasklist")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() Config {
	dir := Dir()
	return Config{
		Store:        storage.BackendSQLite,
		DBPath:       filepath.Join(dir, "tasks.db"),
		StateFile:    filepath.Join(dir, "tasks.json"),
		SeedExamples: true,
	}
}

// LoadFile overlays the YAML document at path onto base. A missing file is
// not an error.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return base, fmt.Errorf("read config %s: %w", trimmed, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", trimmed, err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKLIST_STORE"); ok {
		cfg.Store = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKLIST_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKLIST_STATE_FILE"); ok {
		cfg.StateFile = v
	}
	if v, ok := getEnvBool("TASKLIST_SEED_EXAMPLES"); ok {
		cfg.SeedExamples = v
	}
	if v, ok := getEnvString("TASKLIST_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

// Load resolves defaults, then the file at path, then the environment, then
// each override in order, and validates the result.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg, err := LoadFile(path, Default())
	if err != nil {
		return cfg, err
	}
	cfg = FromEnv(cfg)
	for _, apply := range overrides {
		apply(&cfg)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store {
	case storage.BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("config: db_path is required for the sqlite store")
		}
	case storage.BackendFile:
		if strings.TrimSpace(c.StateFile) == "" {
			return errors.New("config: state_file is required for the file store")
		}
	case storage.BackendMemory:
	default:
		return fmt.Errorf("config: %w: %q", storage.ErrUnknownBackend, c.Store)
	}
	return nil
}

func (c Config) StorageOptions() storage.Options {
	return storage.Options{Backend: c.Store, DBPath: c.DBPath, StateFile: c.StateFile}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
