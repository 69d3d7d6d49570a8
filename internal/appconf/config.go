package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FAREGRID_"

// Config holds all the configuration settings for the application.
type Config struct {
	Port      int         `yaml:"port" validate:"min=1,max=65535"`
	Env       Environment `yaml:"env" validate:"min=0,max=2"`
	APIKeys   []string    `yaml:"api_keys" validate:"required,min=1,dive,required"`
	RateLimit int         `yaml:"rate_limit" validate:"gte=0"` // requests per second per API key
	DBPath    string      `yaml:"db_path" validate:"required"`
	LogLevel  string      `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string      `yaml:"log_format" validate:"oneof=json text"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port:      4000,
		Env:       Development,
		APIKeys:   []string{"test"},
		RateLimit: 100,
		DBPath:    "faregrid.db",
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load builds a Config from the defaults, then the YAML file at path (when
// path is not empty), then .env files, then FAREGRID_* environment
// variables. The result is validated.
func Load(path string, dotenvFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := loadDotEnv(dotenvFiles...); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// loadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from FAREGRID_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", EnvPrefix, err)
		}
		c.Port = port
	}
	if v, ok := get("ENV"); ok {
		env, err := parseEnvironment(v)
		if err != nil {
			return fmt.Errorf("%sENV: %w", EnvPrefix, err)
		}
		c.Env = env
	}
	if v, ok := get("API_KEYS"); ok {
		c.APIKeys = SplitKeys(v)
	}
	if v, ok := get("RATE_LIMIT"); ok {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", EnvPrefix, err)
		}
		c.RateLimit = limit
	}
	if v, ok := get("DB_PATH"); ok {
		c.DBPath = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.LogFormat = strings.ToLower(v)
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SplitKeys splits a comma separated key list, dropping blanks.
func SplitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
