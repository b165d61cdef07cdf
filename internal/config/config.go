// Package config loads quizcraft settings. Precedence, lowest first:
// built-in defaults, the YAML config file, QUIZCRAFT_* environment
// variables, then command-line flags (applied by the caller).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizcraft/internal/catalog"
	"github.com/abhisek/quizcraft/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	// Catalog is where quizzes are loaded from: "embedded", a file path,
	// an http(s) URL or a redis:// URL.
	Catalog string `yaml:"catalog"`

	// RedisKey is the key holding the catalog document for redis sources.
	RedisKey string `yaml:"redis_key"`

	// DB is the SQLite path for the LLM call log. Empty means the default
	// XDG data path.
	DB string `yaml:"db"`

	Serve ServeConfig `yaml:"serve"`
	LLM   llm.Config  `yaml:"llm"`
}

// ServeConfig configures the read-only catalog HTTP server.
type ServeConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

func Default() Config {
	return Config{
		Catalog:  "embedded",
		RedisKey: catalog.DefaultRedisKey,
		Serve: ServeConfig{
			Addr:        "127.0.0.1:8080",
			CORSOrigins: []string{"*"},
		},
		LLM: llm.DefaultConfig(),
	}
}

// DefaultPath returns $QUIZCRAFT_CONFIG, else
// $XDG_CONFIG_HOME/quizcraft/config.yaml, else ~/.config/quizcraft/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("QUIZCRAFT_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "quizcraft", "config.yaml")
}

// Load reads path over the defaults and applies the environment. A missing
// file is only an error when required is set, i.e. the user named it.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if cfg, err = parse(cfg, data); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return ApplyEnv(cfg), nil
}

func parse(cfg Config, data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays QUIZCRAFT_* variables onto cfg.
func ApplyEnv(cfg Config) Config {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Catalog, "QUIZCRAFT_CATALOG")
	set(&cfg.RedisKey, "QUIZCRAFT_REDIS_KEY")
	set(&cfg.DB, "QUIZCRAFT_DB")
	set(&cfg.Serve.Addr, "QUIZCRAFT_SERVE_ADDR")

	if v := os.Getenv("QUIZCRAFT_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Serve.CORSOrigins = origins
	}

	cfg.LLM = llm.ApplyEnv(cfg.LLM)
	return cfg
}

// SourceOptions returns the catalog source options derived from cfg.
func (c Config) SourceOptions() catalog.SourceOptions {
	return catalog.SourceOptions{RedisKey: c.RedisKey}
}
