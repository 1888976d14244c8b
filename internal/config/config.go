// Package config loads service configuration by layering defaults, an
// optional YAML file, PORTUMEM_-prefixed environment variables, and
// command-line flags, in that order.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"
)

const envPrefix = "PORTUMEM_"

// Config holds runtime settings for the drill service.
type Config struct {
	Addr             string   `koanf:"addr" validate:"required"`
	DataDir          string   `koanf:"data_dir" validate:"required"`
	WordsFile        string   `koanf:"words_file"`
	VerbsFile        string   `koanf:"verbs_file"`
	UsersFile        string   `koanf:"users_file"`
	ProgressDir      string   `koanf:"progress_dir"`
	Secret           string   `koanf:"secret" validate:"required"`
	TokenTTLSeconds  int      `koanf:"token_ttl_seconds" validate:"min=1"`
	PBKDF2Iterations int      `koanf:"pbkdf2_iterations" validate:"min=1"`
	AllowedOrigins   []string `koanf:"allowed_origins" validate:"min=1"`
}

// TokenTTL returns the token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"addr":              ":8080",
		"data_dir":          "./data",
		"secret":            "dev-insecure-secret",
		"token_ttl_seconds": 7 * 24 * 60 * 60,
		"pbkdf2_iterations": 48000,
		"allowed_origins":   []string{"*"},
	}
}

// Flags returns the flag set Load understands. Callers parse it (so
// -h works as expected) and hand it back to Load.
func Flags() *flag.FlagSet {
	f := flag.NewFlagSet("portumem", flag.ExitOnError)
	f.String("config", "", "path to YAML config file")
	f.String("addr", "", "listen address")
	f.String("data_dir", "", "directory holding datasets and user state")
	f.String("secret", "", "HMAC secret for signing tokens")
	return f
}

// Load builds the configuration. Dataset and state paths default to
// well-known names under the data directory unless set explicitly.
func Load(flags *flag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.WordsFile == "" {
		cfg.WordsFile = filepath.Join(cfg.DataDir, "words.json")
	}
	if cfg.VerbsFile == "" {
		cfg.VerbsFile = filepath.Join(cfg.DataDir, "verbs.json")
	}
	if cfg.UsersFile == "" {
		cfg.UsersFile = filepath.Join(cfg.DataDir, "users.json")
	}
	if cfg.ProgressDir == "" {
		cfg.ProgressDir = filepath.Join(cfg.DataDir, "progress")
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
