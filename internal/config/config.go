package config

import (
	"os"

	"crapette-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Crapette server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	Log             struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	AI struct {
		// ThinkDelayMS is how long callers should pretend the AI is
		// thinking before submitting its move. The engine itself computes
		// a move instantly.
		ThinkDelayMS int `yaml:"thinkDelayMs" envconfig:"think_delay_ms"`
	}
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() Config {
	var c Config
	c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.JWT.PublicKey = "public.pem"
	c.JWT.PrivateKey = "private.key"
	c.AI.ThinkDelayMS = 1500
	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; defaults and environment
// variables still apply.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("CRAPETTE_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer func() { _ = file.Close() }()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("crapette", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
