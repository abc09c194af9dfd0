package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for sermon-engine.
// Values come from config.yaml when present, with environment variables
// overriding YAML. Secrets (PGPASSWORD, API keys) are env-only.
type Config struct {
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Tagger   TaggerConfig   `yaml:"tagger"`
}

// AuthConfig holds JWT verification settings.
type AuthConfig struct {
	// EnableVerification controls whether bearer tokens are validated.
	// Set to false for local development without an auth server.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// JWKSURL is where signing keys are fetched from.
	JWKSURL string `yaml:"jwks_url" env:"AUTH_JWKS_URL" env-default:""`

	// Issuer is the expected token issuer; empty disables the issuer check.
	Issuer string `yaml:"issuer" env:"AUTH_ISSUER" env-default:""`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"sermon"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"sermon_engine"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// TaxonomyConfig holds taxonomy data overrides.
type TaxonomyConfig struct {
	// SynonymOverlayPath points at an optional YAML file with site-local
	// synonym dictionary additions.
	SynonymOverlayPath string `yaml:"synonym_overlay_path" env:"TAXONOMY_SYNONYM_OVERLAY" env-default:""`
}

// TaggerConfig selects and configures the upstream theme tagger.
type TaggerConfig struct {
	// Provider is "openai", "anthropic", or "none".
	Provider string `yaml:"provider" env:"TAGGER_PROVIDER" env-default:"none"`

	OpenAIEndpoint string `yaml:"openai_endpoint" env:"TAGGER_OPENAI_ENDPOINT" env-default:"https://api.openai.com/v1"`
	OpenAIModel    string `yaml:"openai_model" env:"TAGGER_OPENAI_MODEL" env-default:""`
	OpenAIAPIKey   string `yaml:"-" env:"TAGGER_OPENAI_API_KEY"` // Secret - not in YAML

	AnthropicModel  string `yaml:"anthropic_model" env:"TAGGER_ANTHROPIC_MODEL" env-default:""`
	AnthropicAPIKey string `yaml:"-" env:"TAGGER_ANTHROPIC_API_KEY"` // Secret - not in YAML
}

// Load reads configuration from config.yaml with environment variable
// overrides; a missing config.yaml falls back to env-only. The version
// parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	err := cleanenv.ReadConfig("config.yaml", cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.EnableVerification && c.Auth.JWKSURL == "" {
		return fmt.Errorf("auth verification enabled but no jwks_url configured")
	}

	switch c.Tagger.Provider {
	case "none", "":
	case "openai":
		if c.Tagger.OpenAIModel == "" {
			return fmt.Errorf("tagger provider openai requires openai_model")
		}
	case "anthropic":
		if c.Tagger.AnthropicModel == "" {
			return fmt.Errorf("tagger provider anthropic requires anthropic_model")
		}
	default:
		return fmt.Errorf("unknown tagger provider %q", c.Tagger.Provider)
	}

	return nil
}
