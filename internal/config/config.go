package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// GeminiConfig holds the upstream model configuration
type GeminiConfig struct {
	APIKey   string `env:"GEMINI_API_KEY" env-description:"API key for the Gemini API (required)"`
	Model    string `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash" env-description:"model used for generateContent"`
	Endpoint string `env:"GEMINI_ENDPOINT" env-description:"overrides the Gemini API base URL"`
}

// Config holds all configuration for the application
type Config struct {
	Env             string        `env:"APP_ENV" env-default:"local" env-description:"local, dev or prod"`
	HTTPAddr        string        `env:"HTTP_ADDR" env-default:":8080" env-description:"address the relay listens on"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s" env-description:"how long in-flight requests may drain on shutdown"`
	Gemini          GeminiConfig
}

// Load reads the given .env files (".env" when none are given) and then the
// process environment. A missing .env file is not an error; variables that
// are already set are never overridden by the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s file: %w", file, err)
		}
	}

	config := &Config{}
	if err := cleanenv.ReadEnv(config); err != nil {
		desc, _ := cleanenv.GetDescription(config, nil)
		return nil, fmt.Errorf("config: %w; %s", err, desc)
	}

	if config.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	switch config.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return nil, fmt.Errorf("APP_ENV must be one of %s, %s, %s; got %q", EnvLocal, EnvDev, EnvProd, config.Env)
	}

	return config, nil
}
