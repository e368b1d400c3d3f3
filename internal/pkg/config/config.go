package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,         default=8080"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	ClientID    string        `env:"CLIENT_ID,    default=web"`

	Backend BackendConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// BackendConfig points at the hosted backend service. Both values are
// required for any operation that reaches the store.
type BackendConfig struct {
	URL    string `env:"BACKEND_URL"`
	APIKey string `env:"BACKEND_API_KEY"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=flightschool"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Validate rejects configurations that cannot reach the hosted backend.
// Absence of the endpoint or the API key is fatal for store-backed
// binaries.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("config: BACKEND_URL is required")
	}
	if c.Backend.APIKey == "" {
		return errors.New("config: BACKEND_API_KEY is required")
	}
	if c.TokenSecret == "" {
		return errors.New("config: TOKEN_SECRET is required")
	}
	return nil
}
