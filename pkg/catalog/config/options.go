package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// WithEnv populates the configuration from environment variables.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return nil
	}
}

// WithDotEnv loads the given .env files into the process environment.
// Missing files are skipped. Place it before WithEnv.
func WithDotEnv(files ...string) Option {
	return func(c *ServerConfig) error {
		for _, f := range files {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load %s: %w", f, err)
			}
		}
		return nil
	}
}

func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		c.Port = port
		return nil
	}
}

func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		c.Environment = env
		return nil
	}
}

func WithLogLevel(level string) Option {
	return func(c *ServerConfig) error {
		c.LogLevel = level
		return nil
	}
}

// WithStoreType forces a store type instead of detecting it from DATABASE_URL.
func WithStoreType(storeType string) Option {
	return func(c *ServerConfig) error {
		c.StoreType = storeType
		return nil
	}
}

func WithDatabase(url string) Option {
	return func(c *ServerConfig) error {
		c.DatabaseURL = url
		return nil
	}
}

func WithDBSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

func WithMigrateOnStart(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.MigrateOnStart = enabled
		return nil
	}
}

// WithLocalStorage selects the key/value backend used by the local store.
func WithLocalStorage(url, key string) Option {
	return func(c *ServerConfig) error {
		c.LocalStorageURL = url
		if key != "" {
			c.LocalStorageKey = key
		}
		return nil
	}
}

func WithAPIURL(url string) Option {
	return func(c *ServerConfig) error {
		c.APIURL = url
		return nil
	}
}

func WithCORSOrigins(origins ...string) Option {
	return func(c *ServerConfig) error {
		c.CORSOrigins = origins
		return nil
	}
}

func WithRequestTimeout(d time.Duration) Option {
	return func(c *ServerConfig) error {
		if d < 0 {
			return errors.New("request timeout must not be negative")
		}
		c.RequestTimeout = d
		return nil
	}
}

func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}
