package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/client"
	"github.com/tendant/simple-catalog/pkg/catalog/kv"
	kvfs "github.com/tendant/simple-catalog/pkg/catalog/kv/fs"
	kvmemory "github.com/tendant/simple-catalog/pkg/catalog/kv/memory"
	kvs3 "github.com/tendant/simple-catalog/pkg/catalog/kv/s3"
	kvrepo "github.com/tendant/simple-catalog/pkg/catalog/repo/kv"
	"github.com/tendant/simple-catalog/pkg/catalog/repo/memory"
	repopg "github.com/tendant/simple-catalog/pkg/catalog/repo/postgres"
)

// Store types
const (
	StoreAuto     = "auto"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreLocal    = "local"
	StoreRemote   = "remote"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.resolveStoreType(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// defaults must match the env-default tags of ServerConfig
func defaults() ServerConfig {
	return ServerConfig{
		Port:               "8000",
		Environment:        "development",
		LogLevel:           "info",
		StoreType:          StoreAuto,
		MigrateOnStart:     true,
		LocalStorageURL:    "memory://",
		LocalStorageKey:    kvrepo.DefaultKey,
		AWS:                AWSConfig{Region: "us-east-1"},
		APIURL:             client.DefaultBaseURL,
		CORSOrigins:        []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		RequestTimeout:     60 * time.Second,
		EnableEventLogging: true,
	}
}

// ServerConfig represents configuration shared by the server and the CLI
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8000"`
	Environment string `env:"ENVIRONMENT" env-default:"development"` // development, production, testing
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	// StoreType is memory, postgres, local or remote; auto or empty means detect from DatabaseURL
	StoreType string `env:"STORE_TYPE" env-default:"auto"`

	DatabaseURL    string `env:"DATABASE_URL"`
	DBSchema       string `env:"DB_SCHEMA"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" env-default:"true"`

	LocalStorageURL string `env:"LOCAL_STORAGE_URL" env-default:"memory://"`
	LocalStorageKey string `env:"LOCAL_STORAGE_KEY" env-default:"REPOSITORIO_CM_CONTEUDOS_V1"`
	AWS             AWSConfig

	APIURL string `env:"API_URL" env-default:"http://127.0.0.1:8000"`

	CORSOrigins    []string      `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://127.0.0.1:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"60s"`

	EnableEventLogging bool `env:"ENABLE_EVENT_LOGGING" env-default:"true"`
}

// AWSConfig holds credentials for the s3:// local storage backend
type AWSConfig struct {
	Region          string `env:"AWS_REGION" env-default:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

func (c *ServerConfig) resolveStoreType() error {
	c.StoreType = strings.ToLower(strings.TrimSpace(c.StoreType))
	if c.StoreType != "" && c.StoreType != StoreAuto {
		return nil
	}

	switch {
	case c.DatabaseURL == "" || c.DatabaseURL == "memory":
		c.StoreType = StoreMemory
		c.DatabaseURL = ""
	case isPostgresURL(c.DatabaseURL):
		c.StoreType = StorePostgres
	default:
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", c.DatabaseURL)
	}
	return nil
}

func isPostgresURL(u string) bool {
	return strings.HasPrefix(u, "postgresql://") || strings.HasPrefix(u, "postgres://")
}

// Validate validates the configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.StoreType {
	case StoreMemory, StoreRemote:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required when using postgres")
		}
		if !isPostgresURL(c.DatabaseURL) {
			return fmt.Errorf("unsupported DATABASE_URL format: %s", c.DatabaseURL)
		}
	case StoreLocal:
		if _, err := ParseLocalStorageURL(c.LocalStorageURL); err != nil {
			return err
		}
		if c.LocalStorageKey == "" {
			return errors.New("local_storage_key is required")
		}
	default:
		return fmt.Errorf("store_type must be one of memory, postgres, local, remote; got %q", c.StoreType)
	}

	if c.StoreType == StoreRemote && c.APIURL == "" {
		return errors.New("api_url is required when using the remote store")
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// BuildStore creates the configured catalog.Store. The returned cleanup func
// releases connections and is never nil.
func (c *ServerConfig) BuildStore(ctx context.Context) (catalog.Store, func(), error) {
	noop := func() {}

	if c.StoreType == StoreRemote {
		return client.New(c.APIURL, client.WithTimeout(c.RequestTimeout)), noop, nil
	}

	repo, cleanup, err := c.buildRepository(ctx)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to build repository: %w", err)
	}

	sink := catalog.NewNoopEventSink()
	if c.EnableEventLogging {
		sink = catalog.NewLoggingEventSink(slog.Default())
	}

	store, err := catalog.New(catalog.WithRepository(repo), catalog.WithEventSink(sink))
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	return store, cleanup, nil
}

func (c *ServerConfig) buildRepository(ctx context.Context) (catalog.Repository, func(), error) {
	noop := func() {}

	switch c.StoreType {
	case StoreMemory:
		return memory.New(), noop, nil

	case StoreLocal:
		ls, err := ParseLocalStorageURL(c.LocalStorageURL)
		if err != nil {
			return nil, noop, err
		}
		store, err := c.buildKVStore(ctx, ls)
		if err != nil {
			return nil, noop, err
		}
		return kvrepo.New(store, kvrepo.WithKey(c.LocalStorageKey), kvrepo.WithBackendName(ls.Kind)), noop, nil

	case StorePostgres:
		pool, err := c.newPool(ctx)
		if err != nil {
			return nil, noop, err
		}
		if c.MigrateOnStart {
			version, err := repopg.Migrate(pool)
			if err != nil {
				pool.Close()
				return nil, noop, err
			}
			slog.Info("Database migrated", "version", version)
		}
		return repopg.NewWithPool(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unsupported store type: %s", c.StoreType)
	}
}

func (c *ServerConfig) newPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema := c.DBSchema; schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, "SET search_path TO "+pgx.Identifier{schema}.Sanitize())
			return err
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return pool, nil
}

func (c *ServerConfig) buildKVStore(ctx context.Context, ls LocalStorage) (kv.Store, error) {
	switch ls.Kind {
	case "memory":
		return kvmemory.New(), nil
	case "fs":
		return kvfs.New(kvfs.Config{BaseDir: ls.Dir})
	case "s3":
		region := ls.Region
		if region == "" {
			region = c.AWS.Region
		}
		return kvs3.New(ctx, kvs3.Config{
			Region:                 region,
			Bucket:                 ls.Bucket,
			Prefix:                 ls.Prefix,
			AccessKeyID:            c.AWS.AccessKeyID,
			SecretAccessKey:        c.AWS.SecretAccessKey,
			Endpoint:               ls.Endpoint,
			UsePathStyle:           ls.PathStyle,
			CreateBucketIfNotExist: ls.CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported local storage kind: %s", ls.Kind)
	}
}
