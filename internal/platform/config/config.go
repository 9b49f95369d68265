package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix: SHELTERS_STORAGE__DRIVER=sqlite => storage.driver ("__" separa niveles).
const EnvPrefix = "SHELTERS_"

// ConfigFileEnv apunta a un YAML opcional.
const ConfigFileEnv = "SHELTERS_CONFIG"

type Config struct {
	App     App     `koanf:"app"`
	HTTP    HTTP    `koanf:"http"`
	Log     Log     `koanf:"log"`
	Storage Storage `koanf:"storage"`
	Tracing Tracing `koanf:"tracing"`
}

type App struct {
	Name string `koanf:"name"`
}

type HTTP struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type Driver string

const (
	DriverFile     Driver = "file"
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverS3       Driver = "s3"
)

type Storage struct {
	Driver   Driver   `koanf:"driver"`
	Path     string   `koanf:"path"` // driver=file
	Postgres Postgres `koanf:"postgres"`
	SQLite   SQLite   `koanf:"sqlite"`
	S3       S3       `koanf:"s3"`
}

type Postgres struct {
	DSN     string `koanf:"dsn"`
	Dataset string `koanf:"dataset"`
}

type SQLite struct {
	Path    string `koanf:"path"`
	Dataset string `koanf:"dataset"`
}

type S3 struct {
	Bucket    string        `koanf:"bucket"`
	Key       string        `koanf:"key"`
	Region    string        `koanf:"region"`
	Endpoint  string        `koanf:"endpoint"`
	PathStyle bool          `koanf:"path_style"`
	Timeout   time.Duration `koanf:"timeout"`
}

type Tracing struct {
	Enabled bool `koanf:"enabled"`
	Pretty  bool `koanf:"pretty"`
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":                 "shelter-registry",
		"http.addr":                ":8080",
		"http.read_timeout":        "5s",
		"http.write_timeout":       "10s",
		"log.level":                "info",
		"log.format":               "text",
		"storage.driver":           string(DriverFile),
		"storage.path":             "shelters_data.json",
		"storage.postgres.dataset": "default",
		"storage.sqlite.path":      "shelters.db",
		"storage.sqlite.dataset":   "default",
		"storage.s3.key":           "shelters_data.json",
		"storage.s3.region":        "us-east-1",
		"storage.s3.timeout":       "10s",
		"tracing.enabled":          false,
		"tracing.pretty":           false,
	}
}

// Load arma la config en capas: defaults -> YAML (path o $SHELTERS_CONFIG) ->
// env legacy (PORT, DB_DSN, LOG_LEVEL, LOG_FORMAT, APP_NAME) -> SHELTERS_*.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path = strings.TrimSpace(path); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// legacy antes de SHELTERS_*: lo explícito gana
	if err := k.Load(confmap.Provider(legacyEnv(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load legacy env: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("storage.path required for driver %s", c.Storage.Driver)
		}
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			return fmt.Errorf("storage.postgres.dsn required for driver %s", c.Storage.Driver)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLite.Path) == "" {
			return fmt.Errorf("storage.sqlite.path required for driver %s", c.Storage.Driver)
		}
	case DriverS3:
		if strings.TrimSpace(c.Storage.S3.Bucket) == "" {
			return fmt.Errorf("storage.s3.bucket required for driver %s", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// legacyEnv mantiene las variables que ya usaba el deploy (PORT, DB_DSN, ...).
func legacyEnv() map[string]any {
	out := map[string]any{}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		out["http.addr"] = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		out["storage.driver"] = string(DriverPostgres)
		out["storage.postgres.dsn"] = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		out["log.level"] = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		out["log.format"] = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_NAME")); v != "" {
		out["app.name"] = v
	}
	return out
}
