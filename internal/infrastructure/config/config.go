package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	BcryptCost  int  `env:"BCRYPT_COST,  default=10"`
	SeedCatalog bool `env:"SEED_CATALOG, default=true"`

	Store StoreConfig
	Redis RedisConfig
	Mongo MongoConfig
	Admin AdminConfig
}

type StoreConfig struct {
	Driver    string `env:"STORE_DRIVER,     default=redis"`
	KeyPrefix string `env:"STORE_KEY_PREFIX, default=housing:"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	DB       int    `env:"REDIS_DB,   default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=student_housing"`
	Collection string `env:"MONGO_COLLECTION, default=kv"`
}

// AdminConfig provisions the administrator. Leaving Email or PasswordHash
// empty disables admin login.
type AdminConfig struct {
	Email        string `env:"ADMIN_EMAIL"`
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	Name         string `env:"ADMIN_NAME, default=Administrator"`
}

// AdminEnabled reports whether an administrator is provisioned.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Email != "" && c.Admin.PasswordHash != ""
}

// Load reads an optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverRedis, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("load config: unknown STORE_DRIVER %q (want redis, mongo or memory)", c.Store.Driver)
	}
	if (c.Admin.Email == "") != (c.Admin.PasswordHash == "") {
		return fmt.Errorf("load config: ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set together")
	}
	return nil
}
