package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "housing:", cfg.Store.KeyPrefix)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "kv", cfg.Mongo.Collection)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.SeedCatalog)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER":        "mongo",
		"MONGO_URI":           "mongodb://db:27017",
		"MONGO_DB":            "housing_test",
		"REDIS_DB":            "3",
		"LOG_PRETTY":          "true",
		"SEED_CATALOG":        "false",
		"ADMIN_EMAIL":         "admin@sakan.eg",
		"ADMIN_PASSWORD_HASH": "$2a$10$abcdefghijklmnopqrstuv",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "housing_test", cfg.Mongo.Database)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.LogPretty)
	assert.False(t, cfg.SeedCatalog)
	assert.True(t, cfg.AdminEnabled())
	assert.Equal(t, "Administrator", cfg.Admin.Name)
}

func TestLoadWith_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"admin email without hash", map[string]string{"ADMIN_EMAIL": "admin@sakan.eg"}},
		{"non numeric cost", map[string]string{"BCRYPT_COST": "high"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
