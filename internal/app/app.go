// Package app assembles the engine from configuration: the durable store
// for the configured driver, the shared session and both services.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sakan/student-housing/internal/core/ports"
	"github.com/sakan/student-housing/internal/core/service"
	"github.com/sakan/student-housing/internal/infrastructure/config"
	"github.com/sakan/student-housing/internal/infrastructure/db/memory"
	mongokv "github.com/sakan/student-housing/internal/infrastructure/db/mongo"
	rediskv "github.com/sakan/student-housing/internal/infrastructure/db/redis"
	"github.com/sakan/student-housing/pkg/logger"
)

const connectTimeout = 10 * time.Second

// App is a started engine. Close releases the store connection.
type App struct {
	Identity  *service.IdentityService
	Catalog   *service.CatalogService
	Validator *service.Validator

	closers []func(context.Context) error
	log     zerolog.Logger
}

// New opens the store, builds the services, seeds the catalog when enabled
// and restores the persisted session.
func New(ctx context.Context, cfg *config.Config, clock clockwork.Clock, log zerolog.Logger) (*App, error) {
	a := &App{log: log}

	kv, err := a.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	session := service.NewSession()
	a.Identity = service.NewIdentityService(
		kv,
		session,
		service.NewBcryptHasher(cfg.BcryptCost),
		service.AdminCredential{
			Name:         cfg.Admin.Name,
			Email:        cfg.Admin.Email,
			PasswordHash: cfg.Admin.PasswordHash,
		},
		clock,
		logger.Component(log, "identity"),
	)
	a.Catalog = service.NewCatalogService(kv, clock, logger.Component(log, "catalog"))
	a.Validator = service.NewValidator()

	// --- Start-up ---
	if cfg.SeedCatalog {
		if _, err := a.Catalog.EnsureSeeded(ctx); err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}
	if err := a.Identity.Restore(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	if !cfg.AdminEnabled() {
		log.Warn().Msg("no administrator provisioned; admin login disabled")
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (ports.KeyValueStore, error) {
	switch cfg.Store.Driver {
	case config.DriverRedis:
		client, err := rediskv.Connect(ctx, rediskv.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  connectTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		a.log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis store")
		return rediskv.NewKVStore(client, cfg.Store.KeyPrefix), nil

	case config.DriverMongo:
		client, db, err := mongokv.Connect(ctx, mongokv.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  connectTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)
		a.log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
		return mongokv.NewKVStore(db, cfg.Mongo.Collection, cfg.Store.KeyPrefix), nil

	case config.DriverMemory:
		a.log.Warn().Msg("using in-memory store; state is lost on exit")
		return memory.NewKVStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Close releases the store connection.
func (a *App) Close(ctx context.Context) error {
	var first error
	for _, c := range a.closers {
		if err := c(ctx); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
