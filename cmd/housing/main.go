package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/sakan/student-housing/internal/app"
	"github.com/sakan/student-housing/internal/core/domain"
	"github.com/sakan/student-housing/internal/core/ports"
	"github.com/sakan/student-housing/internal/core/service"
	"github.com/sakan/student-housing/internal/infrastructure/config"
	"github.com/sakan/student-housing/internal/metrics"
	"github.com/sakan/student-housing/pkg/logger"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not configured yet
		log.Fatalf("failed to load config: %v", err)
	}

	if *hashPassword != "" {
		hash, err := service.NewBcryptHasher(cfg.BcryptCost).Hash(*hashPassword)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	lg := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "student-housing",
		Env:     cfg.Env,
	})
	lg.Info().Str("driver", cfg.Store.Driver).Msg("engine starting")

	a, err := app.New(ctx, cfg, clockwork.NewRealClock(), lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to start engine")
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			lg.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := summarize(ctx, a, lg); err != nil {
		lg.Error().Err(err).Msg("failed to read catalog")
	}
}

// summarize logs the state an administrator would act on next.
func summarize(ctx context.Context, a *app.App, lg zerolog.Logger) error {
	listings, err := a.Catalog.Listings(ctx, ports.ListingFilter{})
	if err != nil {
		return err
	}
	pendingListings, err := a.Catalog.PendingListings(ctx)
	if err != nil {
		return err
	}
	pendingAccounts, err := a.Identity.PendingAccounts(ctx)
	if err != nil {
		return err
	}
	pendingRequests, err := a.Catalog.BookingRequests(ctx, ports.BookingRequestFilter{Status: domain.BookingPending})
	if err != nil {
		return err
	}
	unread, err := a.Catalog.ContactMessages(ctx, domain.ContactUnread)
	if err != nil {
		return err
	}

	ev := lg.Info().
		Int("listings", len(listings)).
		Int("pending_listings", len(pendingListings)).
		Int("pending_accounts", len(pendingAccounts)).
		Int("pending_booking_requests", len(pendingRequests)).
		Int("unread_messages", len(unread))
	if acc, ok := a.Identity.CurrentSession(); ok {
		ev = ev.Str("session_account", acc.ID).Str("session_role", string(acc.Role))
	}
	ev.Msg("engine ready")

	// no exporter runs in a one-shot process, so counters are logged once
	totals, err := metrics.Totals(prometheus.DefaultGatherer)
	if err != nil {
		return err
	}
	counters := zerolog.Dict()
	for name, v := range totals {
		counters = counters.Float64(name, v)
	}
	lg.Info().Dict("counters", counters).Msg("startup metrics")
	return nil
}
