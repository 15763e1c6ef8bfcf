package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/config"
	httptransport "github.com/example/gym-admin/internal/http"
	"github.com/example/gym-admin/internal/persistence/memory"
	"github.com/example/gym-admin/internal/persistence/sqlite"
	"github.com/example/gym-admin/internal/seed"
)

// dataStore is the full storage surface the services and the seeder need.
// Both the in-memory store and the sqlite store satisfy it.
type dataStore interface {
	application.MembershipTypeRepository
	application.ClientMembershipRepository
	application.AttendanceLedger
	application.BookingRepository
	application.StaffRepository
	application.CourtRepository
	application.UserRepository
	application.RoleRepository
	application.PermissionRepository
	application.DataProtectionRepository
	application.ActionLogRepository
	application.SystemStatusRepository
	application.ContentRepository
	seed.Store
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var store dataStore
	switch cfg.Store {
	case config.StoreSQLite:
		sqliteStore, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			logger.Error("failed to open storage", "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := sqliteStore.Close(); cerr != nil {
				logger.Error("failed to close storage", "error", cerr)
			}
		}()
		if err := sqliteStore.Migrate(context.Background()); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		store = sqliteStore
	default:
		store = memory.NewStorage()
	}

	now := time.Now
	if err := applySeed(ctx, store, cfg, now, logger); err != nil {
		logger.Error("failed to seed storage", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString

	membershipService := application.NewMembershipServiceWithLogger(store, store, idGenerator, now, logger)
	attendanceService := application.NewAttendanceServiceWithLogger(store, store, idGenerator, logger)
	bookingService := application.NewBookingServiceWithLogger(store, idGenerator, logger)
	resourceService := application.NewResourceServiceWithLogger(store, store, idGenerator, logger)
	userService := application.NewUserServiceWithLogger(store, idGenerator, logger)
	securityService := application.NewSecurityServiceWithLogger(store, store, store, store, store, idGenerator, logger)
	contentService := application.NewContentServiceWithLogger(store, idGenerator, now, logger)
	analyticsService := application.NewAnalyticsServiceWithLogger(store, store, store, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Memberships: httptransport.NewMembershipHandler(membershipService, attendanceService, logger),
		Bookings:    httptransport.NewBookingHandler(bookingService, logger),
		Resources:   httptransport.NewResourceHandler(resourceService, logger),
		Users:       httptransport.NewUserHandler(userService, logger),
		Security:    httptransport.NewSecurityHandler(securityService, logger),
		Content:     httptransport.NewContentHandler(contentService, logger),
		Analytics:   httptransport.NewAnalyticsHandler(analyticsService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.Latency(cfg.APILatency),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("gym admin API listening", "addr", server.Addr, "store", cfg.Store)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// applySeed loads the demo dataset. A sqlite store that already holds data is
// left untouched so restarts do not duplicate rows.
func applySeed(ctx context.Context, store dataStore, cfg config.Config, now func() time.Time, logger *slog.Logger) error {
	types, err := store.ListMembershipTypes(ctx)
	if err != nil {
		return err
	}
	if len(types) > 0 {
		logger.Info("storage already seeded", "membership_types", len(types))
		return nil
	}
	return seed.Apply(ctx, store, seed.Options{Seed: cfg.RandSeed, Now: now, Logger: logger})
}
