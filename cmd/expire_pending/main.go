package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/modules/rental"
	"carrental/internal/pkg/logger"
	"carrental/internal/repository"
)

// expire_pending cancels bookings that stayed unpaid longer than
// PENDING_PAYMENT_TTL. Run it from cron or a scheduled job.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-cfg.PendingPaymentTTL)
	svc := rental.NewService(repository.NewStore(db))
	expired, err := svc.ExpireStalePending(ctx, cutoff)
	if err != nil {
		log.Fatalf("expire pending rentals failed after %d: %v", len(expired), err)
	}

	slog.Info("expired pending rentals", "count", len(expired), "cutoff", cutoff.UTC(), "ids", expired)
}
