package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/movie_booking/internal/adapter/cache/redis"
	"github.com/srgjo27/movie_booking/internal/adapter/cli"
	"github.com/srgjo27/movie_booking/internal/adapter/random"
	"github.com/srgjo27/movie_booking/internal/adapter/repository/jsonfile"
	"github.com/srgjo27/movie_booking/internal/core/domain"
	"github.com/srgjo27/movie_booking/internal/core/ports"
	"github.com/srgjo27/movie_booking/internal/core/services"
	"github.com/srgjo27/movie_booking/internal/platform/cache"
	"github.com/srgjo27/movie_booking/internal/platform/config"
	"github.com/srgjo27/movie_booking/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	dataFile := flag.String("data", cfg.DataFile, "path of the booking data file")
	flag.Parse()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Every mutation is saved as it happens, so an interrupt loses nothing.
	if err := run(context.Background(), cfg, *dataFile, log); err != nil {
		if errors.Is(err, domain.ErrCorrupt) {
			fmt.Fprintf(os.Stderr, "\n!!! The data file %s is corrupt and was NOT modified.\n!!! %v\n!!! Fix or move the file before starting again.\n", *dataFile, err)
		}
		log.Fatal("movie booking exited with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, dataFile string, log *zap.Logger) error {
	repo := jsonfile.NewRepository(dataFile)

	state, err := services.Bootstrap(ctx, repo, services.SeedOptions{
		AdminPassword: cfg.AdminPassword,
		BcryptCost:    cfg.BcryptCost,
	}, log)
	if err != nil {
		return err
	}

	var seatCache ports.SeatCache
	if cfg.CacheEnabled() {
		client, err := cache.NewRedisClient(ctx, cache.Config{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			DB:   cfg.RedisDB,
		}, log)
		if err != nil {
			log.Warn("seat cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			seatCache = redis.NewSeatCache(client)
		}
	}

	store := services.NewStore(state, repo, log)
	bookingService := services.NewBookingService(
		store,
		random.NewLuckyDraw(cfg.LuckyDrawOdds, uint64(time.Now().UnixNano())),
		seatCache,
		services.LoyaltyPolicy{
			PointsPerSeat:  cfg.PointsPerSeat,
			LuckyDrawBonus: cfg.LuckyDrawBonus,
			RevokeOnCancel: cfg.RevokePointsOnCancel,
		},
	)
	catalogService := services.NewCatalogService(store, bookingService)
	accountService := services.NewAccountService(store)

	app := cli.NewApp(store, catalogService, bookingService, accountService, os.Stdin, os.Stdout, log)
	if err := app.Run(ctx); err != nil {
		return err
	}

	return store.Save(ctx)
}
