package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"time"
	"vidly/proj/internal/config"
	"vidly/proj/internal/lib/logger"
	"vidly/proj/internal/services"
	"vidly/proj/internal/storage/memory"
	"vidly/proj/internal/storage/postgres"
	pgmodels "vidly/proj/internal/storage/postgres/models"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug, "service", "api")

	storages, closeStorage, err := openStorage(cfg, log)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.DB.Driver, "reason", err.Error())
		os.Exit(1)
	}
	defer closeStorage()

	app := NewApplication(cfg, log, storages)
	if err := app.serve(); err != nil {
		app.log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config, log *slog.Logger) (services.Storages, func(), error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data will be lost on exit")
		return services.FromMemory(memory.New()), func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		return services.Storages{}, nil, err
	}
	log.Info("database connection established")
	return services.FromPostgres(pgmodels.New(db)), db.Close, nil
}
