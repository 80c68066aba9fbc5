// Command seed creates the admin account from ADMIN_NAME, ADMIN_EMAIL and
// ADMIN_PASSWORD and prints its auth token.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"
	"vidly/proj/internal/config"
	"vidly/proj/internal/lib/logger"
	"vidly/proj/internal/services"
	"vidly/proj/internal/services/auth"
	"vidly/proj/internal/storage/postgres"
	pgmodels "vidly/proj/internal/storage/postgres/models"

	"github.com/joho/godotenv"
)

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug, "service", "seed")

	params := auth.SignupParams{
		Name:     os.Getenv("ADMIN_NAME"),
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
		IsAdmin:  true,
	}
	if params.Name == "" || params.Email == "" || params.Password == "" {
		log.Error("ADMIN_NAME, ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		log.Error("seeding requires the postgres driver", "driver", cfg.DB.Driver)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		log.Error("failed to connect to database", "reason", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	svc := services.New(log, cfg, services.FromPostgres(pgmodels.New(db)), nil)
	_, token, err := svc.Auth.Signup(ctx, params)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			log.Info("admin already exists, logging in")
			token, err = svc.Auth.Login(ctx, params.Email, params.Password)
		}
		if err != nil {
			log.Error("failed to seed admin", "reason", err.Error())
			os.Exit(1)
		}
	}
	fmt.Println("ADMIN_TOKEN=" + token)
}
