package services

import (
	"log/slog"
	"vidly/proj/internal/config"
	"vidly/proj/internal/mails"
	"vidly/proj/internal/services/auth"
	"vidly/proj/internal/services/customers"
	"vidly/proj/internal/services/genres"
	"vidly/proj/internal/services/movies"
	"vidly/proj/internal/services/rentals"
	"vidly/proj/internal/storage/memory"
	pgmodels "vidly/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth      *auth.AuthService
	Genres    *genres.GenreService
	Customers *customers.CustomerService
	Movies    *movies.MovieService
	Rentals   *rentals.RentalService
}

// Storages groups the repositories the services run on; both the postgres
// models and the in-memory store provide them.
type Storages struct {
	Genres    genres.GenresStorage
	Customers customers.CustomersStorage
	Movies    movies.MoviesStorage
	Rentals   rentals.RentalsStorage
	Users     auth.UsersStorage
}

func FromPostgres(m *pgmodels.Models) Storages {
	return Storages{Genres: m.Genres, Customers: m.Customers, Movies: m.Movies, Rentals: m.Rentals, Users: m.Users}
}

func FromMemory(s *memory.Storage) Storages {
	return Storages{Genres: s.Genres, Customers: s.Customers, Movies: s.Movies, Rentals: s.Rentals, Users: s.Users}
}

func New(log *slog.Logger, cfg *config.Config, storages Storages, taskExecutor auth.TaskExecutor) *Services {
	var mailer auth.MailProvider
	if cfg.SMTP.Enabled {
		mailer = mails.New(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Timeout,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.Sender,
			cfg.SMTP.RetriesCount,
		)
	}
	return &Services{
		Auth:      auth.New(log, storages.Users, auth.NewTokenManager(cfg.AppSecret), mailer, taskExecutor),
		Genres:    genres.New(log, storages.Genres),
		Customers: customers.New(log, storages.Customers),
		Movies:    movies.New(log, storages.Movies, storages.Genres),
		Rentals:   rentals.New(log, storages.Rentals, storages.Customers, storages.Movies),
	}
}
