package rentals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type RentalsStorage interface {
	List(ctx context.Context) ([]models.Rental, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Rental, error)
	FindFor(ctx context.Context, customerID, movieID uuid.UUID) (*models.Rental, error)
	// Insert stores the rental and decrements the movie's stock atomically,
	// failing with storage.ErrConflict when no copy is left.
	Insert(ctx context.Context, rental *models.Rental) (*models.Rental, error)
	// Return marks an open rental returned and increments the movie's stock
	// atomically, failing with storage.ErrConflict when the rental is closed.
	Return(ctx context.Context, rentalID, movieID uuid.UUID, fee float64, returnedAt time.Time) (*models.Rental, error)
}

type CustomersGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type MoviesGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Movie, error)
}

type RentalService struct {
	log       *slog.Logger
	storage   RentalsStorage
	customers CustomersGetter
	movies    MoviesGetter
	now       func() time.Time
}

func New(log *slog.Logger, storage RentalsStorage, customers CustomersGetter, movies MoviesGetter) *RentalService {
	return &RentalService{
		log:       log,
		storage:   storage,
		customers: customers,
		movies:    movies,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for checkout and return dates.
func (s *RentalService) WithClock(now func() time.Time) *RentalService {
	s.now = now
	return s
}

func (s *RentalService) List(ctx context.Context) ([]models.Rental, error) {
	const op = "rentals.RentalService.List"
	rentals, err := s.storage.List(ctx)
	if err != nil {
		s.log.Error(err.Error(), "op", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rentals, nil
}

func (s *RentalService) Get(ctx context.Context, id string) (*models.Rental, error) {
	const op = "rentals.RentalService.Get"
	log := s.log.With("op", op, "id", id)
	rentalID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed rental id")
		return nil, ErrRentalNotFound
	}
	rental, err := s.storage.Get(ctx, rentalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("rental not found")
			return nil, ErrRentalNotFound
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rental, nil
}

// Create checks a movie out to a customer, copying both into the rental.
func (s *RentalService) Create(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
	const op = "rentals.RentalService.Create"
	log := s.log.With("op", op, "customer_id", customerID, "movie_id", movieID)
	if customerID == "" || movieID == "" {
		return nil, ErrInvalidRequest
	}
	customer, err := s.lookupCustomer(ctx, log, customerID)
	if err != nil {
		return nil, err
	}
	movie, err := s.lookupMovie(ctx, log, movieID)
	if err != nil {
		return nil, err
	}
	if movie.NumberInStock == 0 {
		log.Info("movie not in stock")
		return nil, ErrMovieNotInStock
	}
	rental, err := s.storage.Insert(ctx, &models.Rental{
		Customer: customer.Snapshot(),
		Movie:    movie.Snapshot(),
		DateOut:  s.now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("movie went out of stock")
			return nil, ErrMovieNotInStock
		case errors.Is(err, storage.ErrNotFound):
			log.Info("movie disappeared during checkout")
			return nil, ErrInvalidMovie
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("rental created", "rental_id", rental.ID)
	return rental, nil
}

func (s *RentalService) lookupCustomer(ctx context.Context, log *slog.Logger, id string) (*models.Customer, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed customer id")
		return nil, ErrInvalidCustomer
	}
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("customer not found")
			return nil, ErrInvalidCustomer
		}
		log.Error(err.Error())
		return nil, err
	}
	return customer, nil
}

func (s *RentalService) lookupMovie(ctx context.Context, log *slog.Logger, id string) (*models.Movie, error) {
	movieID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed movie id")
		return nil, ErrInvalidMovie
	}
	movie, err := s.movies.Get(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrInvalidMovie
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}
