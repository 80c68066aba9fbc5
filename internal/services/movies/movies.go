package movies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"vidly/proj/internal/domain/filters"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

// SortSafelist holds the columns movies may be sorted by.
var SortSafelist = []string{"title", "number_in_stock", "daily_rental_rate"}

type MoviesStorage interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	List(ctx context.Context, title string, genre string, filters filters.Filters) ([]models.Movie, int, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Movie, error)
}

type GenresGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Genre, error)
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
	genres  GenresGetter
}

func New(log *slog.Logger, storage MoviesStorage, genres GenresGetter) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
		genres:  genres,
	}
}

type MovieParams struct {
	Title           string
	GenreID         string
	NumberInStock   int
	DailyRentalRate float64
}

func (s *MovieService) Get(ctx context.Context, id string) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movieID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed movie id")
		return nil, ErrMovieNotFound
	}
	movie, err := s.storage.Get(ctx, movieID)
	return s.handleResult(log, op, movie, err)
}

func (s *MovieService) Create(ctx context.Context, params MovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", params.Title, "genre_id", params.GenreID)
	genre, err := s.lookupGenre(ctx, log, params.GenreID)
	if err != nil {
		return nil, err
	}
	movie, err := s.storage.Insert(ctx, &models.Movie{
		Title:           params.Title,
		Genre:           genre.Snapshot(),
		NumberInStock:   params.NumberInStock,
		DailyRentalRate: params.DailyRentalRate,
	})
	if err != nil {
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movie, nil
}

func (s *MovieService) List(ctx context.Context, title string, genre string, f filters.Filters) ([]models.Movie, filters.Metadata, error) {
	const op = "movies.MovieService.List"
	log := s.log.With("op", op, "title", title, "genre", genre)
	f.SortSafelist = SortSafelist
	if f.Sort == "" {
		f.Sort = "title"
	}
	movies, total, err := s.storage.List(ctx, title, genre, f)
	if err != nil {
		log.Error(err.Error())
		return nil, filters.Metadata{}, fmt.Errorf("%s: %w", op, err)
	}
	return movies, filters.CalculateMetadata(total, f), nil
}

func (s *MovieService) Update(ctx context.Context, id string, params MovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id, "title", params.Title, "genre_id", params.GenreID)
	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	genre, err := s.lookupGenre(ctx, log, params.GenreID)
	if err != nil {
		return nil, err
	}
	movie.Title = params.Title
	movie.Genre = genre.Snapshot()
	movie.NumberInStock = params.NumberInStock
	movie.DailyRentalRate = params.DailyRentalRate
	updatedMovie, err := s.storage.Update(ctx, movie)
	return s.handleResult(log, op, updatedMovie, err)
}

func (s *MovieService) Delete(ctx context.Context, id string) (*models.Movie, error) {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	movieID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed movie id")
		return nil, ErrMovieNotFound
	}
	movie, err := s.storage.Delete(ctx, movieID)
	return s.handleResult(log, op, movie, err)
}

func (s *MovieService) lookupGenre(ctx context.Context, log *slog.Logger, id string) (*models.Genre, error) {
	genreID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed genre id")
		return nil, ErrInvalidGenre
	}
	genre, err := s.genres.Get(ctx, genreID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, ErrInvalidGenre
		}
		log.Error("Error getting genre: " + err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *MovieService) handleResult(log *slog.Logger, op string, movie *models.Movie, err error) (*models.Movie, error) {
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movie, nil
}
