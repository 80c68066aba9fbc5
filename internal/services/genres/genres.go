package genres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type GenresStorage interface {
	List(ctx context.Context) ([]models.Genre, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Genre, error)
	Insert(ctx context.Context, name string) (*models.Genre, error)
	Update(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Genre, error)
}

type GenreService struct {
	log     *slog.Logger
	storage GenresStorage
}

func New(log *slog.Logger, storage GenresStorage) *GenreService {
	return &GenreService{
		log:     log,
		storage: storage,
	}
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	const op = "genres.GenreService.List"
	genres, err := s.storage.List(ctx)
	if err != nil {
		s.log.Error(err.Error(), "op", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return genres, nil
}

// Get looks the genre up by its textual id; ids that are not UUIDs are
// reported as not found.
func (s *GenreService) Get(ctx context.Context, id string) (*models.Genre, error) {
	const op = "genres.GenreService.Get"
	log := s.log.With("op", op, "id", id)
	genreID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed genre id")
		return nil, ErrGenreNotFound
	}
	genre, err := s.storage.Get(ctx, genreID)
	return s.handleResult(log, op, genre, err)
}

func (s *GenreService) Create(ctx context.Context, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Create"
	log := s.log.With("op", op, "name", name)
	genre, err := s.storage.Insert(ctx, name)
	if err != nil {
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id string, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Update"
	log := s.log.With("op", op, "id", id, "name", name)
	genreID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed genre id")
		return nil, ErrGenreNotFound
	}
	genre, err := s.storage.Update(ctx, &models.Genre{ID: genreID, Name: name})
	return s.handleResult(log, op, genre, err)
}

func (s *GenreService) Delete(ctx context.Context, id string) (*models.Genre, error) {
	const op = "genres.GenreService.Delete"
	log := s.log.With("op", op, "id", id)
	genreID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed genre id")
		return nil, ErrGenreNotFound
	}
	genre, err := s.storage.Delete(ctx, genreID)
	return s.handleResult(log, op, genre, err)
}

func (s *GenreService) handleResult(log *slog.Logger, op string, genre *models.Genre, err error) (*models.Genre, error) {
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return genre, nil
}
