package memory

import (
	"context"
	"sort"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type GenreStore struct {
	*state
}

func (s *GenreStore) List(ctx context.Context) ([]models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	genres := make([]models.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

func (s *GenreStore) Get(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.genres[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &g, nil
}

func (s *GenreStore) Insert(ctx context.Context, name string) (*models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := models.Genre{ID: uuid.New(), Name: name}
	s.genres[g.ID] = g
	return &g, nil
}

func (s *GenreStore) Update(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.genres[genre.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	g := *genre
	s.genres[g.ID] = g
	return &g, nil
}

func (s *GenreStore) Delete(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.genres[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(s.genres, id)
	return &g, nil
}
