package memory

import (
	"context"
	"sort"
	"strings"
	"vidly/proj/internal/domain/filters"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type MovieStore struct {
	*state
}

func (s *MovieStore) Get(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &m, nil
}

func (s *MovieStore) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := *movie
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.movies[m.ID] = m
	return &m, nil
}

var movieLess = map[string]func(a, b *models.Movie) int{
	"title": func(a, b *models.Movie) int { return strings.Compare(a.Title, b.Title) },
	"number_in_stock": func(a, b *models.Movie) int {
		return a.NumberInStock - b.NumberInStock
	},
	"daily_rental_rate": func(a, b *models.Movie) int {
		switch {
		case a.DailyRentalRate < b.DailyRentalRate:
			return -1
		case a.DailyRentalRate > b.DailyRentalRate:
			return 1
		}
		return 0
	},
}

func (s *MovieStore) List(ctx context.Context, title string, genre string, f filters.Filters) ([]models.Movie, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]models.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		if title != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(title)) {
			continue
		}
		if genre != "" && !strings.EqualFold(m.Genre.Name, genre) {
			continue
		}
		matched = append(matched, m)
	}
	cmp, ok := movieLess[f.SortColumn()]
	if !ok {
		cmp = movieLess["title"]
	}
	desc := f.SortDirection() == filters.DescSort
	sort.Slice(matched, func(i, j int) bool {
		c := cmp(&matched[i], &matched[j])
		if c == 0 {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
	total := len(matched)
	start := min(f.Offset(), total)
	end := min(start+f.Limit(), total)
	return matched[start:end], total, nil
}

func (s *MovieStore) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[movie.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	m := *movie
	s.movies[m.ID] = m
	return &m, nil
}

func (s *MovieStore) Delete(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(s.movies, id)
	return &m, nil
}

func (s *MovieStore) IncrementStock(ctx context.Context, id uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incrementStockLocked(id, delta)
}

// incrementStockLocked expects s.mu to be held for writing.
func (s *MovieStore) incrementStockLocked(id uuid.UUID, delta int) error {
	m, ok := s.movies[id]
	if !ok {
		return storage.ErrNotFound
	}
	if m.NumberInStock+delta < 0 {
		return storage.ErrConflict
	}
	m.NumberInStock = min(m.NumberInStock+delta, models.MaxStock)
	s.movies[id] = m
	return nil
}
