package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"vidly/proj/internal/domain/filters"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMovie(t *testing.T, s *Storage, title string, stock int, rate float64) *models.Movie {
	t.Helper()
	movie, err := s.Movies.Insert(context.Background(), &models.Movie{
		Title:           title,
		Genre:           models.GenreSnapshot{ID: uuid.New(), Name: "Drama"},
		NumberInStock:   stock,
		DailyRentalRate: rate,
	})
	require.NoError(t, err)
	return movie
}

func seedRental(t *testing.T, s *Storage, movie *models.Movie, dateOut time.Time) *models.Rental {
	t.Helper()
	rental, err := s.Rentals.Insert(context.Background(), &models.Rental{
		Customer: models.CustomerSnapshot{ID: uuid.New(), Name: "12345", Phone: "12345"},
		Movie:    movie.Snapshot(),
		DateOut:  dateOut,
	})
	require.NoError(t, err)
	return rental
}

func TestRentalInsertTakesStock(t *testing.T) {
	ctx := context.Background()
	s := New()
	movie := seedMovie(t, s, "12345", 1, 2)
	seedRental(t, s, movie, time.Now())

	got, err := s.Movies.Get(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.NumberInStock)

	_, err = s.Rentals.Insert(ctx, &models.Rental{Movie: movie.Snapshot()})
	assert.ErrorIs(t, err, storage.ErrConflict)
	rentals, err := s.Rentals.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rentals, 1)
}

func TestRentalReturnIsConditional(t *testing.T) {
	ctx := context.Background()
	s := New()
	movie := seedMovie(t, s, "12345", 10, 2)
	rental := seedRental(t, s, movie, time.Now().Add(-time.Hour))

	now := time.Now()
	returned, err := s.Rentals.Return(ctx, rental.ID, movie.ID, 4, now)
	require.NoError(t, err)
	assert.Equal(t, now, *returned.DateReturned)
	assert.Equal(t, float64(4), *returned.RentalFee)

	_, err = s.Rentals.Return(ctx, rental.ID, movie.ID, 8, now.Add(time.Hour))
	assert.ErrorIs(t, err, storage.ErrConflict)

	stored, err := s.Rentals.Get(ctx, rental.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(4), *stored.RentalFee)
	got, err := s.Movies.Get(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.NumberInStock)
}

func TestRentalReturnConcurrent(t *testing.T) {
	ctx := context.Background()
	s := New()
	movie := seedMovie(t, s, "12345", 5, 2)
	rental := seedRental(t, s, movie, time.Now())

	var wg sync.WaitGroup
	var succeeded, conflicted atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Rentals.Return(ctx, rental.ID, movie.ID, 0, time.Now())
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, storage.ErrConflict):
				conflicted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(19), conflicted.Load())
	got, err := s.Movies.Get(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.NumberInStock)
}

func TestFindForPrefersOpenRental(t *testing.T) {
	ctx := context.Background()
	s := New()
	movie := seedMovie(t, s, "12345", 5, 2)
	customer := models.CustomerSnapshot{ID: uuid.New(), Name: "12345", Phone: "12345"}
	old, err := s.Rentals.Insert(ctx, &models.Rental{Customer: customer, Movie: movie.Snapshot(), DateOut: time.Now().Add(-48 * time.Hour)})
	require.NoError(t, err)
	_, err = s.Rentals.Return(ctx, old.ID, movie.ID, 4, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	open, err := s.Rentals.Insert(ctx, &models.Rental{Customer: customer, Movie: movie.Snapshot(), DateOut: time.Now().Add(-72 * time.Hour)})
	require.NoError(t, err)

	found, err := s.Rentals.FindFor(ctx, customer.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, open.ID, found.ID)

	_, err = s.Rentals.FindFor(ctx, uuid.New(), movie.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIncrementStock(t *testing.T) {
	ctx := context.Background()
	s := New()
	movie := seedMovie(t, s, "12345", 0, 2)
	assert.ErrorIs(t, s.Movies.IncrementStock(ctx, movie.ID, -1), storage.ErrConflict)
	require.NoError(t, s.Movies.IncrementStock(ctx, movie.ID, 1))
	assert.ErrorIs(t, s.Movies.IncrementStock(ctx, uuid.New(), 1), storage.ErrNotFound)
	got, err := s.Movies.Get(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumberInStock)
}

func TestIncrementStockIsCapped(t *testing.T) {
	ctx := context.Background()
	s := New()
	movie := seedMovie(t, s, "12345", models.MaxStock, 2)
	require.NoError(t, s.Movies.IncrementStock(ctx, movie.ID, 1))
	got, err := s.Movies.Get(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaxStock, got.NumberInStock)
}

func TestMovieList(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedMovie(t, s, "Alien", 3, 2)
	seedMovie(t, s, "Aliens", 1, 3)
	seedMovie(t, s, "Heat", 2, 1)
	safelist := []string{"title", "number_in_stock", "daily_rental_rate"}

	movies, total, err := s.Movies.List(ctx, "alien", "", filters.Filters{Sort: "-number_in_stock", SortSafelist: safelist})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, movies, 2)
	assert.Equal(t, "Alien", movies[0].Title)

	movies, total, err = s.Movies.List(ctx, "", "drama", filters.Filters{Sort: "title", Page: 2, PageSize: 2, SortSafelist: safelist})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, movies, 1)
	assert.Equal(t, "Heat", movies[0].Title)
}

func TestUserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Users.Insert(ctx, &models.User{Name: "12345", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = s.Users.Insert(ctx, &models.User{Name: "12345", Email: "A@B.com"})
	assert.ErrorIs(t, err, storage.ErrConflict)
	u, err := s.Users.GetByEmail(ctx, "a@B.COM")
	require.NoError(t, err)
	assert.Equal(t, "12345", u.Name)
}
