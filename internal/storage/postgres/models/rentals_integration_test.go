//go:build integration

package models

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"
	"vidly/proj/internal/storage/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestModels applies the migrations to a throwaway schema of the
// database in DATABASE_DSN.
func newTestModels(t *testing.T) *Models {
	t.Helper()
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		t.Skip("DATABASE_DSN is not set")
	}
	ctx := context.Background()
	schema := "vidly_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(admin.Close)
	_, err = admin.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema))
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA %s CASCADE", schema))
	})

	poolCfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	poolCfg.ConnConfig.RuntimeParams["search_path"] = schema + ",public"
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migration, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "000001_init.up.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(migration))
	require.NoError(t, err)
	return New(&postgres.PostgresDB{Conn: pool})
}

type rentalFixture struct {
	m        *Models
	customer *models.Customer
	movie    *models.Movie
}

func newRentalFixture(t *testing.T, stock int) *rentalFixture {
	t.Helper()
	ctx := context.Background()
	f := &rentalFixture{m: newTestModels(t)}
	var err error
	f.customer, err = f.m.Customers.Insert(ctx, &models.Customer{Name: "12345", Phone: "12345"})
	require.NoError(t, err)
	f.movie, err = f.m.Movies.Insert(ctx, &models.Movie{
		Title:           "12345",
		Genre:           models.GenreSnapshot{ID: uuid.New(), Name: "Drama"},
		NumberInStock:   stock,
		DailyRentalRate: 2,
	})
	require.NoError(t, err)
	return f
}

func (f *rentalFixture) checkout(t *testing.T) *models.Rental {
	t.Helper()
	rental, err := f.m.Rentals.Insert(context.Background(), &models.Rental{
		Customer: f.customer.Snapshot(),
		Movie:    f.movie.Snapshot(),
		DateOut:  time.Now().UTC().Truncate(time.Microsecond),
	})
	require.NoError(t, err)
	return rental
}

func (f *rentalFixture) stock(t *testing.T) int {
	t.Helper()
	movie, err := f.m.Movies.Get(context.Background(), f.movie.ID)
	require.NoError(t, err)
	return movie.NumberInStock
}

func TestRentalInsertTakesStock(t *testing.T) {
	f := newRentalFixture(t, 1)
	rental := f.checkout(t)
	assert.False(t, rental.IsReturned())
	assert.Equal(t, 0, f.stock(t))

	_, err := f.m.Rentals.Insert(context.Background(), &models.Rental{
		Customer: f.customer.Snapshot(),
		Movie:    f.movie.Snapshot(),
		DateOut:  time.Now(),
	})
	assert.ErrorIs(t, err, storage.ErrConflict)
	rentals, err := f.m.Rentals.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rentals, 1)
}

func TestRentalReturnOnlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newRentalFixture(t, 3)
	rental := f.checkout(t)
	returnedAt := time.Now().UTC().Truncate(time.Microsecond)

	returned, err := f.m.Rentals.Return(ctx, rental.ID, f.movie.ID, 4, returnedAt)
	require.NoError(t, err)
	require.NotNil(t, returned.DateReturned)
	assert.True(t, returnedAt.Equal(*returned.DateReturned))
	assert.Equal(t, float64(4), *returned.RentalFee)
	assert.Equal(t, 3, f.stock(t))

	_, err = f.m.Rentals.Return(ctx, rental.ID, f.movie.ID, 10, returnedAt.Add(time.Hour))
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.Equal(t, 3, f.stock(t))
	stored, err := f.m.Rentals.Get(ctx, rental.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(4), *stored.RentalFee)
}

func TestRentalReturnConcurrent(t *testing.T) {
	f := newRentalFixture(t, 3)
	rental := f.checkout(t)

	const attempts = 10
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.m.Rentals.Return(context.Background(), rental.ID, f.movie.ID, 0, time.Now())
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 3, f.stock(t))
}

func TestRentalReturnRollsBackWhenMovieIsGone(t *testing.T) {
	ctx := context.Background()
	f := newRentalFixture(t, 3)
	rental := f.checkout(t)
	_, err := f.m.Movies.Delete(ctx, f.movie.ID)
	require.NoError(t, err)

	_, err = f.m.Rentals.Return(ctx, rental.ID, f.movie.ID, 2, time.Now())
	assert.ErrorIs(t, err, storage.ErrNotFound)
	stored, err := f.m.Rentals.Get(ctx, rental.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsReturned())
	assert.Nil(t, stored.RentalFee)
}

func TestRentalReturnAtStockCap(t *testing.T) {
	ctx := context.Background()
	f := newRentalFixture(t, 3)
	rental := f.checkout(t)
	movie := *f.movie
	movie.NumberInStock = models.MaxStock
	_, err := f.m.Movies.Update(ctx, &movie)
	require.NoError(t, err)

	_, err = f.m.Rentals.Return(ctx, rental.ID, f.movie.ID, 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.MaxStock, f.stock(t))
}
