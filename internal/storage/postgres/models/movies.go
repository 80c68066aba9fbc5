package models

import (
	"context"
	"errors"
	"fmt"
	"vidly/proj/internal/domain/filters"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"
	"vidly/proj/internal/storage/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieModel struct {
	DB *pgxpool.Pool
}

const movieColumns = "id, title, genre_id, genre_name, number_in_stock, daily_rental_rate"

type movieRow struct {
	ID              uuid.UUID `db:"id"`
	Title           string    `db:"title"`
	GenreID         uuid.UUID `db:"genre_id"`
	GenreName       string    `db:"genre_name"`
	NumberInStock   int       `db:"number_in_stock"`
	DailyRentalRate float64   `db:"daily_rental_rate"`
}

func (r movieRow) toModel() models.Movie {
	return models.Movie{
		ID:              r.ID,
		Title:           r.Title,
		Genre:           models.GenreSnapshot{ID: r.GenreID, Name: r.GenreName},
		NumberInStock:   r.NumberInStock,
		DailyRentalRate: r.DailyRentalRate,
	}
}

func (m *MovieModel) Get(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = $1", id)
	return collectMovie(rows)
}

func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO movies (title, genre_id, genre_name, number_in_stock, daily_rental_rate)
		VALUES ($1, $2, $3, $4, $5) RETURNING `+movieColumns,
		movie.Title,
		movie.Genre.ID,
		movie.Genre.Name,
		movie.NumberInStock,
		movie.DailyRentalRate,
	)
	return collectMovie(rows)
}

func (m *MovieModel) List(ctx context.Context, title string, genre string, filters filters.Filters) ([]models.Movie, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER() AS count, %s FROM movies
	WHERE (title ILIKE '%%' || $1 || '%%' OR $1 = '')
	AND (lower(genre_name) = lower($2) OR $2 = '')
	ORDER BY %s %s, id ASC
	LIMIT $3 OFFSET $4
	`, movieColumns, filters.SortColumn(), filters.SortDirection())
	rows, _ := m.DB.Query(ctx, query, title, genre, filters.Limit(), filters.Offset())
	type row struct {
		Count int `db:"count"`
		movieRow
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.Movie{}, 0, nil
	}
	movies := make([]models.Movie, 0, len(outputRows))
	for _, row := range outputRows {
		movies = append(movies, row.toModel())
	}
	return movies, outputRows[0].Count, nil
}

func (m *MovieModel) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE movies SET title = $1, genre_id = $2, genre_name = $3, number_in_stock = $4, daily_rental_rate = $5
		WHERE id = $6 RETURNING `+movieColumns,
		movie.Title,
		movie.Genre.ID,
		movie.Genre.Name,
		movie.NumberInStock,
		movie.DailyRentalRate,
		movie.ID,
	)
	return collectMovie(rows)
}

func (m *MovieModel) Delete(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	rows, _ := m.DB.Query(ctx, "DELETE FROM movies WHERE id = $1 RETURNING "+movieColumns, id)
	return collectMovie(rows)
}

// IncrementStock adds delta to the movie's stock, capped at models.MaxStock.
// A decrement that would make the stock negative matches no row and yields
// storage.ErrConflict.
func (m *MovieModel) IncrementStock(ctx context.Context, q postgres.Querier, id uuid.UUID, delta int) error {
	if q == nil {
		q = m.DB
	}
	status, err := q.Exec(
		ctx,
		`UPDATE movies SET number_in_stock = LEAST(number_in_stock + $1, $3)
		WHERE id = $2 AND number_in_stock + $1 >= 0`,
		delta,
		id,
		models.MaxStock,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		if _, err := m.Get(ctx, id); err != nil {
			return err
		}
		return storage.ErrConflict
	}
	return nil
}

func collectMovie(rows pgx.Rows) (*models.Movie, error) {
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[movieRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	movie := row.toModel()
	return &movie, nil
}
