package models

import (
	"context"
	"errors"
	"time"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RentalModel struct {
	DB     *pgxpool.Pool
	Movies *MovieModel
}

const rentalColumns = `id, customer_id, customer_name, customer_phone, customer_is_gold,
	movie_id, movie_title, movie_daily_rental_rate, date_out, date_returned, rental_fee`

type rentalRow struct {
	ID                   uuid.UUID  `db:"id"`
	CustomerID           uuid.UUID  `db:"customer_id"`
	CustomerName         string     `db:"customer_name"`
	CustomerPhone        string     `db:"customer_phone"`
	CustomerIsGold       bool       `db:"customer_is_gold"`
	MovieID              uuid.UUID  `db:"movie_id"`
	MovieTitle           string     `db:"movie_title"`
	MovieDailyRentalRate float64    `db:"movie_daily_rental_rate"`
	DateOut              time.Time  `db:"date_out"`
	DateReturned         *time.Time `db:"date_returned"`
	RentalFee            *float64   `db:"rental_fee"`
}

func (r rentalRow) toModel() models.Rental {
	return models.Rental{
		ID: r.ID,
		Customer: models.CustomerSnapshot{
			ID:     r.CustomerID,
			Name:   r.CustomerName,
			Phone:  r.CustomerPhone,
			IsGold: r.CustomerIsGold,
		},
		Movie: models.MovieSnapshot{
			ID:              r.MovieID,
			Title:           r.MovieTitle,
			DailyRentalRate: r.MovieDailyRentalRate,
		},
		DateOut:      r.DateOut,
		DateReturned: r.DateReturned,
		RentalFee:    r.RentalFee,
	}
}

func (m *RentalModel) List(ctx context.Context) ([]models.Rental, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+rentalColumns+" FROM rentals ORDER BY date_out DESC, id ASC")
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[rentalRow])
	if err != nil {
		return nil, err
	}
	rentals := make([]models.Rental, 0, len(collected))
	for _, row := range collected {
		rentals = append(rentals, row.toModel())
	}
	return rentals, nil
}

func (m *RentalModel) Get(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+rentalColumns+" FROM rentals WHERE id = $1", id)
	return collectRental(rows)
}

// FindFor returns the rental of the movie by the customer, preferring
// the open one over already returned ones.
func (m *RentalModel) FindFor(ctx context.Context, customerID, movieID uuid.UUID) (*models.Rental, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT `+rentalColumns+` FROM rentals
		WHERE customer_id = $1 AND movie_id = $2
		ORDER BY (date_returned IS NULL) DESC, date_out DESC
		LIMIT 1`,
		customerID,
		movieID,
	)
	return collectRental(rows)
}

// Insert stores the rental and takes one copy of the movie out of stock
// in the same transaction.
func (m *RentalModel) Insert(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	var created *models.Rental
	err := pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		if err := m.Movies.IncrementStock(ctx, tx, rental.Movie.ID, -1); err != nil {
			return err
		}
		rows, _ := tx.Query(
			ctx,
			`INSERT INTO rentals (customer_id, customer_name, customer_phone, customer_is_gold,
				movie_id, movie_title, movie_daily_rental_rate, date_out)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING `+rentalColumns,
			rental.Customer.ID,
			rental.Customer.Name,
			rental.Customer.Phone,
			rental.Customer.IsGold,
			rental.Movie.ID,
			rental.Movie.Title,
			rental.Movie.DailyRentalRate,
			rental.DateOut,
		)
		var err error
		created, err = collectRental(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Return closes the rental and puts the copy back in stock atomically.
// The rental is only updated while it is still open, so a concurrent
// second return gets storage.ErrConflict and changes nothing.
func (m *RentalModel) Return(ctx context.Context, rentalID, movieID uuid.UUID, fee float64, returnedAt time.Time) (*models.Rental, error) {
	var returned *models.Rental
	err := pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		rows, _ := tx.Query(
			ctx,
			`UPDATE rentals SET date_returned = $1, rental_fee = $2
			WHERE id = $3 AND date_returned IS NULL
			RETURNING `+rentalColumns,
			returnedAt,
			fee,
			rentalID,
		)
		var err error
		returned, err = collectRental(rows)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return storage.ErrConflict
			}
			return err
		}
		return m.Movies.IncrementStock(ctx, tx, movieID, 1)
	})
	if err != nil {
		return nil, err
	}
	return returned, nil
}

func collectRental(rows pgx.Rows) (*models.Rental, error) {
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[rentalRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	rental := row.toModel()
	return &rental, nil
}
