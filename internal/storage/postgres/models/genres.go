package models

import (
	"context"
	"errors"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GenreModel struct {
	DB *pgxpool.Pool
}

func (m *GenreModel) List(ctx context.Context) ([]models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres ORDER BY name ASC, id ASC")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
}

func (m *GenreModel) Get(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres WHERE id = $1", id)
	return collectGenre(rows)
}

func (m *GenreModel) Insert(ctx context.Context, name string) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "INSERT INTO genres (name) VALUES ($1) RETURNING id, name", name)
	return collectGenre(rows)
}

func (m *GenreModel) Update(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "UPDATE genres SET name = $1 WHERE id = $2 RETURNING id, name", genre.Name, genre.ID)
	return collectGenre(rows)
}

func (m *GenreModel) Delete(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "DELETE FROM genres WHERE id = $1 RETURNING id, name", id)
	return collectGenre(rows)
}

func collectGenre(rows pgx.Rows) (*models.Genre, error) {
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &genre, nil
}
