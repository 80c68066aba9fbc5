package models

import (
	"context"
	"errors"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"
	"vidly/proj/internal/storage/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserModel struct {
	DB *pgxpool.Pool
}

const userColumns = "id, name, email, password_hash, is_admin, created_at"

func (m *UserModel) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO users (name, email, password_hash, is_admin) VALUES ($1, $2, $3, $4) RETURNING "+userColumns,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
	)
	created, err := collectUser(rows)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (m *UserModel) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return collectUser(rows)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email)
	return collectUser(rows)
}

func collectUser(rows pgx.Rows) (*models.User, error) {
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
