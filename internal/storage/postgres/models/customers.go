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

type CustomerModel struct {
	DB *pgxpool.Pool
}

const customerColumns = "id, name, phone, is_gold"

func (m *CustomerModel) List(ctx context.Context) ([]models.Customer, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+customerColumns+" FROM customers ORDER BY name ASC, id ASC")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Customer])
}

func (m *CustomerModel) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	rows, _ := m.DB.Query(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id)
	return collectCustomer(rows)
}

func (m *CustomerModel) Insert(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO customers (name, phone, is_gold) VALUES ($1, $2, $3) RETURNING "+customerColumns,
		customer.Name,
		customer.Phone,
		customer.IsGold,
	)
	return collectCustomer(rows)
}

func (m *CustomerModel) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	rows, _ := m.DB.Query(
		ctx,
		"UPDATE customers SET name = $1, phone = $2, is_gold = $3 WHERE id = $4 RETURNING "+customerColumns,
		customer.Name,
		customer.Phone,
		customer.IsGold,
		customer.ID,
	)
	return collectCustomer(rows)
}

func (m *CustomerModel) Delete(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	rows, _ := m.DB.Query(ctx, "DELETE FROM customers WHERE id = $1 RETURNING "+customerColumns, id)
	return collectCustomer(rows)
}

func collectCustomer(rows pgx.Rows) (*models.Customer, error) {
	customer, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}
