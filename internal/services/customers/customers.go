package customers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type CustomersStorage interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Insert(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

type CustomerService struct {
	log     *slog.Logger
	storage CustomersStorage
}

func New(log *slog.Logger, storage CustomersStorage) *CustomerService {
	return &CustomerService{
		log:     log,
		storage: storage,
	}
}

type CustomerParams struct {
	Name   string
	Phone  string
	IsGold bool
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	const op = "customers.CustomerService.List"
	customers, err := s.storage.List(ctx)
	if err != nil {
		s.log.Error(err.Error(), "op", op)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	const op = "customers.CustomerService.Get"
	log := s.log.With("op", op, "id", id)
	customerID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed customer id")
		return nil, ErrCustomerNotFound
	}
	customer, err := s.storage.Get(ctx, customerID)
	return s.handleResult(log, op, customer, err)
}

func (s *CustomerService) Create(ctx context.Context, params CustomerParams) (*models.Customer, error) {
	const op = "customers.CustomerService.Create"
	log := s.log.With("op", op, "name", params.Name)
	customer, err := s.storage.Insert(ctx, &models.Customer{
		Name:   params.Name,
		Phone:  params.Phone,
		IsGold: params.IsGold,
	})
	if err != nil {
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, params CustomerParams) (*models.Customer, error) {
	const op = "customers.CustomerService.Update"
	log := s.log.With("op", op, "id", id)
	customerID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed customer id")
		return nil, ErrCustomerNotFound
	}
	customer, err := s.storage.Update(ctx, &models.Customer{
		ID:     customerID,
		Name:   params.Name,
		Phone:  params.Phone,
		IsGold: params.IsGold,
	})
	return s.handleResult(log, op, customer, err)
}

func (s *CustomerService) Delete(ctx context.Context, id string) (*models.Customer, error) {
	const op = "customers.CustomerService.Delete"
	log := s.log.With("op", op, "id", id)
	customerID, err := uuid.Parse(id)
	if err != nil {
		log.Info("malformed customer id")
		return nil, ErrCustomerNotFound
	}
	customer, err := s.storage.Delete(ctx, customerID)
	return s.handleResult(log, op, customer, err)
}

func (s *CustomerService) handleResult(log *slog.Logger, op string, customer *models.Customer, err error) (*models.Customer, error) {
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("customer not found")
			return nil, ErrCustomerNotFound
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return customer, nil
}
