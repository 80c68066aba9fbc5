// Package memory is an in-process storage backend with the same contracts
// as the PostgreSQL one. A single mutex guards every table, which makes
// multi-table operations such as a rental return atomic.
package memory

import (
	"sync"
	"vidly/proj/internal/domain/models"

	"github.com/google/uuid"
)

type state struct {
	mu        sync.RWMutex
	genres    map[uuid.UUID]models.Genre
	customers map[uuid.UUID]models.Customer
	movies    map[uuid.UUID]models.Movie
	rentals   map[uuid.UUID]models.Rental
	users     map[uuid.UUID]models.User
}

type Storage struct {
	Genres    *GenreStore
	Customers *CustomerStore
	Movies    *MovieStore
	Rentals   *RentalStore
	Users     *UserStore
}

func New() *Storage {
	s := &state{
		genres:    make(map[uuid.UUID]models.Genre),
		customers: make(map[uuid.UUID]models.Customer),
		movies:    make(map[uuid.UUID]models.Movie),
		rentals:   make(map[uuid.UUID]models.Rental),
		users:     make(map[uuid.UUID]models.User),
	}
	return &Storage{
		Genres:    &GenreStore{s},
		Customers: &CustomerStore{s},
		Movies:    &MovieStore{s},
		Rentals:   &RentalStore{s},
		Users:     &UserStore{s},
	}
}
