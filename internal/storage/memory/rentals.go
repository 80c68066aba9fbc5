package memory

import (
	"context"
	"sort"
	"time"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type RentalStore struct {
	*state
}

func (s *RentalStore) List(ctx context.Context) ([]models.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rentals := make([]models.Rental, 0, len(s.rentals))
	for _, r := range s.rentals {
		rentals = append(rentals, r)
	}
	sort.Slice(rentals, func(i, j int) bool { return rentals[i].DateOut.After(rentals[j].DateOut) })
	return rentals, nil
}

func (s *RentalStore) Get(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rentals[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &r, nil
}

func (s *RentalStore) FindFor(ctx context.Context, customerID, movieID uuid.UUID) (*models.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.Rental
	for _, r := range s.rentals {
		if r.Customer.ID != customerID || r.Movie.ID != movieID {
			continue
		}
		if found == nil || betterMatch(&r, found) {
			r := r
			found = &r
		}
	}
	if found == nil {
		return nil, storage.ErrNotFound
	}
	return found, nil
}

// betterMatch prefers open rentals, then the most recent one.
func betterMatch(candidate, current *models.Rental) bool {
	if candidate.IsReturned() != current.IsReturned() {
		return !candidate.IsReturned()
	}
	return candidate.DateOut.After(current.DateOut)
}

func (s *RentalStore) Insert(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	movies := MovieStore{s.state}
	if err := movies.incrementStockLocked(rental.Movie.ID, -1); err != nil {
		return nil, err
	}
	r := *rental
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.rentals[r.ID] = r
	return &r, nil
}

func (s *RentalStore) Return(ctx context.Context, rentalID, movieID uuid.UUID, fee float64, returnedAt time.Time) (*models.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rentals[rentalID]
	if !ok || r.IsReturned() {
		return nil, storage.ErrConflict
	}
	movies := MovieStore{s.state}
	if err := movies.incrementStockLocked(movieID, 1); err != nil {
		return nil, err
	}
	r.DateReturned = &returnedAt
	r.RentalFee = &fee
	s.rentals[rentalID] = r
	return &r, nil
}
