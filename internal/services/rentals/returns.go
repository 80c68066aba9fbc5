package rentals

import (
	"context"
	"errors"
	"fmt"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

// Return closes the customer's rental of the movie: it bills whole elapsed
// days at the movie's daily rate and puts the copy back in stock.
//
// The closing write only applies to a rental that is still open, so when
// two returns of the same rental race exactly one of them succeeds and the
// other gets ErrAlreadyProcessed.
func (s *RentalService) Return(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
	const op = "rentals.RentalService.Return"
	log := s.log.With("op", op, "customer_id", customerID, "movie_id", movieID)
	if customerID == "" || movieID == "" {
		return nil, ErrInvalidRequest
	}
	cid, err := uuid.Parse(customerID)
	if err != nil {
		log.Info("malformed customer id")
		return nil, ErrRentalNotFound
	}
	mid, err := uuid.Parse(movieID)
	if err != nil {
		log.Info("malformed movie id")
		return nil, ErrRentalNotFound
	}

	rental, err := s.storage.FindFor(ctx, cid, mid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("rental not found")
			return nil, ErrRentalNotFound
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rental.IsReturned() {
		log.Info("return already processed", "rental_id", rental.ID)
		return nil, ErrAlreadyProcessed
	}

	returnedAt := s.now()
	fee := rental.Fee(returnedAt)
	returned, err := s.storage.Return(ctx, rental.ID, rental.Movie.ID, fee, returnedAt)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("rental returned concurrently", "rental_id", rental.ID)
			return nil, ErrAlreadyProcessed
		case errors.Is(err, storage.ErrNotFound):
			log.Warn("rented movie no longer exists", "rental_id", rental.ID)
			return nil, ErrInvalidMovie
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("rental returned", "rental_id", returned.ID, "fee", fee, "days", rental.DaysOut(returnedAt))
	return returned, nil
}
