package rentals

import "errors"

var (
	ErrInvalidRequest   = errors.New("customerId and movieId are required")
	ErrRentalNotFound   = errors.New("rental not found")
	ErrAlreadyProcessed = errors.New("return already processed")
	ErrInvalidCustomer  = errors.New("invalid customer")
	ErrInvalidMovie     = errors.New("invalid movie")
	ErrMovieNotInStock  = errors.New("movie not in stock")
)
