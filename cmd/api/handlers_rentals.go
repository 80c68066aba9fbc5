package main

import (
	"errors"
	"net/http"
	"vidly/proj/internal/services/rentals"
)

type rentalRequest struct {
	CustomerID string `json:"customerId"`
	MovieID    string `json:"movieId"`
}

func (app *Application) listRentals(w http.ResponseWriter, r *http.Request) {
	list, err := app.Services.Rentals.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"rentals": list}, "")
}

func (app *Application) getRental(w http.ResponseWriter, r *http.Request) {
	rental, err := app.Services.Rentals.Get(r.Context(), app.idParam(r))
	if err != nil {
		if errors.Is(err, rentals.ErrRentalNotFound) {
			app.Http.NotFound(w, r, "The rental with the given ID was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"rental": rental}, "")
}

func (app *Application) createRental(w http.ResponseWriter, r *http.Request) {
	var req rentalRequest
	if !app.readBody(w, r, &req) {
		return
	}
	rental, err := app.Services.Rentals.Create(r.Context(), req.CustomerID, req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, rentals.ErrInvalidRequest):
			app.Http.BadRequest(w, r, "customerId and movieId are required.")
		case errors.Is(err, rentals.ErrInvalidCustomer):
			app.Http.BadRequest(w, r, "Invalid customer.")
		case errors.Is(err, rentals.ErrInvalidMovie):
			app.Http.BadRequest(w, r, "Invalid movie.")
		case errors.Is(err, rentals.ErrMovieNotInStock):
			app.Http.BadRequest(w, r, "Movie not in stock.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"rental": rental}, "Rental created.")
}
