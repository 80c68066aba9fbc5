package main

import (
	"errors"
	"net/http"
	"vidly/proj/internal/services/rentals"
)

func (app *Application) returnRental(w http.ResponseWriter, r *http.Request) {
	var req rentalRequest
	if !app.readBody(w, r, &req) {
		return
	}
	rental, err := app.Services.Rentals.Return(r.Context(), req.CustomerID, req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, rentals.ErrInvalidRequest):
			app.Http.BadRequest(w, r, "customerId and movieId are required.")
		case errors.Is(err, rentals.ErrRentalNotFound):
			app.Http.NotFound(w, r, "Rental not found.")
		case errors.Is(err, rentals.ErrAlreadyProcessed):
			app.Http.BadRequest(w, r, "Return already processed.")
		case errors.Is(err, rentals.ErrInvalidMovie):
			app.Http.NotFound(w, r, "Invalid movie.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"rental": rental}, "Rental returned.")
}
