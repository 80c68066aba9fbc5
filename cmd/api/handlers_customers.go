package main

import (
	"errors"
	"net/http"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/services/customers"
)

type customerRequest struct {
	Name   string `json:"name" validate:"required,min=3,max=50"`
	Phone  string `json:"phone" validate:"required,min=3,max=50"`
	IsGold bool   `json:"isGold"`
}

func (req *customerRequest) params() customers.CustomerParams {
	return customers.CustomerParams{Name: req.Name, Phone: req.Phone, IsGold: req.IsGold}
}

func (app *Application) listCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := app.Services.Customers.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"customers": list}, "")
}

func (app *Application) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := app.Services.Customers.Get(r.Context(), app.idParam(r))
	app.respondCustomer(w, r, customer, err, http.StatusOK)
}

func (app *Application) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !app.readBody(w, r, &req) {
		return
	}
	customer, err := app.Services.Customers.Create(r.Context(), req.params())
	app.respondCustomer(w, r, customer, err, http.StatusCreated)
}

func (app *Application) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !app.readBody(w, r, &req) {
		return
	}
	customer, err := app.Services.Customers.Update(r.Context(), app.idParam(r), req.params())
	app.respondCustomer(w, r, customer, err, http.StatusOK)
}

func (app *Application) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := app.Services.Customers.Delete(r.Context(), app.idParam(r))
	app.respondCustomer(w, r, customer, err, http.StatusOK)
}

func (app *Application) respondCustomer(w http.ResponseWriter, r *http.Request, customer *models.Customer, err error, status int) {
	if err != nil {
		if errors.Is(err, customers.ErrCustomerNotFound) {
			app.Http.NotFound(w, r, "The customer with the given ID was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Response(w, r, envelop{"customer": customer}, "", status)
}
