package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(app.Http.MethodNotAllowed)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", app.listGenres)
			r.Get("/{id}", app.getGenre)
			r.With(app.requireAuthenticatedUser).Post("/", app.createGenre)
			r.With(app.requireAdmin).Put("/{id}", app.updateGenre)
			r.With(app.requireAdmin).Delete("/{id}", app.deleteGenre)
		})
		r.Route("/customers", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/", app.listCustomers)
			r.Get("/{id}", app.getCustomer)
			r.Post("/", app.createCustomer)
			r.Put("/{id}", app.updateCustomer)
			r.With(app.requireAdmin).Delete("/{id}", app.deleteCustomer)
		})
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.listMovies)
			r.Get("/{id}", app.getMovie)
			r.With(app.requireAuthenticatedUser).Post("/", app.createMovie)
			r.With(app.requireAuthenticatedUser).Put("/{id}", app.updateMovie)
			r.With(app.requireAdmin).Delete("/{id}", app.deleteMovie)
		})
		r.Route("/rentals", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/", app.listRentals)
			r.Get("/{id}", app.getRental)
			r.Post("/", app.createRental)
		})
		r.With(app.requireAuthenticatedUser).Post("/returns", app.returnRental)
		r.Route("/users", func(r chi.Router) {
			r.Post("/", app.signup)
			r.With(app.requireAuthenticatedUser).Get("/me", app.me)
		})
		r.Post("/auth", app.login)
	})
	return router
}
