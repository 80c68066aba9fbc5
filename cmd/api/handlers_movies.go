package main

import (
	"errors"
	"net/http"
	"vidly/proj/internal/domain/filters"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/services/movies"
)

type movieRequest struct {
	Title           string  `json:"title" validate:"required,min=5,max=255"`
	GenreID         string  `json:"genreId" validate:"required"`
	NumberInStock   int     `json:"numberInStock" validate:"gte=0,lte=255"`
	DailyRentalRate float64 `json:"dailyRentalRate" validate:"gte=0,lte=255"`
}

func (req *movieRequest) params() movies.MovieParams {
	return movies.MovieParams{
		Title:           req.Title,
		GenreID:         req.GenreID,
		NumberInStock:   req.NumberInStock,
		DailyRentalRate: req.DailyRentalRate,
	}
}

type movieListQuery struct {
	Title string `schema:"title" json:"title" validate:"omitempty,max=255"`
	Genre string `schema:"genre" json:"genre" validate:"omitempty,max=50"`
	filters.Filters
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	query := movieListQuery{Filters: filters.Filters{SortSafelist: movies.SortSafelist}}
	if !app.readQuery(w, r, &query) {
		return
	}
	list, metadata, err := app.Services.Movies.List(r.Context(), query.Title, query.Genre, query.Filters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": list, "metadata": metadata}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := app.Services.Movies.Get(r.Context(), app.idParam(r))
	app.respondMovie(w, r, movie, err, http.StatusOK)
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if !app.readBody(w, r, &req) {
		return
	}
	movie, err := app.Services.Movies.Create(r.Context(), req.params())
	app.respondMovie(w, r, movie, err, http.StatusCreated)
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if !app.readBody(w, r, &req) {
		return
	}
	movie, err := app.Services.Movies.Update(r.Context(), app.idParam(r), req.params())
	app.respondMovie(w, r, movie, err, http.StatusOK)
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := app.Services.Movies.Delete(r.Context(), app.idParam(r))
	app.respondMovie(w, r, movie, err, http.StatusOK)
}

func (app *Application) respondMovie(w http.ResponseWriter, r *http.Request, movie *models.Movie, err error, status int) {
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			app.Http.NotFound(w, r, "The movie with the given ID was not found.")
		case errors.Is(err, movies.ErrInvalidGenre):
			app.Http.BadRequest(w, r, "Invalid genre.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Response(w, r, envelop{"movie": movie}, "", status)
}
