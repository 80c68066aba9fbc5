package main

import (
	"errors"
	"net/http"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/services/genres"
)

type genreRequest struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

func (app *Application) listGenres(w http.ResponseWriter, r *http.Request) {
	list, err := app.Services.Genres.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": list}, "")
}

func (app *Application) getGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := app.Services.Genres.Get(r.Context(), app.idParam(r))
	app.respondGenre(w, r, genre, err, http.StatusOK)
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	var req genreRequest
	if !app.readBody(w, r, &req) {
		return
	}
	genre, err := app.Services.Genres.Create(r.Context(), req.Name)
	app.respondGenre(w, r, genre, err, http.StatusCreated)
}

func (app *Application) updateGenre(w http.ResponseWriter, r *http.Request) {
	var req genreRequest
	if !app.readBody(w, r, &req) {
		return
	}
	genre, err := app.Services.Genres.Update(r.Context(), app.idParam(r), req.Name)
	app.respondGenre(w, r, genre, err, http.StatusOK)
}

func (app *Application) deleteGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := app.Services.Genres.Delete(r.Context(), app.idParam(r))
	app.respondGenre(w, r, genre, err, http.StatusOK)
}

func (app *Application) respondGenre(w http.ResponseWriter, r *http.Request, genre *models.Genre, err error, status int) {
	if err != nil {
		if errors.Is(err, genres.ErrGenreNotFound) {
			app.Http.NotFound(w, r, "The genre with the given ID was not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Response(w, r, envelop{"genre": genre}, "", status)
}
