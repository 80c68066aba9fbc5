package main

import (
	"errors"
	"net/http"
	"vidly/proj/internal/services/auth"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !app.readBody(w, r, &req) {
		return
	}
	user, token, err := app.Services.Auth.Signup(r.Context(), auth.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			app.Http.BadRequest(w, r, "User already registered.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	w.Header().Set(authTokenHeader, token)
	app.Http.Created(w, r, envelop{"user": user}, "")
}

func (app *Application) me(w http.ResponseWriter, r *http.Request) {
	user, err := app.Services.Auth.GetUser(r.Context(), contextGetClaims(r).UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !app.readBody(w, r, &req) {
		return
	}
	token, err := app.Services.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.BadRequest(w, r, "Invalid email or password.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"token": token}, "")
}
