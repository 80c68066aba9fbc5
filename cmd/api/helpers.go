package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"vidly/proj/internal/lib/validator"

	"github.com/go-chi/chi/v5"
	govalidator "github.com/go-playground/validator/v10"
)

func (app *Application) idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}

// readBody decodes and validates the request body, writing the error
// response itself when it reports false.
func (app *Application) readBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := app.readJSON(w, r, dst); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	return app.validate(w, r, dst)
}

// readQuery fills dst from the query string and validates it. Problems
// with the query are answered with 422.
func (app *Application) readQuery(w http.ResponseWriter, r *http.Request, dst any) bool {
	fieldErrs, err := app.decoder.Decode(dst, r.URL.Query())
	if err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	if len(fieldErrs) == 0 {
		fieldErrs = validator.ValidateStruct(app.validator, dst)
	}
	if len(fieldErrs) > 0 {
		app.Http.UnprocessableEntity(w, r, fieldErrs)
		return false
	}
	return true
}

// validate reports constraint violations as 400 with a field -> message map.
func (app *Application) validate(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := app.validator.Struct(dst)
	if err == nil {
		return true
	}
	var validationErrs govalidator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.Http.ServerError(w, r, err, "")
		return false
	}
	app.Http.ValidationFailed(w, r, validator.ProcessValidationErrors(dst, validationErrs))
	return false
}
