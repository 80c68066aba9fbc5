package main

import "net/http"

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{
		"status":  "available",
		"debug":   app.cfg.Debug,
		"version": version,
	}, "")
}
