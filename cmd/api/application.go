package main

import (
	"log/slog"
	"sync"
	"vidly/proj/internal/api/tasks"
	"vidly/proj/internal/config"
	"vidly/proj/internal/lib/decoder"
	"vidly/proj/internal/lib/validator"
	"vidly/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	Services  *services.Services
	validator *govalidator.Validate
	decoder   *decoder.URLDecoder
	tasks     *tasks.BackgroundTasks
	done      chan struct{}
	closeOnce sync.Once
}

func NewApplication(cfg *config.Config, log *slog.Logger, storages services.Storages) *Application {
	bgTasks := tasks.New(log, cfg.Workers.Count, cfg.Workers.QueueSize)
	app := &Application{
		cfg:       cfg,
		log:       log,
		validator: validator.New(),
		decoder:   decoder.New(),
		Services:  services.New(log, cfg, storages, bgTasks),
		tasks:     bgTasks,
		done:      make(chan struct{}),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
	return app
}

// Close stops the goroutines started by the middlewares.
func (app *Application) Close() {
	app.closeOnce.Do(func() { close(app.done) })
}
