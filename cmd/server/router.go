package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lexicard/lexicard-api/internal/api"
	apiMiddleware "github.com/lexicard/lexicard-api/internal/api/middleware"
)

// setupRouter creates the router with every API route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)

	defaultTimeout := app.config.Timeout.DefaultWordTimeoutMinutes

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier, app.logger)
	groupHandler := api.NewWordGroupHandler(app.wordGroupService, app.logger)
	wordHandler := api.NewWordHandler(app.wordService, defaultTimeout, app.logger)
	generationHandler := api.NewGenerationHandler(app.generationService, app.logger)
	importHandler := api.NewImportHandler(app.wordService, app.logger)
	deviceHandler := api.NewDeviceHandler(app.deviceService, app.logger)
	iotHandler := api.NewIoTHandler(app.wordGroupService, app.wordService, defaultTimeout, app.logger)

	jwtAuth := apiMiddleware.NewAuthMiddleware(app.jwtService)
	deviceAuth := apiMiddleware.NewAPIKeyMiddleware(app.apiKeys)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Authenticate)

			r.Route("/word-groups", func(r chi.Router) {
				r.Get("/", groupHandler.ListGroups)
				r.Post("/", groupHandler.CreateGroup)
				r.Post("/generate", generationHandler.GenerateGroup)
				r.Post("/set-current-word", groupHandler.SetCurrentWord)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", groupHandler.GetGroup)
					r.Put("/", groupHandler.UpdateGroup)
					r.Delete("/", groupHandler.DeleteGroup)
					r.Get("/words", wordHandler.ListWords)
					r.Post("/words", wordHandler.AddWord)
					r.Post("/words/generate", generationHandler.GenerateWords)
					r.Post("/import", importHandler.Import)
				})
			})

			r.Route("/words/{id}", func(r chi.Router) {
				r.Get("/", wordHandler.GetWord)
				r.Put("/", wordHandler.UpdateWord)
				r.Delete("/", wordHandler.DeleteWord)
				r.Post("/timeout", wordHandler.SetTimeout)
			})

			r.Get("/progress", groupHandler.Progress)

			r.Post("/devices/pair", deviceHandler.Pair)
			r.Post("/devices/reset", deviceHandler.Reset)
		})

		r.Route("/iot", func(r chi.Router) {
			r.Use(deviceAuth.Authenticate)
			r.Get("/flashcards", iotHandler.Flashcards)
			r.Post("/words/{wordId}/timeout", iotHandler.SetTimeout)
			r.Post("/set-current-word", iotHandler.SetCurrentWord)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
