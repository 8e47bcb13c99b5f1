// Package httptransport is the thin HTTP layer. Handlers delegate to the
// wizard, session and content services and keep business logic out of
// transport concerns.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vetgate/internal/content"
	"vetgate/internal/i18n"
	"vetgate/internal/notify"
	"vetgate/internal/session"
	"vetgate/internal/wizard"
)

// Deps collects everything the router serves. Health is an optional probe of
// the backing session store; nil means the process itself is the only check.
type Deps struct {
	Wizard     *wizard.Wizard
	Sessions   *session.Manager
	Content    *content.Service
	Notifier   *notify.Notifier
	Translator *i18n.Translator
	EmailCheck EmailChecker
	Registry   *prometheus.Registry
	Health     func(ctx context.Context) error
	Logger     *slog.Logger
}

// NewRouter wires all public endpoints.
func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	h := &handlers{deps: deps}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(localeMiddleware(deps.Translator))
	r.Use(accessLogMiddleware(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(h.refreshSession)

		api.Route("/registration", func(reg chi.Router) {
			reg.Get("/", h.handleRegistrationSnapshot)
			reg.Post("/steps/{step}", h.handleSetStep)
			reg.Post("/next", h.handleNextStep)
			reg.Post("/previous", h.handlePreviousStep)
			reg.Post("/goto/{step}", h.handleGoToStep)
			reg.Post("/documents", h.handleUploadDocuments)
			reg.Post("/submit", h.handleSubmit)
			reg.Post("/reset", h.handleReset)
			reg.Get("/email-available", h.handleEmailAvailable)
		})

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.handleLogin)
			auth.Post("/logout", h.handleLogout)
			auth.Get("/me", h.handleMe)
		})

		api.Get("/news", h.handleNewsList)
		api.Get("/news/home", h.handleHomeNews)
		api.Get("/news/{id}", h.handleNewsArticle)
		api.Get("/programs", h.handlePrograms)
		api.Get("/programs/{slug}", h.handleProgram)
	})

	return r
}

type handlers struct {
	deps Deps
}
