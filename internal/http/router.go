package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/helios/internal/http/auth"
	"github.com/MrJamesThe3rd/helios/internal/http/chat"
	"github.com/MrJamesThe3rd/helios/internal/http/dashboard"
	"github.com/MrJamesThe3rd/helios/internal/http/export"
	"github.com/MrJamesThe3rd/helios/internal/http/fraud"
	"github.com/MrJamesThe3rd/helios/internal/http/importcsv"
	"github.com/MrJamesThe3rd/helios/internal/http/insights"
	"github.com/MrJamesThe3rd/helios/internal/http/matching"
	"github.com/MrJamesThe3rd/helios/internal/http/settings"
	"github.com/MrJamesThe3rd/helios/internal/http/transaction"
)

type Handlers struct {
	Auth         *auth.Handler
	Dashboard    *dashboard.Handler
	Insights     *insights.Handler
	Chat         *chat.Handler
	Transactions *transaction.Handler
	Documents    *importcsv.Handler
	Categories   *matching.Handler
	Export       *export.Handler
	Settings     *settings.Handler
	Fraud        *fraud.Handler
}

func New(allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/insights", h.Insights.Routes)

		r.Route("/chat", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Chat.Routes(r)
		})

		r.Route("/transactions", h.Transactions.Routes)
		r.Route("/documents", h.Documents.Routes)
		r.Route("/categories", h.Categories.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Export.Routes(r)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Settings.Routes(r)
		})

		r.Route("/fraud", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Fraud.Routes(r)
		})
	})

	return router
}
