package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/playlives/docs"
	liveshandlers "github.com/GlebRadaev/playlives/internal/handlers/lives"
	paymentshandlers "github.com/GlebRadaev/playlives/internal/handlers/payments"
	roundshandlers "github.com/GlebRadaev/playlives/internal/handlers/rounds"
	"github.com/GlebRadaev/playlives/internal/metrics"
	"github.com/GlebRadaev/playlives/internal/service"
	"github.com/GlebRadaev/playlives/pkg/auth"
)

type RoundHandler interface {
	Settle(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type LivesHandler interface {
	Claim(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Address(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	RoundHandler   RoundHandler
	LivesHandler   LivesHandler
	PaymentHandler PaymentHandler
	WebhookSecret  string
}

func New(s *service.Services, webhookSecret string) *Handlers {
	return &Handlers{
		RoundHandler:   roundshandlers.New(s.RoundService),
		LivesHandler:   liveshandlers.New(s.LivesService),
		PaymentHandler: paymentshandlers.New(s.PaymentService),
		WebhookSecret:  webhookSecret,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/rounds", func(r chi.Router) {
			r.Post("/start", h.RoundHandler.Start)
			r.Post("/settle", h.RoundHandler.Settle)
		})
		r.Get("/games/{gameId}/stats/{wallet}", h.RoundHandler.Stats)

		r.Route("/lives", func(r chi.Router) {
			r.Post("/claim", h.LivesHandler.Claim)
			r.Get("/{wallet}", h.LivesHandler.Get)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/address", h.PaymentHandler.Address)
			r.With(auth.WebhookSecretMiddleware(h.WebhookSecret)).Post("/webhook", h.PaymentHandler.Webhook)
			r.Get("/{wallet}", h.PaymentHandler.History)
		})
	})

	return r
}
