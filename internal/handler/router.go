package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	therapyHandler "github.com/mhollis/solace/backend/internal/handler/therapy"
	"github.com/mhollis/solace/backend/internal/handler/ws"
	middlewarePkg "github.com/mhollis/solace/backend/internal/middleware"
	therapyservice "github.com/mhollis/solace/backend/internal/service/therapy"
)

// NewRouter wires HTTP routes to the conversation pipeline.
func NewRouter(therapySvc *therapyservice.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	apiHandler := therapyHandler.New(therapySvc)
	wsHandler := ws.New(therapySvc)

	r.Route("/api", func(api chi.Router) {
		apiHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
	})

	return r
}
