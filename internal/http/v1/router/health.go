package router

import (
	"github.com/go-chi/chi/v5"
	"team-collab-backend/internal/http/v1/handler"
)

type HealthRouter struct {
	handler *handler.HealthHandler
}

func NewHealthRouter() *HealthRouter {
	return &HealthRouter{
		handler: handler.NewHealthHandler(),
	}
}

func (hr *HealthRouter) SetupRoutes(r chi.Router) {
	r.Get("/health", hr.handler.Health)
}
