package router

import (
	"github.com/go-chi/chi/v5"
	"log/slog"
	"team-collab-backend/internal/http/v1/handler"
	"team-collab-backend/internal/service"
)

type TeamRouter struct {
	handler *handler.TeamHandler
}

func NewTeamRouter(teamService *service.TeamService, log *slog.Logger) *TeamRouter {
	return &TeamRouter{
		handler: handler.NewTeamHandler(teamService, log),
	}
}

func (tr *TeamRouter) SetupRoutes(r chi.Router) {
	r.Post("/create_team", tr.handler.CreateTeam)
	r.Get("/teams_list", tr.handler.ListTeams)
}
