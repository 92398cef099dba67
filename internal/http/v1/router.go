package v1

import (
	"github.com/go-chi/chi/v5"
	"log/slog"
	"team-collab-backend/internal/http/v1/router"
	"team-collab-backend/internal/service"
)

type Router interface {
	SetupRoutes(r chi.Router)
}

type RouterDependencies struct {
	AuthService    *service.AuthService
	TeamService    *service.TeamService
	ProjectService *service.ProjectService
	TaskService    *service.TaskService
}

func SetupRoutes(r chi.Router, deps *RouterDependencies, log *slog.Logger) {
	routers := []Router{
		router.NewAuthRouter(deps.AuthService, log),
		router.NewTeamRouter(deps.TeamService, log),
		router.NewProjectRouter(deps.ProjectService, log),
		router.NewTaskRouter(deps.TaskService, log),
		router.NewHealthRouter(),
	}

	for _, serviceRouter := range routers {
		serviceRouter.SetupRoutes(r)
	}
}
