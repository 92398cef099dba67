package router

import (
	"github.com/go-chi/chi/v5"
	"log/slog"
	"team-collab-backend/internal/http/v1/handler"
	"team-collab-backend/internal/service"
)

type ProjectRouter struct {
	handler *handler.ProjectHandler
}

func NewProjectRouter(projectService *service.ProjectService, log *slog.Logger) *ProjectRouter {
	return &ProjectRouter{
		handler: handler.NewProjectHandler(projectService, log),
	}
}

func (pr *ProjectRouter) SetupRoutes(r chi.Router) {
	r.Post("/create_project", pr.handler.CreateProject)
	r.Post("/project_with_tasks", pr.handler.CreateProjectWithTasks)
	r.Get("/projects", pr.handler.ListProjects)
}
