package router

import (
	"github.com/go-chi/chi/v5"
	"log/slog"
	"team-collab-backend/internal/http/v1/handler"
	"team-collab-backend/internal/service"
)

type TaskRouter struct {
	handler *handler.TaskHandler
}

func NewTaskRouter(taskService *service.TaskService, log *slog.Logger) *TaskRouter {
	return &TaskRouter{
		handler: handler.NewTaskHandler(taskService, log),
	}
}

func (tr *TaskRouter) SetupRoutes(r chi.Router) {
	r.Post("/create_task", tr.handler.CreateTask)
	r.Post("/bulk_tasks/{project_id}", tr.handler.BulkCreateTasks)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", tr.handler.ListTasks)
		r.Patch("/{task_id}/status", tr.handler.UpdateTaskStatus)
	})

	r.Get("/admin/tasks", tr.handler.AdminTasks)
	r.Get("/member/tasks", tr.handler.MemberTasks)
}
