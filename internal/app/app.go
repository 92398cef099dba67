package app

import (
	"context"
	"log/slog"
	"team-collab-backend/internal/app/rest"
	"team-collab-backend/internal/config"
	v1 "team-collab-backend/internal/http/v1"
	"team-collab-backend/internal/lib/hasher"
	"team-collab-backend/internal/lib/migrator"
	"team-collab-backend/internal/repo"
	"team-collab-backend/internal/service"
	"team-collab-backend/internal/storage/postgresql"
	"time"
)

type App struct {
	log     *slog.Logger
	storage *postgresql.Storage
	restApp *rest.App
}

func MustNew(log *slog.Logger) *App {
	cfg := config.MustLoad()

	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		log.Error("failed to run migrations", "error", err)
		panic(err)
	}

	storage := postgresql.Init(cfg.Postgres)

	userRepo := repo.NewUserRepo(storage.GetDB())
	teamRepo := repo.NewTeamRepo(storage.GetDB())
	projectRepo := repo.NewProjectRepo(storage.GetDB())
	taskRepo := repo.NewTaskRepo(storage.GetDB())

	authService := service.NewAuthService(log, userRepo, hasher.New(0))
	teamService := service.NewTeamService(log, teamRepo)
	projectService := service.NewProjectService(log, projectRepo)
	taskService := service.NewTaskService(log, taskRepo)

	routerDependencies := v1.RouterDependencies{
		AuthService:    authService,
		TeamService:    teamService,
		ProjectService: projectService,
		TaskService:    taskService,
	}

	restApp := rest.New(
		log,
		&routerDependencies,
		cfg.Server.Port,
		cfg.CORS.Origins,
	)

	return &App{
		log:     log,
		storage: storage,
		restApp: restApp,
	}
}

func (a *App) MustRun() {
	const op = "app.MustRun"
	a.log.With(slog.String("op", op)).Info("starting application")

	if err := a.restApp.Run(); err != nil {
		panic(err)
	}
}

func (a *App) GracefulShutdown() {
	const op = "app.GracefulShutdown"
	a.log.With(slog.String("op", op)).Info("shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.restApp.Stop(ctx); err != nil {
		a.log.Error("failed to stop HTTP server", "error", err)
	}

	if a.storage != nil {
		a.storage.Close()
		a.log.Info("database connection closed")
	}
}
