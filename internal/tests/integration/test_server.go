package integration

import (
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"team-collab-backend/internal/http/v1/router"
	"team-collab-backend/internal/lib/hasher"
	"team-collab-backend/internal/repo"
	"team-collab-backend/internal/service"
)

// TestServer wires the real router and repositories against a live Postgres.
// Tests using it are skipped unless TEST_DATABASE_DSN is set, e.g.
// "host=localhost port=5432 user=postgres password=postgres dbname=collab_test sslmode=disable".
type TestServer struct {
	DB     *sqlx.DB
	Server *httptest.Server
	Hasher *hasher.Hasher
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	h := hasher.New(4)

	userRepo := repo.NewUserRepo(db)
	teamRepo := repo.NewTeamRepo(db)
	projectRepo := repo.NewProjectRepo(db)
	taskRepo := repo.NewTaskRepo(db)

	authService := service.NewAuthService(log, userRepo, h)
	teamService := service.NewTeamService(log, teamRepo)
	projectService := service.NewProjectService(log, projectRepo)
	taskService := service.NewTaskService(log, taskRepo)

	r := chi.NewRouter()
	router.NewAuthRouter(authService, log).SetupRoutes(r)
	router.NewTeamRouter(teamService, log).SetupRoutes(r)
	router.NewProjectRouter(projectService, log).SetupRoutes(r)
	router.NewTaskRouter(taskService, log).SetupRoutes(r)
	router.NewHealthRouter().SetupRoutes(r)

	ts := httptest.NewServer(r)

	return &TestServer{
		DB:     db,
		Server: ts,
		Hasher: h,
	}
}

// LoadFixtures resets every table and seeds a small world: team Eng with
// members Ana, Bob and Carol, an outsider Dave, one project and one task
// assigned to Bob. All users share the password "secret123".
func (s *TestServer) LoadFixtures(t *testing.T) {
	t.Helper()

	tables := []string{"tasks", "projects", "team_members", "teams", "users"}
	for _, table := range tables {
		if _, err := s.DB.Exec(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}

	hash, err := s.Hasher.Hash([]byte("secret123"))
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	users := []struct {
		name    string
		email   string
		isAdmin bool
	}{
		{"Ana", "ana@x.com", true},
		{"Bob", "bob@x.com", false},
		{"Carol", "carol@x.com", false},
		{"Dave", "dave@x.com", false},
	}
	for _, u := range users {
		_, err := s.DB.Exec(
			`INSERT INTO users (name, email, password, is_admin) VALUES ($1, $2, $3, $4)`,
			u.name, u.email, hash, u.isAdmin)
		if err != nil {
			t.Fatalf("failed to insert user %s: %v", u.name, err)
		}
	}

	fixtures := `
		INSERT INTO teams (name, description, created_by) VALUES
			('Eng', 'engineering', 1);

		INSERT INTO team_members (team_id, user_id) VALUES
			(1, 1),
			(1, 2),
			(1, 3);

		INSERT INTO projects (name, description, team_id, created_by) VALUES
			('Site', 'company site', 1, 1);

		INSERT INTO tasks (title, description, status, project_id, assigned_to) VALUES
			('Build landing page', '', 'To-Do', 1, 2);
	`

	if _, err := s.DB.Exec(fixtures); err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
}

func (s *TestServer) Close() {
	s.Server.Close()
	s.DB.Close()
}
