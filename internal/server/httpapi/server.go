// Package httpapi exposes the task-tracking API over HTTP. Identity is
// re-established from Basic credentials on every request; there are no
// sessions or tokens. Handlers compose the resolved identity with
// ownership-scoped service calls and translate outcomes to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/projects"
	"github.com/dmitrijs2005/taskboard/internal/server/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/users"
)

// UserService is the identity surface the API needs: registration,
// per-request credential validation, and profile updates.
type UserService interface {
	Register(ctx context.Context, name, email, username, password string) (*users.User, error)
	Authenticate(ctx context.Context, username, password string) (*users.User, error)
	Update(ctx context.Context, id, name, email string) error
}

// ProjectService covers owner-scoped project CRUD.
type ProjectService interface {
	List(ctx context.Context, userID string) ([]*projects.Project, error)
	Create(ctx context.Context, userID string, title string) (*projects.Project, error)
	Get(ctx context.Context, id string, userID string) (*projects.Project, error)
	Update(ctx context.Context, id string, userID string, title string) error
	Delete(ctx context.Context, id string, userID string) error
}

// TaskService covers task CRUD behind the project ownership chain.
type TaskService interface {
	List(ctx context.Context, userID string, projectID string) ([]*tasks.Task, error)
	Create(ctx context.Context, userID string, projectID string, title string, completed bool) (*tasks.Task, error)
	Get(ctx context.Context, userID string, projectID string, taskID string) (*tasks.Task, error)
	Update(ctx context.Context, userID string, projectID string, taskID string, title string, completed bool) error
	Delete(ctx context.Context, userID string, projectID string, taskID string) error
}

type Server struct {
	address  string
	logger   logging.Logger
	users    UserService
	projects ProjectService
	tasks    TaskService
}

func NewServer(address string, l logging.Logger, us UserService, ps ProjectService, ts TaskService) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "httpapi"),
		users:    us,
		projects: ps,
		tasks:    ts,
	}
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(s.requestLogger)

	e.POST("/user/register", s.registerUser)

	g := e.Group("", s.requireIdentity)
	g.GET("/user", s.getUser)
	g.PUT("/user", s.updateUser)

	g.GET("/projects", s.listProjects)
	g.POST("/projects", s.createProject)
	g.GET("/projects/:id", s.getProject)
	g.PUT("/projects/:id", s.updateProject)
	g.DELETE("/projects/:id", s.deleteProject)

	g.GET("/projects/:id/tasks", s.listTasks)
	g.POST("/projects/:id/tasks", s.createTask)
	g.GET("/projects/:id/tasks/:taskId", s.getTask)
	g.PUT("/projects/:id/tasks/:taskId", s.updateTask)
	g.DELETE("/projects/:id/tasks/:taskId", s.deleteTask)

	return e
}

func (s *Server) Run(ctx context.Context) error {

	e := s.routes()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		s.logger.Info(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
		)
		return err
	}
}
