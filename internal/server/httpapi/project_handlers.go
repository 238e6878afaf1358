package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

type projectRequest struct {
	Title string `json:"title"`
}

func (s *Server) listProjects(c echo.Context) error {

	list, err := s.projects.List(c.Request().Context(), identity(c).ID)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(http.StatusOK, list)
}

func (s *Server) createProject(c echo.Context) error {

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	_, err := s.projects.Create(c.Request().Context(), identity(c).ID, req.Title)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return badRequest(c, "Title required")
		}
		return internalError(c)
	}

	return message(c, http.StatusCreated, "Project created successfully")
}

func (s *Server) getProject(c echo.Context) error {

	project, err := s.projects.Get(c.Request().Context(), c.Param("id"), identity(c).ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	return c.JSON(http.StatusOK, project)
}

func (s *Server) updateProject(c echo.Context) error {

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	err := s.projects.Update(c.Request().Context(), c.Param("id"), identity(c).ID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return badRequest(c, "Title required")
		case errors.Is(err, common.ErrorNotFound):
			return notFound(c)
		}
		return internalError(c)
	}

	return message(c, http.StatusOK, "Project updated successfully")
}

func (s *Server) deleteProject(c echo.Context) error {

	err := s.projects.Delete(c.Request().Context(), c.Param("id"), identity(c).ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	return message(c, http.StatusOK, "Project deleted successfully")
}
