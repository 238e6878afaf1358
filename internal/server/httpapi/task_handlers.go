package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

type taskRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (s *Server) listTasks(c echo.Context) error {

	list, err := s.tasks.List(c.Request().Context(), identity(c).ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	return c.JSON(http.StatusOK, list)
}

func (s *Server) createTask(c echo.Context) error {

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	_, err := s.tasks.Create(c.Request().Context(), identity(c).ID, c.Param("id"), req.Title, req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return notFound(c)
		case errors.Is(err, common.ErrorValidation):
			return badRequest(c, "Title required")
		}
		return internalError(c)
	}

	return message(c, http.StatusCreated, "Task created successfully")
}

func (s *Server) getTask(c echo.Context) error {

	task, err := s.tasks.Get(c.Request().Context(), identity(c).ID, c.Param("id"), c.Param("taskId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	return c.JSON(http.StatusOK, task)
}

func (s *Server) updateTask(c echo.Context) error {

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	err := s.tasks.Update(c.Request().Context(), identity(c).ID, c.Param("id"), c.Param("taskId"), req.Title, req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return notFound(c)
		case errors.Is(err, common.ErrorValidation):
			return badRequest(c, "Title required")
		}
		return internalError(c)
	}

	return message(c, http.StatusOK, "Task updated successfully")
}

func (s *Server) deleteTask(c echo.Context) error {

	err := s.tasks.Delete(c.Request().Context(), identity(c).ID, c.Param("id"), c.Param("taskId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	return message(c, http.StatusOK, "Task deleted successfully")
}
