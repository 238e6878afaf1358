package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// registerUser is the one unauthenticated handler.
func (s *Server) registerUser(c echo.Context) error {

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Missing username or password")
	}

	ctx := c.Request().Context()

	_, err := s.users.Register(ctx, req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Username already exists"})
		case errors.Is(err, common.ErrorValidation):
			return badRequest(c, "Missing username or password")
		}
		s.logger.Error(ctx, err.Error())
		return internalError(c)
	}

	return message(c, http.StatusCreated, "User registered successfully")
}

func (s *Server) getUser(c echo.Context) error {
	return c.JSON(http.StatusOK, identity(c))
}

func (s *Server) updateUser(c echo.Context) error {

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Name == "" || req.Email == "" {
		return badRequest(c, "Name and email required")
	}

	err := s.users.Update(c.Request().Context(), identity(c).ID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return badRequest(c, "Name and email required")
		case errors.Is(err, common.ErrorNotFound):
			return notFound(c)
		}
		return internalError(c)
	}

	return message(c, http.StatusOK, "User updated successfully")
}
