package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/users"
)

const identityKey = "identity"

// requireIdentity resolves the caller's identity from HTTP Basic
// credentials on every request. The failure statuses are deliberate and
// distinct: a request with no Authorization header at all terminates with
// 403, while garbled, empty, or wrong credentials terminate with 401.
func (s *Server) requireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		username, password, ok := c.Request().BasicAuth()
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized"})
		}

		if username == "" || password == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Username and password required"})
		}

		user, err := s.users.Authenticate(c.Request().Context(), username, password)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthenticated) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
			}
			s.logger.Error(c.Request().Context(), err.Error())
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal error"})
		}

		c.Set(identityKey, user)
		return next(c)
	}
}

// identity returns the user resolved by requireIdentity for this request.
func identity(c echo.Context) *users.User {
	u, _ := c.Get(identityKey).(*users.User)
	return u
}
