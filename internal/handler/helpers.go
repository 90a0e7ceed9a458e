package handler

import (
	"errors"
	"net/http"

	"shoptrack/internal/repository"
	"shoptrack/internal/service"
	"shoptrack/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated user id set by the auth middleware.
// Routes registered without RequireAuth never reach the handlers that call
// this, so a missing id means a wiring bug and surfaces as 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "No authenticated session"))
		return uuid.Nil, false
	}
	str, _ := raw.(string)
	id, err := uuid.Parse(str)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid session identity"))
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError translates service and gateway errors into HTTP
// responses. Setup problems carry a hint so the client can distinguish
// them from transient outages.
func writeServiceError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, vErr.Error()))
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Record not found"))
	case errors.Is(err, repository.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Session expired, please log in again"))
	case errors.Is(err, repository.ErrSchemaMismatch):
		c.JSON(http.StatusInternalServerError, response.ErrorWithHint(
			http.StatusInternalServerError,
			"Storage schema is out of date",
			"Run the database migrations: the owner_id column is missing",
		))
	case errors.Is(err, repository.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, response.ErrorWithHint(
			http.StatusServiceUnavailable,
			"Storage backend is not configured",
			"Set the DB_* environment variables and restart the server",
		))
	case repository.IsTransient(err):
		c.JSON(http.StatusServiceUnavailable, response.ErrorWithHint(
			http.StatusServiceUnavailable,
			"Storage backend is temporarily unreachable",
			"The request was retried and still failed; try again shortly",
		))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}
