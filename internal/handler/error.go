package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/haatos/provider-ci/internal"
	"github.com/haatos/provider-ci/internal/registry"
	"github.com/haatos/provider-ci/internal/service"
	"github.com/labstack/echo/v4"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	switch e := err.(type) {
	case *echo.HTTPError:
		if e.Internal != nil {
			c.Logger().Errorf(
				"handler internal error %s [%d]: %+v\n",
				c.Request().URL.Path, e.Code, e.Internal,
			)
		}
		if err := c.JSON(e.Code, map[string]any{"message": e.Message}); err != nil {
			log.Printf("err returning json: %+v\n", err)
		}
	default:
		c.Logger().Errorf("handler error: %+v\n", e)
		if err := c.JSON(
			http.StatusInternalServerError,
			map[string]any{"message": "something went terribly wrong"},
		); err != nil {
			log.Printf("err returning json: %+v\n", err)
		}
	}
}

func isUniqueConstraintError(err error) bool {
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// statusForError maps service and store errors to a response status.
func statusForError(err error) int {
	var configErr *internal.ConfigurationError
	var existsErr *service.ErrParameterAlreadyExists
	var typeErr *service.ErrInvalidParameterType
	switch {
	case errors.Is(err, registry.ErrServiceNotFound) && !errors.As(err, &configErr),
		errors.Is(err, service.ErrParameterNotFound),
		errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.As(err, &configErr), errors.As(err, &typeErr):
		return http.StatusBadRequest
	case errors.As(err, &existsErr), isUniqueConstraintError(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func newError(err error, status int, message string) error {
	e := echo.NewHTTPError(status, message)
	if err != nil {
		e = e.WithInternal(err)
	}
	return e
}

// serviceError wraps err with the status it maps to, using err's own message
// for client errors.
func serviceError(err error, message string) error {
	status := statusForError(err)
	if status < http.StatusInternalServerError {
		message = err.Error()
	}
	return newError(err, status, message)
}
