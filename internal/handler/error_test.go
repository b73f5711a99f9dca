package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/haatos/provider-ci/internal"
	"github.com/haatos/provider-ci/internal/registry"
	"github.com/haatos/provider-ci/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	t.Run("success - not found errors", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, statusForError(registry.ErrServiceNotFound))
		assert.Equal(t, http.StatusNotFound, statusForError(service.ErrParameterNotFound))
		assert.Equal(t, http.StatusNotFound, statusForError(fmt.Errorf("read: %w", sql.ErrNoRows)))
	})
	t.Run("success - configuration errors are bad requests", func(t *testing.T) {
		err := internal.NewConfigurationError("service", "unknown service key", registry.ErrServiceNotFound)

		assert.Equal(t, http.StatusBadRequest, statusForError(err))
		assert.Equal(t, http.StatusBadRequest, statusForError(&service.ErrInvalidParameterType{Type: "x"}))
	})
	t.Run("success - conflicts", func(t *testing.T) {
		assert.Equal(t, http.StatusConflict, statusForError(service.NewErrParameterAlreadyExists("name")))
	})
	t.Run("success - anything else is internal", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, statusForError(errors.New("boom")))
	})
}
