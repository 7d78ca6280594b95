package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"pawlink/backend/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrIllegalTransition, http.StatusForbidden},
		{apperr.ErrConflict, http.StatusConflict},
		{apperr.ErrValidation, http.StatusBadRequest},
		{apperr.ErrEmailTaken, http.StatusBadRequest},
		{apperr.ErrMissingTarget, http.StatusBadRequest},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.HTTPStatus(tt.err))
		})
	}
}

// Wrapped errors must keep their mapping: services add context with %w.
func TestHTTPStatus_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("%w: cannot start verification from active", apperr.ErrIllegalTransition)
	assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(wrapped))

	assert.ErrorIs(t, apperr.ErrMissingTarget, apperr.ErrValidation)
	assert.ErrorIs(t, apperr.Validationf("pet %d does not exist", 7), apperr.ErrValidation)
}
