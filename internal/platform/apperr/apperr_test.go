// Copyright (c) 2026 Darass. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zereight/2021-darass/internal/platform/apperr"
)

/*
TestConstructors_CodeAndStatus pins the numeric code and HTTP status of every
constructor. The widget switches on these values, so they must never drift.
*/
func TestConstructors_CodeAndStatus(t *testing.T) {
	cause := errors.New("underlying failure")

	tests := []struct {
		name           string
		err            *apperr.AppError
		expectedCode   int
		expectedStatus int
	}{
		{"invalid_code", apperr.InvalidAuthorizationCode(cause), 800, http.StatusUnauthorized},
		{"unknown_provider", apperr.UnknownProvider("github"), 801, http.StatusUnauthorized},
		{"provider_unavailable", apperr.ProviderUnavailable(cause), 802, http.StatusServiceUnavailable},
		{"missing_refresh", apperr.MissingRefreshToken(), 803, http.StatusInternalServerError},
		{"invalid_token", apperr.InvalidToken(cause), 804, http.StatusInternalServerError},
		{"validation", apperr.ValidationError("nickname is required"), 900, http.StatusBadRequest},
		{"unauthorized", apperr.Unauthorized("Authentication required"), 901, http.StatusUnauthorized},
		{"not_found", apperr.NotFound("User"), 904, http.StatusNotFound},
		{"internal", apperr.Internal(cause), 999, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, tt.err.Code)
			assert.Equal(t, tt.expectedStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

/*
TestHelpers_ChainTraversal verifies As/HasCode see through fmt.Errorf
wrapping.
*/
func TestHelpers_ChainTraversal(t *testing.T) {
	wrapped := fmt.Errorf("login failed: %w", apperr.UnknownProvider("github"))

	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeUnknownProvider))
	assert.False(t, apperr.HasCode(wrapped, apperr.CodeInternal))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)

	assert.False(t, apperr.IsAppError(errors.New("plain")))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestAppError_CauseIsUnwrappable verifies the cause chain works with errors.Is
while the client-facing message stays clean.
*/
func TestAppError_CauseIsUnwrappable(t *testing.T) {
	sentinel := errors.New("sec: invalid token")
	err := apperr.InvalidToken(sentinel)

	assert.ErrorIs(t, err, sentinel)
	assert.NotContains(t, err.Error(), "sec:")
}
