// Copyright (c) 2026 Darass. All rights reserved.

package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zereight/2021-darass/internal/platform/apperr"
	"github.com/zereight/2021-darass/internal/platform/middleware"
	"github.com/zereight/2021-darass/internal/platform/respond"
	"github.com/zereight/2021-darass/internal/platform/sec"
	"github.com/zereight/2021-darass/internal/users"
)

// newProfileRouter builds the users routes behind the real bearer-token
// middleware, returning a valid access token for the registered fixture user.
func newProfileRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	tokens, err := sec.NewTokenService("users-test-access", "users-test-refresh", "darass.app", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	repository := newFakeRepository()
	user, err := repository.FindOrCreate(context.Background(), kakaoIdentity())
	require.NoError(t, err)

	pair, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/api/v1/users", users.NewHandler(users.NewService(repository)).Routes())

	return router, pair.AccessToken
}

func performProfileRequest(router http.Handler, method, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, "/api/v1/users", strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestProfile_Me verifies that the access token subject resolves to the
fixture profile, with the provider-internal ID withheld.
*/
func TestProfile_Me(t *testing.T) {
	router, token := newProfileRouter(t)

	recorder := performProfileRequest(router, http.MethodGet, token, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &profile))
	assert.Equal(t, "우기", profile["nickname"])
	assert.Equal(t, "kakao", profile["provider"])
	assert.NotContains(t, recorder.Body.String(), "6752453")
}

/*
TestProfile_RequiresAuth verifies anonymous and badly authenticated requests
are turned away with the 901 envelope.
*/
func TestProfile_RequiresAuth(t *testing.T) {
	router, _ := newProfileRouter(t)

	t.Run("no_token", func(t *testing.T) {
		recorder := performProfileRequest(router, http.MethodGet, "", "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var envelope respond.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, apperr.CodeUnauthorized, envelope.Code)
	})

	t.Run("garbage_token", func(t *testing.T) {
		recorder := performProfileRequest(router, http.MethodGet, "garbage", "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

/*
TestProfile_Rename verifies the nickname update round trip over HTTP.
*/
func TestProfile_Rename(t *testing.T) {
	router, token := newProfileRouter(t)

	recorder := performProfileRequest(router, http.MethodPatch, token, `{"nickName":"부기"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &profile))
	assert.Equal(t, "부기", profile["nickname"])

	// The change sticks
	recorder = performProfileRequest(router, http.MethodGet, token, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "부기")
}

/*
TestProfile_Rename_Validation verifies a rejected nickname never reaches the
directory.
*/
func TestProfile_Rename_Validation(t *testing.T) {
	router, token := newProfileRouter(t)

	recorder := performProfileRequest(router, http.MethodPatch, token, `{"nickName":""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, apperr.CodeValidation, envelope.Code)
}
