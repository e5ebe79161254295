// Copyright (c) 2026 Darass. All rights reserved.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zereight/2021-darass/internal/platform/constants"
	requestutil "github.com/zereight/2021-darass/internal/platform/request"
	"github.com/zereight/2021-darass/internal/platform/respond"
	"github.com/zereight/2021-darass/internal/platform/sec"
	"github.com/zereight/2021-darass/internal/platform/validate"
)

// Handler exposes the login endpoints under /api/v1/login.
type Handler struct {
	authService *Service
}

// NewHandler builds the login HTTP handler.
func NewHandler(authService *Service) *Handler {
	return &Handler{authService: authService}
}

// Routes returns the login route tree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/oauth", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Delete("/refresh", handler.logout)

	return router
}

type loginRequest struct {
	ProviderName      string `json:"oauthProviderName"`
	AuthorizationCode string `json:"authorizationCode"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// login handles POST /api/v1/login/oauth.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body loginRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldProviderName, body.ProviderName).
		Required(FieldAuthorizationCode, body.AuthorizationCode)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Login(request.Context(), body.ProviderName, body.AuthorizationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, pair)
	respond.OK(writer, tokenResponse{AccessToken: pair.AccessToken})
}

// refresh handles POST /api/v1/login/refresh.
//
// The refresh token travels only in the HttpOnly cookie, never in the body.
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	pair, err := handler.authService.Refresh(request.Context(), refreshCookieValue(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, pair)
	respond.OK(writer, tokenResponse{AccessToken: pair.AccessToken})
}

// logout handles DELETE /api/v1/login/refresh by expiring the cookie.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	respond.NoContent(writer)
}

// refreshCookieValue extracts the refresh token cookie, empty when absent.
func refreshCookieValue(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setRefreshCookie attaches the rotated refresh token.
//
// SameSite=None because the widget runs embedded on third-party origins.
func setRefreshCookie(writer http.ResponseWriter, pair *sec.TokenPair) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    pair.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  pair.RefreshExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
