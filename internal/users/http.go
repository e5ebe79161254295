// Copyright (c) 2026 Darass. All rights reserved.

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zereight/2021-darass/internal/platform/middleware"
	requestutil "github.com/zereight/2021-darass/internal/platform/request"
	"github.com/zereight/2021-darass/internal/platform/respond"
)

// Handler implements the profile HTTP endpoints.
//
// All routes require a verified access token; the subject embedded in the
// token is the only identity source, so a user can never read or rename
// anyone else's profile.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with profile routes.
//
// # Endpoints
//   - GET /    : Returns the authenticated user's profile.
//   - PATCH /  : Updates the authenticated user's nickname.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.me)
		r.Patch("/", handler.rename)
	})

	return router
}

type renameRequest struct {
	Nickname string `json:"nickName"`
}

/*
Me returns the profile of the currently authenticated user.

GET /api/v1/users

Response:
  - 200: User: Profile entity
  - 401: Unauthorized: Missing or invalid access token
  - 404: NotFound: Token subject no longer exists in the directory
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Rename updates the authenticated user's display name.

PATCH /api/v1/users

Request:
  - Body: renameRequest (Nickname)

Response:
  - 200: User: Updated profile
  - 400: ValidationError: Empty or oversized nickname
  - 401: Unauthorized: Missing or invalid access token
*/
func (handler *Handler) rename(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input renameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.userService.Rename(request.Context(), userID, input.Nickname)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
