// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/resolve/internal/platform/middleware"
	requestutil "github.com/taibuivan/resolve/internal/platform/request"
	"github.com/taibuivan/resolve/internal/platform/respond"
	"github.com/taibuivan/resolve/internal/platform/validate"
	"github.com/taibuivan/resolve/internal/users/auth"
	"github.com/taibuivan/resolve/pkg/pointer"
)

// # Definitions & Constructors

// Handler implements the /me settings endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the authenticated settings routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getProfile)
	router.Patch("/", handler.updateSettings)
	router.Delete("/", handler.deleteAccount)

	return router
}

// # Request Payloads

type updateSettingsRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
}

/*
GetProfile returns the authenticated user's own profile.

GET /api/v1/me

Response:
  - 200: User: The private profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateSettings applies partial changes to the authenticated user's identity.

PATCH /api/v1/me

Request:
  - Body: updateSettingsRequest (DisplayName?, Email?)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON: Validation failure
  - 409: ErrConflict: Email already registered to another account
*/
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateSettingsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.Required(auth.FieldDisplayName, pointer.Val(input.DisplayName)).
			MaxLen(auth.FieldDisplayName, pointer.Val(input.DisplayName), 80)
	}
	if input.Email != nil {
		validator.Email(auth.FieldEmail, pointer.Val(input.Email))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateSettings(request.Context(), userID, UpdateSettingsInput{
		DisplayName: input.DisplayName,
		Email:       input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DeleteAccount removes the authenticated user's account and recovery record.

DELETE /api/v1/me

Response:
  - 204: No Content: Account deleted, all sessions revoked
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
