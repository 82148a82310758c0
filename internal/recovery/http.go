// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recovery

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/resolve/internal/platform/apperr"
	"github.com/taibuivan/resolve/internal/platform/middleware"
	requestutil "github.com/taibuivan/resolve/internal/platform/request"
	"github.com/taibuivan/resolve/internal/platform/respond"
	"github.com/taibuivan/resolve/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the HTTP delivery layer for the recovery engine.
type Handler struct {
	recoveryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{recoveryService: service}
}

// Routes returns a [chi.Router] with all recovery endpoints.
//
// # Endpoints
//
// Everything here operates on the authenticated user's own record; there are
// no cross-user reads.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/addictions", handler.listAddictions)
	router.Post("/addictions", handler.addAddiction)
	router.Patch("/addictions/{id}", handler.updateAddiction)
	router.Delete("/addictions/{id}", handler.removeAddiction)

	router.Post("/onboarding", handler.completeOnboarding)
	router.Get("/addiction-types", handler.listAddictionTypes)

	router.Get("/progress", handler.progress)

	router.Get("/record", handler.getRecord)
	router.Delete("/record", handler.resetRecord)

	return router
}

// # Request Payloads

type addAddictionRequest struct {
	Name     string `json:"name"`
	QuitDate string `json:"quit_date"`
}

type updateAddictionRequest struct {
	QuitDate string `json:"quit_date"`
}

type onboardingEntryRequest struct {
	Name     string `json:"name"`
	QuitDate string `json:"quit_date"`
}

type onboardingRequest struct {
	Addictions []onboardingEntryRequest `json:"addictions"`
}

/*
ListAddictions returns the user's tracked addictions.

GET /api/v1/recovery/addictions

Response:
  - 200: []Addiction: Insertion-ordered list
  - 404: ErrNotFound: No record exists for this user
*/
func (handler *Handler) listAddictions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	addictions, err := handler.recoveryService.ListAddictions(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, addictions)
}

/*
AddAddiction starts tracking a new addiction.

POST /api/v1/recovery/addictions

Request:
  - Body: addAddictionRequest (Name, QuitDate "YYYY-MM-DD")

Response:
  - 201: Addiction: The newly tracked entry
  - 400: ErrInvalidJSON: Bad input, malformed or future quit date
  - 409: DuplicateName: The name is already tracked
*/
func (handler *Handler) addAddiction(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addAddictionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		Required(FieldQuitDate, input.QuitDate).
		Date(FieldQuitDate, input.QuitDate).
		PastDate(FieldQuitDate, input.QuitDate, time.Now())

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	quitDate, err := ParseDate(input.QuitDate)
	if err != nil {
		respond.Error(writer, request, apperr.InvalidDate("Quit date must be a calendar date in YYYY-MM-DD format"))
		return
	}

	addiction, err := handler.recoveryService.AddAddiction(request.Context(), userID, AddAddictionInput{
		Name:     input.Name,
		QuitDate: quitDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, addiction)
}

/*
UpdateAddiction changes the quit date of a tracked addiction.

PATCH /api/v1/recovery/addictions/{id}

Request:
  - Body: updateAddictionRequest (QuitDate "YYYY-MM-DD")

Response:
  - 200: Addiction: The updated entry
  - 400: ErrInvalidJSON: Malformed or future quit date
  - 404: ErrNotFound: No addiction with this ID
*/
func (handler *Handler) updateAddiction(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAddictionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldQuitDate, input.QuitDate).
		Date(FieldQuitDate, input.QuitDate).
		PastDate(FieldQuitDate, input.QuitDate, time.Now())

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	quitDate, err := ParseDate(input.QuitDate)
	if err != nil {
		respond.Error(writer, request, apperr.InvalidDate("Quit date must be a calendar date in YYYY-MM-DD format"))
		return
	}

	addiction, err := handler.recoveryService.UpdateAddiction(
		request.Context(),
		userID,
		requestutil.Param(request, "id"),
		quitDate,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, addiction)
}

/*
RemoveAddiction stops tracking an addiction. Idempotent.

DELETE /api/v1/recovery/addictions/{id}

Response:
  - 200: []Addiction: The resulting list (unchanged for absent IDs)
*/
func (handler *Handler) removeAddiction(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	addictions, err := handler.recoveryService.RemoveAddiction(
		request.Context(),
		userID,
		requestutil.Param(request, "id"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, addictions)
}

/*
CompleteOnboarding replaces the addiction list and marks the user onboarded.

POST /api/v1/recovery/onboarding

Request:
  - Body: onboardingRequest (Addictions: name + quit date pairs)

Response:
  - 200: UserRecord: The onboarded record
  - 400: ErrInvalidJSON: Empty batch or invalid entries
  - 409: DuplicateName: Duplicate names within the batch
*/
func (handler *Handler) completeOnboarding(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input onboardingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entries := make([]OnboardingEntry, 0, len(input.Addictions))
	for _, entry := range input.Addictions {
		validator := &validate.Validator{}
		validator.Required(FieldName, entry.Name).
			Required(FieldQuitDate, entry.QuitDate).
			Date(FieldQuitDate, entry.QuitDate).
			PastDate(FieldQuitDate, entry.QuitDate, time.Now())

		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}

		quitDate, err := ParseDate(entry.QuitDate)
		if err != nil {
			respond.Error(writer, request, apperr.InvalidDate("Quit date must be a calendar date in YYYY-MM-DD format"))
			return
		}

		entries = append(entries, OnboardingEntry{Name: entry.Name, QuitDate: quitDate})
	}

	record, err := handler.recoveryService.CompleteOnboarding(request.Context(), userID, entries)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
ListAddictionTypes returns the preset onboarding category list.

GET /api/v1/recovery/addiction-types

Response:
  - 200: []string: The preset categories, custom marker last
*/
func (handler *Handler) listAddictionTypes(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, DefaultAddictionTypes)
}

/*
Progress returns the derived progress view for every tracked addiction.

GET /api/v1/recovery/progress
GET /api/v1/recovery/progress?on=YYYY-MM-DD

Description: Without a query parameter the current instant is the reference;
with ?on= a preview is computed for that calendar date. The computation is
pure, so previews have no side effects.

Response:
  - 200: []ProgressView: One entry per addiction, empty list for no addictions
  - 400: InvalidDate: Malformed ?on= value
*/
func (handler *Handler) progress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	now := time.Now()
	if raw := request.URL.Query().Get(FieldOn); raw != "" {
		previewDate, err := ParseDate(raw)
		if err != nil {
			respond.Error(writer, request, apperr.InvalidDate("Preview date must be a calendar date in YYYY-MM-DD format"))
			return
		}
		now = previewDate.Time
	}

	views, err := handler.recoveryService.ComputeProgress(request.Context(), userID, now)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

/*
GetRecord returns the user's full recovery record.

GET /api/v1/recovery/record

Response:
  - 200: UserRecord: The stored record
  - 404: ErrNotFound: No record exists
  - 500: DataCorrupted: The record exists but cannot be decoded
*/
func (handler *Handler) getRecord(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.recoveryService.GetRecord(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
ResetRecord replaces the record with a fresh, empty one.

DELETE /api/v1/recovery/record

Description: The explicit escape hatch for a DATA_CORRUPTED record. All
tracked addictions and onboarding state are discarded.

Response:
  - 200: UserRecord: The new empty record
*/
func (handler *Handler) resetRecord(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.recoveryService.ResetRecord(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}
