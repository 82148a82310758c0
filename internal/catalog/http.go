// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/resolve/internal/platform/respond"
	"github.com/taibuivan/resolve/pkg/convert"
)

// Handler exposes read-only catalog endpoints.
type Handler struct {
	messageCatalog *Catalog
}

// NewHandler constructs a new [Handler] for the loaded catalog.
func NewHandler(messageCatalog *Catalog) *Handler {
	return &Handler{messageCatalog: messageCatalog}
}

// Routes returns a [chi.Router] with the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/messages", handler.listMessages)
	return router
}

/*
ListMessages returns catalog entries.

GET /api/v1/catalog/messages
GET /api/v1/catalog/messages?days=N

Description: Without a query parameter the full catalog is returned in load
order. With ?days=N the pure selection for that day count is returned instead,
which lets clients preview unlock stages.

Response:
  - 200: []Message: Full catalog or per-category selection
*/
func (handler *Handler) listMessages(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("days")
	if raw == "" {
		respond.OK(writer, handler.messageCatalog.Messages())
		return
	}

	respond.OK(writer, handler.messageCatalog.Select(convert.ToIntD(raw, 0)))
}
