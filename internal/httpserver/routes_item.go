// internal/httpserver/routes_item.go
//
// Catalog endpoints (authenticated):
//   - GET /api/item               → all items
//   - GET /api/item/{id}          → one item
//   - GET /api/item/name/{name}   → items with that exact name; 404 when none

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/ecommerce-api/internal/security"
	"github.com/robalobadob/ecommerce-api/internal/store"
)

func (s *Server) mountItemRoutes() {
	s.r.Route("/api/item", func(r chi.Router) {
		r.Use(security.RequireAuthenticated)
		r.Get("/", s.handleItems)
		r.Get("/{id}", s.handleItemByID)
		r.Get("/name/{name}", s.handleItemsByName)
	})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.Items(r.Context())
	if err != nil {
		internalError(w, r, err, "list items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleItemByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	item, err := s.store.ItemByID(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case err != nil:
		internalError(w, r, err, "find item")
	default:
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) handleItemsByName(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ItemsByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		internalError(w, r, err, "find items by name")
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
