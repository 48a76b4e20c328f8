// internal/httpserver/routes_user.go
//
// User endpoints:
//   - POST /api/user/create       → register (public)
//   - GET  /api/user/id/{id}      → lookup by id
//   - GET  /api/user/{username}   → lookup by username

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/ecommerce-api/internal/account"
	"github.com/robalobadob/ecommerce-api/internal/security"
	"github.com/robalobadob/ecommerce-api/internal/shop"
	"github.com/robalobadob/ecommerce-api/internal/store"
)

// createUserReq is the POST /api/user/create payload.
type createUserReq struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) mountUserRoutes() {
	s.r.Route("/api/user", func(r chi.Router) {
		r.Post("/create", s.handleCreateUser)
		r.With(security.RequireAuthenticated).Get("/id/{id}", s.handleUserByID)
		r.With(security.RequireAuthenticated).Get("/{username}", s.handleUserByUsername)
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.accounts.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword)
	switch {
	case errors.Is(err, account.ErrInvalidSignup):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "username_taken")
		return
	case err != nil:
		internalError(w, r, err, "register user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	u, err := s.accounts.UserByID(r.Context(), id)
	s.writeUser(w, r, u, err)
}

func (s *Server) handleUserByUsername(w http.ResponseWriter, r *http.Request) {
	u, err := s.accounts.UserByUsername(r.Context(), chi.URLParam(r, "username"))
	s.writeUser(w, r, u, err)
}

func (s *Server) writeUser(w http.ResponseWriter, r *http.Request, u *shop.User, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case err != nil:
		internalError(w, r, err, "find user")
	default:
		writeJSON(w, http.StatusOK, u)
	}
}
