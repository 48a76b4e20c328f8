// internal/httpserver/routes_order.go
//
// Order endpoints (authenticated):
//   - POST /api/order/submit/{username}   → snapshot the user's cart into an order
//   - GET  /api/order/history/{username}  → the user's orders, oldest first

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/ecommerce-api/internal/security"
	"github.com/robalobadob/ecommerce-api/internal/shop"
)

func (s *Server) mountOrderRoutes() {
	s.r.Route("/api/order", func(r chi.Router) {
		r.Use(security.RequireAuthenticated)
		r.Post("/submit/{username}", s.handleSubmitOrder)
		r.Get("/history/{username}", s.handleOrderHistory)
	})
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, err := s.store.UserByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		notFoundOr500(w, r, err, "find user")
		return
	}
	cart, err := s.store.Cart(ctx, u.ID)
	if err != nil {
		internalError(w, r, err, "load cart")
		return
	}
	order := shop.NewOrder(u.ID, cart, time.Now())
	if err := s.store.CreateOrder(ctx, order); err != nil {
		internalError(w, r, err, "create order")
		return
	}
	hlog.FromRequest(r).Info().
		Str("username", u.Username).
		Int64("order", order.ID).
		Stringer("total", order.Total).
		Msg("order submitted")
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, err := s.store.UserByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		notFoundOr500(w, r, err, "find user")
		return
	}
	orders, err := s.store.OrdersByUser(ctx, u.ID)
	if err != nil {
		internalError(w, r, err, "list orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
