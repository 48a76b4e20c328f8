// internal/httpserver/routes_cart.go
//
// Cart endpoints (authenticated):
//   - POST /api/cart/addToCart        → add quantity copies of an item
//   - POST /api/cart/removeFromCart   → remove up to quantity copies
//
// Both answer with the updated cart, or 404 when the user or item is unknown.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/ecommerce-api/internal/security"
	"github.com/robalobadob/ecommerce-api/internal/shop"
	"github.com/robalobadob/ecommerce-api/internal/store"
)

// modifyCartReq is the payload for both cart endpoints.
type modifyCartReq struct {
	Username string `json:"username"`
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (s *Server) mountCartRoutes() {
	s.r.Route("/api/cart", func(r chi.Router) {
		r.Use(security.RequireAuthenticated)
		r.Post("/addToCart", s.modifyCart((*shop.Cart).Add))
		r.Post("/removeFromCart", s.modifyCart((*shop.Cart).Remove))
	})
}

// modifyCart loads the user's cart, applies op and persists the result.
func (s *Server) modifyCart(op func(*shop.Cart, shop.Item, int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req modifyCartReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		ctx := r.Context()

		u, err := s.store.UserByUsername(ctx, req.Username)
		if err != nil {
			notFoundOr500(w, r, err, "find user")
			return
		}
		item, err := s.store.ItemByID(ctx, req.ItemID)
		if err != nil {
			notFoundOr500(w, r, err, "find item")
			return
		}
		cart, err := s.store.Cart(ctx, u.ID)
		if err != nil {
			internalError(w, r, err, "load cart")
			return
		}
		if err := op(cart, *item, req.Quantity); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := s.store.SaveCart(ctx, cart); err != nil {
			internalError(w, r, err, "save cart")
			return
		}
		writeJSON(w, http.StatusOK, cart)
	}
}

func notFoundOr500(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	internalError(w, r, err, msg)
}
