package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nordicgeeks/storefront/internal/domain"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type cartRequest struct {
	Username string `json:"username"`
	Quantity int32  `json:"quantity"`
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Welcome to the Nordic Geeks API!")) //nolint:errcheck
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.ListProducts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := s.auth.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	account, err := s.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "username": account.Username})
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	productID, err := pathProductID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req cartRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.cart.Add(r.Context(), req.Username, productID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleCartSetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := pathProductID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req cartRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.cart.SetQuantity(r.Context(), req.Username, productID, req.Quantity); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	productID, err := pathProductID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req cartRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.cart.Remove(r.Context(), req.Username, productID); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	cart, err := s.cart.View(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.cart.Clear(r.Context(), req.Username); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	units, err := s.checkout.CheckoutAll(r.Context(), req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "unitsPurchased": units})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	productID, err := pathProductID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req cartRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	purchaseID, err := s.checkout.PurchaseOne(r.Context(), req.Username, productID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "purchaseId": purchaseID})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	products, err := s.checkout.History(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validationf("invalid JSON body")
	}
	return nil
}

func pathProductID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid product id")
	}
	return id, nil
}
