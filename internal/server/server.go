// Package server exposes the storefront REST API: catalog, accounts,
// per-account cart and the two purchase paths.
package server

import (
	"net/http"

	"github.com/nordicgeeks/storefront/internal/port"
	"github.com/nordicgeeks/storefront/internal/service"
	"go.uber.org/zap"
)

type Server struct {
	auth     *service.Auth
	cart     *service.Cart
	checkout *service.Checkout
	products port.ProductRepository
	logger   *zap.Logger
}

func New(auth *service.Auth, cart *service.Cart, checkout *service.Checkout, products port.ProductRepository, logger *zap.Logger) *Server {
	return &Server{
		auth:     auth,
		cart:     cart,
		checkout: checkout,
		products: products,
		logger:   logger,
	}
}

// Handler wires the routes. Identity is a plain username carried in each
// request; no token is issued.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleWelcome)
	mux.HandleFunc("GET /products", s.handleListProducts)

	mux.HandleFunc("POST /accounts", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)

	mux.HandleFunc("POST /cart/{productId}", s.handleCartAdd)
	mux.HandleFunc("PUT /cart/{productId}", s.handleCartSetQuantity)
	mux.HandleFunc("DELETE /cart/{productId}", s.handleCartRemove)
	mux.HandleFunc("GET /cart", s.handleCartView)
	mux.HandleFunc("DELETE /cart", s.handleCartClear)

	mux.HandleFunc("POST /checkout", s.handleCheckout)
	mux.HandleFunc("POST /purchase/{productId}", s.handlePurchase)
	mux.HandleFunc("GET /purchases/{username}", s.handleHistory)

	return corsMiddleware(s.logRequests(mux))
}
