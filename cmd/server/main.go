// Command server runs the storefront REST API.
//
// Configuration comes from the environment:
//
//	PORT         listen port (default 8080)
//	DATABASE_URL postgres connection string (required)
//	CURRENCY     ISO 4217 code for derived amounts (default NOK)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nordicgeeks/storefront/internal/repository"
	"github.com/nordicgeeks/storefront/internal/server"
	"github.com/nordicgeeks/storefront/internal/service"
	"github.com/nordicgeeks/storefront/migrations"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return errors.New("DATABASE_URL is required")
	}

	cur := currency.NOK
	if code := os.Getenv("CURRENCY"); code != "" {
		parsed, err := currency.ParseISO(code)
		if err != nil {
			return err
		}
		cur = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		return err
	}

	accounts := repository.NewAccount(pool)
	products := repository.NewProduct(pool)
	carts := repository.NewCart(pool)
	purchases := repository.NewPurchase(pool)

	auth := service.NewAuth(accounts)
	cart := service.NewCart(accounts, products, carts, cur)
	checkout := service.NewCheckout(pool, accounts, products, purchases)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server.New(auth, cart, checkout, products, logger).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("currency", cur.String()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
