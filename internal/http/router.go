package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	accountHandler "github.com/alisson/payable/internal/http/account"
	authHandler "github.com/alisson/payable/internal/http/auth"
	"github.com/alisson/payable/internal/http/middleware"
)

func New(
	accounts *accountHandler.Handler,
	auth *authHandler.Handler,
	verifier middleware.TokenVerifier,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/auth", func(r chi.Router) {
		r.Use(chimiddleware.AllowContentType("application/json"))
		auth.Routes(r)
	})

	router.Route("/api/accounts", func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		accounts.Routes(r)
	})

	return router
}
