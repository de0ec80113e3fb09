package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/alisson/payable/internal/account"
	accountStore "github.com/alisson/payable/internal/account/store"
	"github.com/alisson/payable/internal/auth"
	authStore "github.com/alisson/payable/internal/auth/store"
	"github.com/alisson/payable/internal/config"
	"github.com/alisson/payable/internal/database"
	payableHttp "github.com/alisson/payable/internal/http"
	accountHandler "github.com/alisson/payable/internal/http/account"
	authHandler "github.com/alisson/payable/internal/http/auth"
	"github.com/alisson/payable/internal/importer"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		accountService = account.NewService(accountStore.New(db))
		importService  = importer.NewService(accountService)
		authService    = auth.NewService(authStore.New(db), cfg.JWT.Secret, cfg.JWT.TTL)
	)

	var (
		accountH = accountHandler.NewHandler(accountService, importService)
		authH    = authHandler.NewHandler(authService)
	)

	router := payableHttp.New(accountH, authH, authService)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
