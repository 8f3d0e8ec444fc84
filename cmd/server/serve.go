package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tradeReportBackend/internal/auth"
	"tradeReportBackend/internal/config"
	"tradeReportBackend/internal/db"
	"tradeReportBackend/internal/health"
	"tradeReportBackend/internal/httpapi"
	"tradeReportBackend/internal/service"
	"tradeReportBackend/repository"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (and the gRPC health server when GRPC_ADDRESS is set)",
	RunE:  runServe,
}

// buildAPI wires repositories, services and the auth chain from the configuration.
func buildAPI(cfg *config.Config, d *sql.DB) (*httpapi.API, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}
	hasher, err := auth.NewHasher(cfg.Auth.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &httpapi.API{
		Accounts: &service.AccountService{Users: repository.NewUserRepository(d), Hasher: hasher, Tokens: tokens},
		Reports:  &service.ReportService{Reports: repository.NewReportRepository(d)},
		Signals:  &service.SignalService{Signals: repository.NewSignalRepository(d), Secret: cfg.Webhook.Secret},
		Auth:     &auth.Authenticator{Tokens: tokens},
	}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}()

	api, err := buildAPI(cfg, d)
	if err != nil {
		return err
	}

	shutdownHTTP, addr, err := httpapi.StartHTTP(cfg.HTTP.Address, httpapi.Wrap(api.NewRouter(), cfg.HTTP.AllowedOrigins, os.Stdout))
	if err != nil {
		return fmt.Errorf("start http: %w", err)
	}
	log.Printf("HTTP server listening on %s", addr)

	shutdownGRPC := func(context.Context) error { return nil }
	if cfg.GRPC.Address != "" {
		var grpcAddr string
		shutdownGRPC, grpcAddr, err = health.StartGRPC(cfg.GRPC.Address, d)
		if err != nil {
			return fmt.Errorf("start grpc health: %w", err)
		}
		log.Printf("gRPC health server listening on %s", grpcAddr)
	}

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownHTTP(ctx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := shutdownGRPC(ctx); err != nil {
		log.Printf("grpc shutdown error: %v", err)
	}
	return nil
}
