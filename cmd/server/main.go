package main

import (
	"context"
	"fmt"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/crypto"
	"github.com/avdeevsm/go-vault-core/internal/handler"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/mailer"
	"github.com/avdeevsm/go-vault-core/internal/server"
	"github.com/avdeevsm/go-vault-core/internal/service"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/internal/store"
	"github.com/avdeevsm/go-vault-core/internal/utils"
	"github.com/avdeevsm/go-vault-core/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	utils.InitHasherPool(cfg.App.PasswordHashKey)

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	engine, err := crypto.NewCipherEngine(crypto.Suite(cfg.App.CipherSuite))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cipher engine")
	}

	sessions := session.NewRegistry(cfg.Unlock.SessionTTL)
	limiter := session.NewAttemptLimiter(cfg.Unlock.MaxAttempts, cfg.Unlock.AttemptWindow)
	mail := mailer.NewSMTPMailer(cfg.Reset.SMTP, log)

	services := service.NewServices(*storages, engine, sessions, limiter, mail, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(storages, limiter, cfg.Workers, log).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
