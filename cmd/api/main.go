package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mergingtonactivities/config"
	_ "mergingtonactivities/docs"
	"mergingtonactivities/internal/adapters/catalog"
	"mergingtonactivities/internal/adapters/email"
	deliveryhttp "mergingtonactivities/internal/delivery/http"
	"mergingtonactivities/internal/delivery/http/controllers"
	"mergingtonactivities/internal/domain"
	"mergingtonactivities/internal/metrics"
	"mergingtonactivities/internal/repository/memory"
	"mergingtonactivities/internal/seed"
	"mergingtonactivities/internal/services"
	"mergingtonactivities/web"
)

// @title Mergington High School Activities API
// @version 1.0
// @description List extracurricular activities and manage student signups.
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	activities, err := loadSeed(cfg)
	if err != nil {
		return err
	}
	repo, err := memory.NewActivityRepository(activities)
	if err != nil {
		return fmt.Errorf("init activity store: %w", err)
	}
	logger.Info("activity directory seeded", "activities", len(activities), "source", seedSource(cfg))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)
	for _, a := range activities {
		recorder.SetParticipants(a.Name, len(a.Participants))
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	activitySvc := services.NewActivityService(repo, emailSvc, recorder, logger, services.ActivityServiceOptions{
		EnforceCapacity: cfg.EnforceCapacity,
		Timeout:         cfg.RequestTimeout,
	})
	activityCtrl := controllers.NewActivityController(logger, activitySvc)

	static, err := fs.Sub(web.Assets, "static")
	if err != nil {
		return fmt.Errorf("load static assets: %w", err)
	}
	mux := deliveryhttp.NewRouter(activityCtrl, static, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           deliveryhttp.Chain(mux, logger, cfg.CORSOrigins, recorder),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", server.Addr, "env", cfg.Environment, "enforce_capacity", cfg.EnforceCapacity)
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func loadSeed(cfg *config.Config) (domain.ActivityList, error) {
	switch {
	case cfg.SeedURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		activities, err := catalog.NewHTTPFetcher(&http.Client{Timeout: cfg.RequestTimeout}).Fetch(ctx, cfg.SeedURL)
		if err != nil {
			return nil, fmt.Errorf("fetch seed %s: %w", cfg.SeedURL, err)
		}
		return activities, nil
	case cfg.SeedFile != "":
		activities, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed %s: %w", cfg.SeedFile, err)
		}
		return activities, nil
	default:
		activities, err := seed.Default()
		if err != nil {
			return nil, fmt.Errorf("load default seed: %w", err)
		}
		return activities, nil
	}
}

func seedSource(cfg *config.Config) string {
	switch {
	case cfg.SeedURL != "":
		return cfg.SeedURL
	case cfg.SeedFile != "":
		return cfg.SeedFile
	default:
		return "built-in"
	}
}
