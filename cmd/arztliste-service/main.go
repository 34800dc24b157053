package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/medflow/arztliste/internal/arztliste/events"
	"github.com/medflow/arztliste/internal/arztliste/handler"
	"github.com/medflow/arztliste/internal/arztliste/service"
	"github.com/medflow/arztliste/pkg/config"
	"github.com/medflow/arztliste/pkg/httputil"
	"github.com/medflow/arztliste/pkg/i18n"
	"github.com/medflow/arztliste/pkg/logger"
	"github.com/medflow/arztliste/pkg/messaging"
	"github.com/medflow/arztliste/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "arztliste-service"

func main() {
	// Load configuration with validation (fails fast in production if the broker is misconfigured)
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Server.Environment)
	log.Info().Msg("starting Arztliste Service")
	if cfg.Server.IsDevelopment() {
		log.Debug().Strs("cors_allowed_origins", cfg.Server.CORSAllowedOrigins).Msg("running in development mode")
	}

	// RabbitMQ is optional, reports are still served without it
	var rmq *messaging.RabbitMQ
	var publisher *events.ReportEventPublisher
	if cfg.RabbitMQ.Enabled {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		publisher, err = events.NewReportEventPublisher(rmq, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
	}

	var conversionMetrics *metrics.ConversionMetrics
	if cfg.Metrics.Enabled {
		conversionMetrics = metrics.NewConversionMetrics(nil)
	}

	converter := service.NewConverter(publisher, conversionMetrics, log,
		service.WithPhoneRegion(cfg.Report.PhoneRegion),
	)
	defaultTypes, err := domain.ParseConsultationTypeNames(cfg.Report.ConsultationTypes)
	if err != nil {
		log.Fatal().Err(err).Strs("consultation_types", cfg.Report.ConsultationTypes).Msg("invalid default consultation types")
	}
	reportHandler := handler.NewHandler(converter, cfg.Server.MaxUploadSize, defaultTypes, log)

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Doctors-Written", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(i18n.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"status":  "healthy",
			"service": serviceName,
		}
		if rmq != nil {
			status["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, status)
	})

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	r.Route("/api/v1", reportHandler.Routes)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
