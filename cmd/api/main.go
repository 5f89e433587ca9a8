package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinidesk/scheduling-api/internal/config"
	"github.com/clinidesk/scheduling-api/internal/email"
	"github.com/clinidesk/scheduling-api/internal/handler"
	authHandler "github.com/clinidesk/scheduling-api/internal/handler/auth"
	bookingHandler "github.com/clinidesk/scheduling-api/internal/handler/booking"
	clinicHandler "github.com/clinidesk/scheduling-api/internal/handler/clinic"
	scheduleHandler "github.com/clinidesk/scheduling-api/internal/handler/schedule"
	"github.com/clinidesk/scheduling-api/internal/middleware"
	"github.com/clinidesk/scheduling-api/internal/repository/postgres"
	"github.com/clinidesk/scheduling-api/internal/router"
	authService "github.com/clinidesk/scheduling-api/internal/service/auth"
	bookingService "github.com/clinidesk/scheduling-api/internal/service/booking"
	clinicService "github.com/clinidesk/scheduling-api/internal/service/clinic"
	"github.com/clinidesk/scheduling-api/internal/service/notification"
	scheduleService "github.com/clinidesk/scheduling-api/internal/service/schedule"
	"github.com/clinidesk/scheduling-api/pkg/logger"
	redisBroker "github.com/clinidesk/scheduling-api/pkg/messaging/redis"
	"github.com/clinidesk/scheduling-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{Level: logger.InfoLevel})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{URL: cfg.Redis.URL}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	// Repositories
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	clinicRepo := postgres.NewClinicRepository(db)
	patientRepo := postgres.NewPatientRepository(db)

	// Services
	emailSvc := email.NewSMTPService(cfg.SMTP)
	notifSvc := notification.NewService(emailSvc, broker, patientRepo, *appLogger.Zerolog())
	scheduleSvc := scheduleService.NewService(availabilityRepo, bookingRepo, doctorRepo, clinicRepo)
	bookingSvc := bookingService.NewService(bookingRepo, doctorRepo, clinicRepo, patientRepo, notifSvc, *appLogger.Zerolog())
	clinicSvc := clinicService.NewService(clinicRepo)
	authSvc := authService.NewService(doctorRepo, cfg.JWT)

	// Metrics
	m := metrics.NewMetrics("scheduling")

	// Handlers
	authH := authHandler.NewHandler(authSvc)
	scheduleH := scheduleHandler.NewHandler(scheduleSvc, m)
	bookingH := bookingHandler.NewHandler(bookingSvc, m)
	clinicH := clinicHandler.NewHandler(clinicSvc)
	healthH := handler.NewHealthHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	routerConfig := router.DefaultRouterConfig()
	if cfg.Server.TimeoutSeconds > 0 {
		routerConfig.Timeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	}

	r := router.NewRouter(authMiddleware, authH, scheduleH, bookingH, clinicH, healthH, routerConfig)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
