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
	"golang.org/x/time/rate"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/config"
	"github.com/clinicflow/clinic-api/internal/email"
	appointmentHandler "github.com/clinicflow/clinic-api/internal/handler/appointment"
	authHandler "github.com/clinicflow/clinic-api/internal/handler/auth"
	billingHandler "github.com/clinicflow/clinic-api/internal/handler/billing"
	doctorHandler "github.com/clinicflow/clinic-api/internal/handler/doctor"
	healthHandler "github.com/clinicflow/clinic-api/internal/handler/health"
	managementHandler "github.com/clinicflow/clinic-api/internal/handler/management"
	patientHandler "github.com/clinicflow/clinic-api/internal/handler/patient"
	prescriptionHandler "github.com/clinicflow/clinic-api/internal/handler/prescription"
	"github.com/clinicflow/clinic-api/internal/middleware"
	"github.com/clinicflow/clinic-api/internal/repository/postgres"
	redisrepo "github.com/clinicflow/clinic-api/internal/repository/redis"
	"github.com/clinicflow/clinic-api/internal/router"
	accountService "github.com/clinicflow/clinic-api/internal/service/account"
	appointmentService "github.com/clinicflow/clinic-api/internal/service/appointment"
	authService "github.com/clinicflow/clinic-api/internal/service/auth"
	billingService "github.com/clinicflow/clinic-api/internal/service/billing"
	patientService "github.com/clinicflow/clinic-api/internal/service/patient"
	prescriptionService "github.com/clinicflow/clinic-api/internal/service/prescription"
	"github.com/clinicflow/clinic-api/pkg/auth"
	"github.com/clinicflow/clinic-api/pkg/logger"
	"github.com/clinicflow/clinic-api/pkg/metrics"
	"github.com/clinicflow/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Pretty)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	tokenRepo, err := redisrepo.NewTokenRepository(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	smtpCfg, err := email.LoadSMTPConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load smtp configuration")
	}
	emailSvc := email.NewSMTPService(smtpCfg)

	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	billingRepo := postgres.NewBillingRepository(db)

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	hasher := security.NewBcryptHasher(security.DefaultBcryptCost)
	guard := authz.NewGuard()

	authSvc := authService.NewService(userRepo, doctorRepo, tokenRepo, jwtSvc, hasher)
	accountSvc := accountService.NewService(userRepo, doctorRepo, hasher, emailSvc, guard)
	patientSvc := patientService.NewService(patientRepo, guard)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo, guard)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, appointmentRepo, guard)
	billingSvc := billingService.NewService(billingRepo, guard)

	m := metrics.NewMetrics("clinic")
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		m,
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(db),
		router.Config{
			RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst: cfg.RateLimit.Burst,
			CORS:      middleware.DefaultCORSConfig(),
		},
		doctorHandler.NewHandler(accountSvc),
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc, m),
		prescriptionHandler.NewHandler(prescriptionSvc, m),
		billingHandler.NewHandler(billingSvc),
		managementHandler.NewHandler(accountSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
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
