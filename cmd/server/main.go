package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/insureline/policy-admin/internal/api"
	"github.com/insureline/policy-admin/internal/core/service"
	mongodb "github.com/insureline/policy-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/insureline/policy-admin/internal/infrastructure/db/redis"
	"github.com/insureline/policy-admin/internal/infrastructure/payment"
	"github.com/insureline/policy-admin/internal/infrastructure/scheduler"
	"github.com/insureline/policy-admin/internal/pkg/config"
	"github.com/insureline/policy-admin/pkg/logger"
)

// @title Policy Administration API
// @version 1.0
// @description Insurance policy catalog, claims and payment administration.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	productRepo := mongodb.NewProductRepository(db)
	policyRepo := mongodb.NewUserPolicyRepository(db)
	claimRepo := mongodb.NewClaimRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"policy_products": productRepo.EnsureIndexes,
		"user_policies":   policyRepo.EnsureIndexes,
		"claims":          claimRepo.EnsureIndexes,
		"payments":        paymentRepo.EnsureIndexes,
		"audit_trail":     auditRepo.EnsureIndexes,
		"users":           userRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Core services ---
	clock := service.SystemClock()
	processor := payment.NewSimulatedProcessor(time.Duration(cfg.PaymentDelayMS)*time.Millisecond, log)
	dedup := redisdb.NewPaymentDedup(rdb)

	catalogSvc := service.NewCatalogService(productRepo, policyRepo, clock, log)
	policySvc := service.NewPolicyService(policyRepo, productRepo, clock, log)
	claimSvc := service.NewClaimService(claimRepo, policyRepo, clock, log)
	assignmentSvc := service.NewAssignmentService(claimRepo, userRepo, log)
	paymentSvc := service.NewPaymentService(paymentRepo, policyRepo, processor, dedup, clock, log)
	auditSvc := service.NewAuditService(auditRepo, clock, log)
	authSvc := service.NewAuthService(userRepo, clock, cfg.JWTSecret, 24*time.Hour)

	// --- Background jobs ---
	sweeper := scheduler.NewExpirySweeper(policyRepo, cfg.ExpiryCron, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("expiry sweeper failed to start")
	}
	defer sweeper.Stop()

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Catalog:     catalogSvc,
		Policies:    policySvc,
		Claims:      claimSvc,
		Assignments: assignmentSvc,
		Payments:    paymentSvc,
		Audit:       auditSvc,
		Auth:        authSvc,
		Mongo:       db,
		Redis:       rdb,
		JWTSecret:   cfg.JWTSecret,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
