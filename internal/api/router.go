package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/insureline/policy-admin/internal/api/handler"
	"github.com/insureline/policy-admin/internal/api/middleware"
	"github.com/insureline/policy-admin/internal/core/domain"
	"github.com/insureline/policy-admin/internal/core/ports"
)

// Dependencies carries everything the router needs; construction and wiring
// happen in main.
type Dependencies struct {
	Catalog     ports.CatalogService
	Policies    ports.PolicyService
	Claims      ports.ClaimService
	Assignments ports.AssignmentService
	Payments    ports.PaymentService
	Audit       ports.AuditService
	Auth        ports.AuthService

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("policyadmin"))

	auth := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleAgent)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Audit)
	productHandler := handler.NewProductHandler(deps.Catalog, deps.Audit)
	policyHandler := handler.NewPolicyHandler(deps.Policies, deps.Catalog, deps.Audit)
	claimHandler := handler.NewClaimHandler(deps.Claims, deps.Audit)
	assignmentHandler := handler.NewAssignmentHandler(deps.Assignments, deps.Audit)
	paymentHandler := handler.NewPaymentHandler(deps.Payments, deps.Audit)
	auditHandler := handler.NewAuditHandler(deps.Audit)

	// --- Auth routes (no token required; register reads an optional one) ---
	e.POST("/auth/register", authHandler.Register, optionalAuth(deps.JWTSecret))
	e.POST("/auth/login", authHandler.Login)

	v1 := e.Group("/v1", auth)

	// --- Catalog ---
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)
	v1.POST("/products", productHandler.Create, adminOnly)
	v1.PUT("/products/:id", productHandler.Update, adminOnly)
	v1.DELETE("/products/:id", productHandler.Delete, adminOnly)

	// --- Policies ---
	v1.POST("/policies", policyHandler.Purchase)
	v1.GET("/policies", policyHandler.List)
	v1.POST("/policies/:id/cancel", policyHandler.Cancel)

	// --- Claims (static segment before :id so /unassigned resolves first) ---
	v1.GET("/claims/unassigned", assignmentHandler.ListUnassigned, adminOnly)
	v1.POST("/claims", claimHandler.Create)
	v1.GET("/claims", claimHandler.List)
	v1.GET("/claims/:id", claimHandler.Get)
	v1.PUT("/claims/:id/status", claimHandler.UpdateStatus, staffOnly)
	v1.POST("/claims/:id/assign", assignmentHandler.Assign, adminOnly)

	// --- Agents ---
	v1.GET("/agents/workload", assignmentHandler.Workload, adminOnly)
	v1.GET("/agents/:id/claims", assignmentHandler.ListForAgent, staffOnly)

	// --- Payments ---
	v1.POST("/payments", paymentHandler.Record)
	v1.GET("/payments", paymentHandler.List)

	// --- Audit ---
	v1.GET("/audit", auditHandler.List, adminOnly)

	// --- Users ---
	v1.GET("/users", authHandler.ListUsers, adminOnly)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// optionalAuth resolves a bearer token when one is present but lets
// anonymous requests through. Registration uses it: self-registration is
// anonymous, while admins authenticate to create elevated accounts.
func optionalAuth(jwtSecret string) echo.MiddlewareFunc {
	authenticate := middleware.Auth(jwtSecret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			return authenticate(next)(c)
		}
	}
}
