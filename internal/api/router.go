package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/identity-platform/auth-service/docs"
	"github.com/identity-platform/auth-service/internal/api/handler"
	"github.com/identity-platform/auth-service/internal/api/middleware"
	"github.com/identity-platform/auth-service/internal/core/ports"
	"github.com/identity-platform/auth-service/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router wires into handlers and
// middleware. All services are constructed in main; the router only binds
// them to routes.
type Dependencies struct {
	Auth            ports.AuthService
	Access          ports.AccessService
	User            ports.UserService
	ServiceAccounts ports.ServiceAccountService
	Bootstrap       ports.BootstrapService

	Tokens   ports.TokenService
	Users    ports.UserRepository
	Accounts ports.ServiceAccountRepository

	DB    *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("authservice"))

	// --- Auth middlewares, one per token family ---
	accessAuth := middleware.Auth(deps.Tokens, deps.Users, ports.TokenUserAccess)
	refreshAuth := middleware.Auth(deps.Tokens, deps.Users, ports.TokenUserRefresh)
	serviceAuth := middleware.ServiceAuth(deps.Tokens, deps.Accounts)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	accessHandler := handler.NewAccessHandler(deps.Access)
	userHandler := handler.NewUserHandler(deps.User)
	accountHandler := handler.NewServiceAccountHandler(deps.ServiceAccounts)
	bootstrapHandler := handler.NewBootstrapHandler(deps.Bootstrap)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/authenticate", authHandler.Authenticate)
	auth.GET("/access", accessHandler.Serve, refreshAuth)
	auth.POST("/service-account/authenticate", accountHandler.Authenticate)
	auth.POST("/internal/bootstrap", bootstrapHandler.Bootstrap)

	// --- User routes ---
	user := e.Group("/api/user")
	user.POST("/enable", userHandler.Enable)
	user.POST("/send-password-reset", userHandler.SendPasswordReset)
	user.POST("/reset-password", userHandler.ResetPassword, serviceAuth)

	user.POST("/update-password", userHandler.UpdatePassword, accessAuth)
	user.POST("/update-email", userHandler.UpdateEmail, accessAuth)
	user.POST("/update-username", userHandler.UpdateUsername, accessAuth)
	user.POST("/update-role", userHandler.UpdateRole, accessAuth)
	user.POST("/add-authorizations", userHandler.AddAuthorizations, accessAuth)
	user.POST("/remove-authorizations", userHandler.RemoveAuthorizations, accessAuth)
	user.POST("/disable", userHandler.Disable, accessAuth)
	user.POST("/delete", userHandler.Delete, accessAuth)
	user.GET("/search", userHandler.Search, accessAuth)
	user.GET("/id", userHandler.GetID, accessAuth)
	user.POST("/details", userHandler.Details, accessAuth)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
