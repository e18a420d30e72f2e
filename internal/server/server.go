package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// HealthCheck pings one backing dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Options struct {
	CORSOrigins   string
	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
	CookieSecure  bool
	AdminEmails   []string
}

// Deps are the long-lived resources the API is built on. Provider,
// Publisher and Metrics may be nil.
type Deps struct {
	DB        *gorm.DB
	Sessions  services.SessionStore
	Provider  services.IdentityProvider
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Logger    *logger.Logger
	Checks    []HealthCheck
	Options   Options
}

// Server is the assembled HTTP API.
type Server struct {
	App  *fiber.App
	Auth *services.AuthService
}

// New wires repositories, services and handlers onto a Fiber app.
func New(deps Deps) *Server {
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	reviewRepo := repositories.NewGORMReviewRepository(deps.DB)
	cartRepo := repositories.NewGORMCartRepository(deps.DB)
	wishlistRepo := repositories.NewGORMWishlistRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	couponRepo := repositories.NewGORMCouponRepository(deps.DB)
	statsRepo := repositories.NewGORMStatsRepository(deps.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, deps.Sessions, deps.Provider, services.AuthConfig{
		Secret:      deps.Options.SessionSecret,
		TTL:         deps.Options.SessionTTL,
		AdminEmails: deps.Options.AdminEmails,
	})
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, deps.Publisher, deps.Metrics, logg)
	couponService := services.NewCouponService(couponRepo)
	dashboardService := services.NewDashboardService(statsRepo)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: handlers.ErrorHandler(logg),
	})

	// Panics are recovered inside the request logger so they are logged and
	// counted with their final status.
	app.Use(middleware.Metrics(deps.Metrics))
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(logg))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Options.CORSOrigins,
		AllowCredentials: deps.Options.CORSOrigins != "" && deps.Options.CORSOrigins != "*",
	}))

	app.Get("/health", healthHandler(deps.Checks))
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	guards := handlers.Guards{
		Authenticated: middleware.AuthRequired(authService, deps.Options.CookieName),
		User:          middleware.LoadUser(authService),
		Admin:         middleware.AdminRequired(authService),
	}

	api := app.Group("/api")
	handlers.NewAuthHandler(authService, handlers.CookieConfig{
		Name:   deps.Options.CookieName,
		Secure: deps.Options.CookieSecure,
	}, logg).RegisterRoutes(api, guards)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, guards)
	handlers.NewProductHandler(productService).RegisterRoutes(api, guards)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(api, guards)
	handlers.NewCartHandler(cartService).RegisterRoutes(api, guards)
	handlers.NewWishlistHandler(wishlistService).RegisterRoutes(api, guards)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, guards)
	handlers.NewCouponHandler(couponService).RegisterRoutes(api, guards)
	handlers.NewDashboardHandler(dashboardService).RegisterRoutes(api, guards)

	return &Server{App: app, Auth: authService}
}

func healthHandler(checks []HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.StatusOK
		results := fiber.Map{}
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				status = fiber.StatusServiceUnavailable
				results[check.Name] = err.Error()
				continue
			}
			results[check.Name] = "ok"
		}

		state := "healthy"
		if status != fiber.StatusOK {
			state = "unhealthy"
		}
		return c.Status(status).JSON(fiber.Map{
			"status": state,
			"checks": results,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
