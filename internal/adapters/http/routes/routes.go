package routes

import (
	"libralend/internal/adapters/http/handlers"
	"libralend/internal/adapters/http/middleware"
	"libralend/internal/adapters/memstore"
	"libralend/internal/config"
	"libralend/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Stores bundles the in-memory stores shared between the HTTP layer and the
// background services.
type Stores struct {
	Books         *memstore.BookStore
	Members       *memstore.MemberStore
	History       *memstore.HistoryStore
	Users         *memstore.UserStore
	RefreshTokens *memstore.RefreshTokenStore
}

// NewStores creates the full set of empty stores.
func NewStores() *Stores {
	return &Stores{
		Books:         memstore.NewBookStore(),
		Members:       memstore.NewMemberStore(),
		History:       memstore.NewHistoryStore(),
		Users:         memstore.NewUserStore(),
		RefreshTokens: memstore.NewRefreshTokenStore(),
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, stores *Stores, overdueService *services.OverdueService, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(stores.Users, stores.RefreshTokens, cfg)
	catalogService := services.NewCatalogService(stores.Books, cfg)
	memberService := services.NewMemberService(stores.Members, stores.Books, cfg)
	lendingService := services.NewLendingService(stores.Books, stores.Members, stores.History, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(stores.Books, stores.Members, stores.History)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	memberHandler := handlers.NewMemberHandler(memberService)
	lendingHandler := handlers.NewLendingHandler(lendingService, overdueService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Catalog routes: reads are public, writes and lending need staff auth
	bookRoutes := apiV1.Group("/books")
	setupBookRoutes(bookRoutes, catalogHandler, lendingHandler, cfg)

	// Member routes (staff only)
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	memberRoutes.Use(middleware.LibrarianOrAdmin())
	setupMemberRoutes(memberRoutes, memberHandler)

	// Lending history routes (staff only)
	lendingRoutes := apiV1.Group("/lending")
	lendingRoutes.Use(middleware.AuthMiddleware(cfg))
	lendingRoutes.Use(middleware.LibrarianOrAdmin())
	setupLendingRoutes(lendingRoutes, lendingHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout", middleware.AuthMiddleware(cfg), handler.Logout)
	router.Post("/users", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), handler.CreateUser)
}

// setupBookRoutes configures catalog and per-copy lending routes
func setupBookRoutes(router fiber.Router, catalogHandler *handlers.CatalogHandler, lendingHandler *handlers.LendingHandler, cfg *config.Config) {
	// Public catalog reads
	router.Get("/", catalogHandler.ListBooks)
	router.Get("/:isbn", catalogHandler.GetBook)
	router.Get("/:isbn/copies", catalogHandler.ListCopies)
	router.Get("/:isbn/availability", catalogHandler.Availability)

	// Staff routes
	staffRoutes := router.Group("")
	staffRoutes.Use(middleware.AuthMiddleware(cfg))
	staffRoutes.Use(middleware.LibrarianOrAdmin())

	staffRoutes.Post("/", catalogHandler.AddBook)
	staffRoutes.Post("/:isbn/copies", catalogHandler.AddCopy)
	staffRoutes.Delete("/:isbn/copies/:number", catalogHandler.RemoveCopy)
	staffRoutes.Put("/:isbn/copies/:number/location", catalogHandler.RelocateCopy)

	// Lending transactions on a copy
	staffRoutes.Post("/:isbn/copies/:number/issue", lendingHandler.Issue)
	staffRoutes.Post("/:isbn/copies/:number/return", lendingHandler.Return)
	staffRoutes.Post("/:isbn/copies/:number/reserve", lendingHandler.Reserve)
	staffRoutes.Delete("/:isbn/copies/:number/reserve", lendingHandler.CancelReservation)
	staffRoutes.Post("/:isbn/copies/:number/offer", lendingHandler.OfferNext)
}

// setupMemberRoutes configures member management routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Post("/", handler.Register)
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Delete("/:id", handler.Remove)
	router.Post("/:id/renew", handler.Renew)
	router.Post("/:id/cancel", handler.Cancel)
}

// setupLendingRoutes configures the lending history routes
func setupLendingRoutes(router fiber.Router, handler *handlers.LendingHandler) {
	router.Get("/issuances", handler.IssuanceHistory)
	router.Get("/reservations", handler.ReservationHistory)
	router.Get("/overdue", handler.OverdueReport)
}
