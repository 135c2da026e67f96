package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/category"
	"github.com/stockdeck/stockdeck/internal/config"
	"github.com/stockdeck/stockdeck/internal/gateway"
	"github.com/stockdeck/stockdeck/internal/localstore"
	"github.com/stockdeck/stockdeck/internal/middleware"
	"github.com/stockdeck/stockdeck/internal/notify"
	"github.com/stockdeck/stockdeck/internal/session"
	"github.com/stockdeck/stockdeck/internal/shelf"
	"github.com/stockdeck/stockdeck/internal/store"
	"github.com/stockdeck/stockdeck/internal/worker"
)

// main is the entrypoint for the stockdeck sync daemon.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting stockdeck syncd")

	// 3. Open local store and apply migrations
	local, err := localstore.Open(cfg.Store.Path)
	if err != nil {
		log.Error().Err(err).Msg("local store open failed")
		fmt.Fprintf(os.Stderr, "local store open failed: %v\n", err)
		os.Exit(1)
	}
	defer local.Close()
	log.Info().Str("path", cfg.Store.Path).Msg("local store ready")

	// 4. Build session scopes: durable is always the local store, session is
	// Redis when configured, in-memory otherwise.
	sessionScope := session.NewMemoryScope(cfg.Session.TTL)
	if cfg.Redis.Host != "" {
		sessionScope, err = session.NewRedisScope(&cfg.Redis, cfg.Session.TTL)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		log.Info().Msg("redis session scope connected")
	}
	sessions := session.New(session.NewDurableScope(local), sessionScope)

	// 5. Upstream client
	client := api.NewClient(&cfg.Upstream, sessions, cfg.Env)

	// 6. Notification hub
	hub := notify.NewHub()
	notifier := notify.NewHubNotifier(hub)

	// 7. State layer
	products := store.New(client, notifier, cfg.Sync.PageSize)
	shelves := shelf.New(&cfg.Upstream, client, local, sessions)
	categories := category.NewProvider(client, sessions, category.NewVisualStore(local), notifier)

	// 8. Initialize handlers
	handlers := &Handlers{
		Health:     gateway.NewHealthHandler(),
		Session:    gateway.NewSessionHandler(sessions, client),
		Product:    gateway.NewProductHandler(products),
		Shelf:      gateway.NewShelfHandler(shelves),
		Category:   gateway.NewCategoryHandler(categories),
		Invitation: gateway.NewInvitationHandler(client),
		Events:     gateway.NewEventsHandler(hub),
	}

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, middleware.NewSessionGuard(sessions))

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Optional background refresh
	if cfg.Sync.RefreshInterval > 0 {
		go worker.NewRefreshWorker(products, cfg.Sync.RefreshInterval).Start(ctx)
	}

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health     *gateway.HealthHandler
	Session    *gateway.SessionHandler
	Product    *gateway.ProductHandler
	Shelf      *gateway.ShelfHandler
	Category   *gateway.CategoryHandler
	Invitation *gateway.InvitationHandler
	Events     *gateway.EventsHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, guard *middleware.SessionGuard) {
	router.GET("/health", handlers.Health.GetHealth)

	// Session routes: login must work while signed out.
	router.POST("/api/v1/session/login", handlers.Session.Login)

	v1 := router.Group("/api/v1")
	v1.Use(guard.Handle())
	{
		v1.POST("/session/logout", handlers.Session.Logout)
		v1.GET("/session", handlers.Session.GetSession)

		v1.GET("/organizations", handlers.Session.GetOrganizations)
		v1.POST("/organizations/select", handlers.Session.SelectOrganization)

		v1.GET("/products", handlers.Product.GetProducts)
		v1.GET("/products/stats", handlers.Product.GetStats)
		v1.POST("/products", handlers.Product.CreateProduct)
		v1.PATCH("/products/:id", handlers.Product.UpdateProduct)
		v1.DELETE("/products/:id", handlers.Product.DeleteProduct)
		v1.POST("/products/:id/restock", handlers.Product.RestockProduct)
		v1.POST("/products/:id/consume", handlers.Product.ConsumeProduct)
		v1.POST("/products/:id/check-out", handlers.Product.CheckOutProduct)
		v1.POST("/products/:id/check-in", handlers.Product.CheckInProduct)
		v1.PUT("/products/selection", handlers.Product.SetSelection)
		v1.DELETE("/products/selection", handlers.Product.ClearSelection)

		v1.GET("/shelves", handlers.Shelf.GetShelves)
		v1.POST("/shelves", handlers.Shelf.CreateShelf)
		v1.PATCH("/shelves/:id", handlers.Shelf.UpdateShelf)
		v1.DELETE("/shelves/:id", handlers.Shelf.DeleteShelf)
		v1.GET("/shelves/:id/products", handlers.Shelf.GetShelfProducts)
		v1.POST("/shelves/:id/products", handlers.Shelf.AddShelfProduct)
		v1.PATCH("/shelves/:id/products/:productId", handlers.Shelf.UpdateShelfProduct)
		v1.DELETE("/shelves/:id/products/:productId", handlers.Shelf.RemoveShelfProduct)

		v1.GET("/categories", handlers.Category.GetCategories)
		v1.POST("/categories", handlers.Category.CreateCategory)
		v1.PATCH("/categories/:id", handlers.Category.UpdateCategory)
		v1.DELETE("/categories/:id", handlers.Category.DeleteCategory)

		v1.GET("/invitations", handlers.Invitation.GetInvitations)
		v1.POST("/invitations", handlers.Invitation.CreateInvitation)
		v1.DELETE("/invitations/:id", handlers.Invitation.RevokeInvitation)

		v1.GET("/events", handlers.Events.Stream)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
