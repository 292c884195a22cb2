package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filmboard/filmboard-api/pkg/config"
	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/filmboard/filmboard-api/pkg/db/queries"
	"github.com/filmboard/filmboard-api/pkg/handlers"
	"github.com/filmboard/filmboard-api/pkg/middleware"
	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	log.SetOutput(gin.DefaultWriter)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("Starting Filmboard API...")

	cfg := config.LoadConfig()

	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	store := queries.NewStore(db.DB)
	h := handlers.NewHandlers(store)

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(rate.NewLimiter(50, 100)))

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", h.SignUp)
			authRoutes.POST("/signin", h.SignIn)
		}

		movieRoutes := api.Group("/movies")
		{
			movieRoutes.GET("", h.ListMovies)
			movieRoutes.GET("/:id", h.GetMovie)
		}

		watchlistRoutes := api.Group("/watchlist")
		{
			watchlistRoutes.GET("", h.GetWatchlist)
			watchlistRoutes.POST("", h.AddToWatchlist)
			watchlistRoutes.DELETE("/remove", h.RemoveFromWatchlist)
			watchlistRoutes.PATCH("/watched", h.MarkWatched)
			watchlistRoutes.GET("/search", h.SearchWatchlist)
		}

		api.PATCH("/users/:id", h.UpdateProfile)

		// Admin routes are gated client-side only: the API is sessionless and
		// carries nothing a server-side role check could verify. See README.
		adminRoutes := api.Group("/admin")
		{
			adminRoutes.GET("/stats", h.GetStats)
			adminRoutes.GET("/users", h.ListUsers)
			adminRoutes.GET("/most-watchlisted", h.MostWatchlisted)
			adminRoutes.GET("/genre-stats", h.GetGenreStats)
			adminRoutes.GET("/user-growth", h.GetUserGrowth)
			adminRoutes.GET("/user-activity", h.GetUserActivity)
			adminRoutes.PATCH("/users/:id/role", h.UpdateUserRole)
			adminRoutes.DELETE("/users/:id", h.DeleteUser)
			adminRoutes.POST("/movies", h.CreateMovie)
			adminRoutes.PUT("/movies/:id", h.UpdateMovie)
			adminRoutes.DELETE("/movies/:id", h.DeleteMovie)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Server listening on %s:%s", cfg.Host, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited gracefully.")
}
