package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/podderSoykot/Saloon-chatbot/internal/config"
	"github.com/podderSoykot/Saloon-chatbot/internal/handler"
	"github.com/podderSoykot/Saloon-chatbot/internal/service"
	"github.com/podderSoykot/Saloon-chatbot/internal/storage"
	"github.com/podderSoykot/Saloon-chatbot/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "path to config file")
	flag.Parse()

	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	if cfg.Chatbot.APIURL == "" {
		logger.Fatalf("chatbot.api_url is not configured")
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	relayService := service.NewRelayService(cfg)
	bookingService := service.NewBookingService(store, cfg.Business)

	chatHandler := handler.NewChatHandler(relayService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	router := setupRouter(cfg, chatHandler, bookingHandler)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("server listening on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	if err := server.Close(); err != nil {
		logger.Errorf("shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	store, err := storage.NewSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.SeedFile != "" {
		data, err := storage.LoadSeedFile(cfg.Storage.SeedFile)
		if err != nil {
			store.Close()
			return nil, err
		}
		if err := store.Seed(context.Background(), data); err != nil {
			store.Close()
			return nil, err
		}
		logger.Infof("seeded storage from %s", cfg.Storage.SeedFile)
	}

	return store, nil
}

func setupRouter(cfg *config.Config, chatHandler *handler.ChatHandler, bookingHandler *handler.BookingHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	// Landing page and widget assets.
	router.StaticFile("/", filepath.Join(cfg.Web.Dir, "index.html"))
	router.Static("/static", filepath.Join(cfg.Web.Dir, "static"))

	api := router.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)

		api.GET("/services", bookingHandler.Services)
		api.GET("/availability", bookingHandler.Availability)
		api.GET("/weekly-availability", bookingHandler.WeeklyAvailability)

		api.GET("/book", bookingHandler.PrepareBooking)
		api.POST("/book", bookingHandler.CreateBooking)
		api.GET("/bookings/:id", bookingHandler.Booking)
		api.PATCH("/bookings/:id", bookingHandler.UpdateBooking)
	}

	return router
}
