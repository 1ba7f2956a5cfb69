package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"power-switch/internal/api/handlers"
	"power-switch/internal/api/middleware"
	"power-switch/internal/catalog"
	"power-switch/internal/config"
	"power-switch/internal/model"
	"power-switch/internal/observability/metrics"
	"power-switch/internal/store"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := loadConfig()

	plans := loadCatalog(cfg)
	log.Printf("Loaded %d plans from %s", len(plans), cfg.CatalogFile)

	st := openStore(cfg)
	defer st.Close()

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	recommendHandler := handlers.NewRecommendHandler(cfg, plans, st)
	plansHandler := handlers.NewPlansHandler(plans)
	historyHandler := handlers.NewHistoryHandler(st)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/recommend", recommendHandler.Upload)
		api.GET("/recommend/:id/report.pdf", recommendHandler.ReportPDF)
		api.GET("/demo", recommendHandler.Demo)

		api.GET("/plans", plansHandler.List)
		api.GET("/history", historyHandler.List)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = cfg.StaticDir
	}

	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadConfig reads CONFIG_FILE when set, otherwise config.yaml when
// present, otherwise the built-in defaults.
func loadConfig() *config.Config {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
		if _, err := os.Stat(path); err != nil {
			log.Printf("No config file found, using defaults")
			return config.Default()
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", path, err)
	}
	log.Printf("Loaded config from %s", path)
	return cfg
}

func loadCatalog(cfg *config.Config) []model.PlanDefinition {
	plans, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("Failed to load plan catalog %s: %v", cfg.CatalogFile, err)
	}
	return plans
}

// openStore connects the audit log. A missing DATABASE_URL falls back
// to the in-memory store so the service still starts without Postgres.
func openStore(cfg *config.Config) store.Store {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = cfg.DatabaseURL
	}
	if dsn == "" {
		log.Printf("No DATABASE_URL configured, analysis history kept in memory only")
		return store.NewMemory()
	}
	pg, err := store.OpenPostgres(context.Background(), dsn)
	if err != nil {
		log.Printf("Audit database unavailable (%v), falling back to in-memory history", err)
		return store.NewMemory()
	}
	log.Printf("Analysis audit log connected")
	return pg
}
