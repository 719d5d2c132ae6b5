package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cardapio/config"
	"cardapio/database"
	"cardapio/route"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connected and migrated")

	// Set Gin mode
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	// Initialize router
	router := gin.Default()

	// Configure CORS
	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if cfg.AllowedOrigins != "" {
		origins = append(origins, cfg.AllowedOrigins)
	}
	corsConfig := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))
	log.Println("CORS configured")

	// Setup routes
	route.Register(router, db, cfg)
	log.Println("Routes configured successfully")

	// Serve the built frontend, falling back to index.html for SPA routes
	if _, err := os.Stat(cfg.FrontendDir); os.IsNotExist(err) {
		log.Println("Warning: Frontend build directory not found, static file serving may fail")
	}
	router.StaticFS("/static", http.Dir(filepath.Join(cfg.FrontendDir, "static")))
	router.NoRoute(func(c *gin.Context) {
		c.File(filepath.Join(cfg.FrontendDir, "index.html"))
	})
	log.Println("Static file serving configured")

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
