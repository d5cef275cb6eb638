package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ybhavu/clinic-portal/internal/config"
	"github.com/ybhavu/clinic-portal/internal/database"
	"github.com/ybhavu/clinic-portal/internal/server"
	"github.com/ybhavu/clinic-portal/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	if m := os.Getenv("GIN_MODE"); m != "" {
		gin.SetMode(m)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db, &users.User{}); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	r, err := server.NewRouter(cfg, db)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
