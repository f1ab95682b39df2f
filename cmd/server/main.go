package main

import (
	"ShopScraper/internal/app"
	"ShopScraper/internal/server"
	"ShopScraper/pkg/config"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: reading .env: %v", err)
	}

	// The server loads its own config
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
	defer application.Close()

	if err := server.Start(application, cfg.Server); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
