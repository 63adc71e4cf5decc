package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/danielalasn/pivot/internal/config"
	"github.com/danielalasn/pivot/internal/database"
	"github.com/danielalasn/pivot/internal/market"
	"github.com/danielalasn/pivot/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env carries the market-data secret (FINNHUB_API_KEY); its absence
	// only degrades the gateway, so a missing file is not an error.
	_ = godotenv.Load()

	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Backup.Dir); err != nil {
		log.Fatalf("create backup dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations and seed defaults
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("seed database: %v", err)
	}

	// market data gateway (nil provider when no API key)
	var provider market.Provider
	if cfg.Market.APIKey != "" {
		provider = market.NewFinnhubClient(cfg.Market.APIKey, cfg.Market.Timeout(), cfg.Market.MaxAttempts)
	} else {
		log.Printf("FINNHUB_API_KEY not set: market data degraded to fallback mode")
	}
	gateway := market.NewGateway(db, provider, cfg.Market.TTL())

	// setup router
	r := router.SetupRouter(cfg, db, gateway)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
