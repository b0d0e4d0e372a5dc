// @title Millionaire Game API
// @version 1.0
// @description Backend for a "who wants to be a millionaire" style trivia game.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"millionaire_backend/internal/app"
	"millionaire_backend/internal/config"
	"millionaire_backend/pkg/configwatcher"
	"millionaire_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		application.ApplyConfig(newCfg)
	})

	application.Run()
}
