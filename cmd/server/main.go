package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ckdqja135/salermoon/config"
	httpDelivery "github.com/ckdqja135/salermoon/internal/delivery/http"
	"github.com/ckdqja135/salermoon/internal/infrastructure/cache"
	"github.com/ckdqja135/salermoon/internal/infrastructure/naver"
	"github.com/ckdqja135/salermoon/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting salermoon backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	resultCache := cache.NewMemoryCache()
	log.Printf("Result cache TTL: %s", cfg.Cache.TTL)

	naverClient := naver.NewClient(cfg.Naver.ClientID, cfg.Naver.ClientSecret, cfg.Naver.BaseURL, cfg.Naver.Timeout)
	log.Printf("Naver API configured: %s (timeout: %s)", cfg.Naver.BaseURL, cfg.Naver.Timeout)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		naverClient,
		resultCache,
		usecase.SearchServiceConfig{
			CacheTTL: cfg.Cache.TTL,
			MaxPages: cfg.Search.MaxPages,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
