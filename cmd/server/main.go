package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"sheetdoc/internal/config"
	"sheetdoc/internal/handler"
	"sheetdoc/internal/llm"
	"sheetdoc/internal/router"
	"sheetdoc/internal/service"
	"sheetdoc/internal/spreadsheet"

	// Provider registrations
	_ "sheetdoc/internal/llm/azure"
	_ "sheetdoc/internal/llm/bedrock"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Construct the provider client once, up front. Misconfiguration is
	// fatal here rather than on the first request.
	completer, err := llm.NewCompleter(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize llm provider: %w", err)
	}
	gateway := llm.NewGateway(completer, cfg.LLM.Provider, cfg.LLM.MaxRetries)

	decoder := spreadsheet.NewExcelDecoder()
	convertSvc := service.NewConvertService(decoder, gateway)

	convertH := handler.NewConvertHandler(convertSvc, cfg.Upload.MaxFileSizeMB*1024*1024)
	healthH := handler.NewHealthHandler()

	r := router.Setup(cfg, convertH, healthH)

	log.Printf("Server starting on %s (llm provider: %s)", cfg.Server.Port, cfg.LLM.Provider)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
