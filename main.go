package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/paystub-extraction/client"
	"github.com/Aashish23092/paystub-extraction/config"
	"github.com/Aashish23092/paystub-extraction/export"
	"github.com/Aashish23092/paystub-extraction/handler"
	"github.com/Aashish23092/paystub-extraction/middleware"
	"github.com/Aashish23092/paystub-extraction/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("Tesseract data path:", cfg.Tesseract.DataPath)

	// Initialize OCR fallback for scanned statements
	var ocr service.OCRClient
	if cfg.OCR.Enabled {
		tesseractClient := client.NewTesseractClient(cfg.Tesseract.DataPath)
		defer tesseractClient.Close()
		ocr = tesseractClient
	}

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	paystubService := service.NewPaystubService(pdfProcessor, ocr, service.Options{
		Concurrency: cfg.Batch.Concurrency,
		MinTokens:   cfg.OCR.MinTokens,
		Hooks:       service.LogHooks(cfg.Log.Verbose),
	})

	// Initialize handler layer
	paystubHandler := handler.NewPaystubHandler(paystubService, export.Options{
		FilenameLast: cfg.Export.FilenameLast,
	}, cfg.Upload.MaxFileSize())

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Paystub Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		paystubs := api.Group("/paystubs")
		{
			paystubs.POST("/parse", middleware.MaxBodySize(cfg.Upload.MaxRequestSize()), paystubHandler.ParseStatements)
			paystubs.POST("/tokens", middleware.MaxBodySize(cfg.Upload.MaxFileSize()), paystubHandler.ParseTokens)
		}
	}

	// Start server
	log.Printf("Starting Paystub Extraction Service on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
