package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend/handlers"
	"backend/storage"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "User-Agent",
		"Cache-Control", "Referer",
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS", "HEAD"}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func main() {
	cfg := storage.LoadConfig()
	cache := storage.NewDatasetCache(cfg.RosterSheet, cfg.MaintenanceSheet)

	router := gin.Default()
	router.Use(cors.New(CORSConfig()))
	router.LoadHTMLGlob("templates/*.html")

	router.GET("/", handlers.VehiclePage(cache, cfg))

	api := router.Group("/api")
	{
		api.GET("/vehicles", handlers.ListVehicleOptions(cache, cfg))
		api.GET("/vehicles/:id", handlers.GetVehicle(cache, cfg))
		api.GET("/vehicles/:id/maintenance", handlers.GetVehicleMaintenance(cache, cfg))
		api.GET("/vehicles/:id/qr", handlers.GenerateVehicleQR(cache, cfg))
		api.GET("/plates/:plate", handlers.GetVehicleByPlate(cache, cfg))
		api.GET("/label-sheet", handlers.GenerateLabelSheet(cache, cfg))
	}

	log.Printf("fleet lookup listening on :%s (workbook=%s)", cfg.Port, cfg.XLSXPath)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited: ", err)
	}
}
