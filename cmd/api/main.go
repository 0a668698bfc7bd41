package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dealer-voicebot/internal/config"
	dbpkg "github.com/BruksfildServices01/dealer-voicebot/internal/db"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httpresp"
	"github.com/BruksfildServices01/dealer-voicebot/internal/middleware"
	"github.com/BruksfildServices01/dealer-voicebot/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		httpresp.OK(c, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
