package main

import (
	"log"

	_ "taskman/docs"
	"taskman/internal/config"
	"taskman/internal/server"
)

// @title           Taskman API
// @version         1.0
// @description     Multi-tenant task-board API with per-board access levels.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
