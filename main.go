package main

import (
	"context"

	"github.com/chirp/chirp/config"
	"github.com/chirp/chirp/models"
	"github.com/chirp/chirp/routes"
	"github.com/chirp/chirp/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase(models.All()...)
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	r, err := routes.SetupRouter(db)
	if err != nil {
		utils.Sugar.Fatalf("router setup failed: %v", err)
	}

	utils.Sugar.Infof("Starting server on port %s", cfg.AppPort)
	if err := utils.Serve(context.Background(), ":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
