package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"apartium-backend/config"
	"apartium-backend/controllers"
	"apartium-backend/routes"
	"apartium-backend/services"
	"apartium-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg := config.Load()
	utils.InitLogger(cfg.AppName)

	if err := config.ConnectDatabase(cfg); err != nil {
		utils.Logger.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		utils.Logger.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	utils.Logger.Info("✅ Database connection established and migrations applied")

	store := config.NewCacheStore(cfg)

	// Initialize services
	buildingSvc := services.NewBuildingDataService(db, store, cfg.CacheTTL)
	guestSvc := services.NewGuestVisitService(db, store, cfg.CacheTTL)
	vehicleSvc := services.NewVehicleService(db, store)
	spotSvc := services.NewParkingSpotService(db, store)
	occupancySvc := services.NewOccupancyService(buildingSvc, guestSvc)

	// Build router
	router := routes.SetupRouter(routes.Controllers{
		Buildings:   controllers.NewBuildingController(buildingSvc),
		Vehicles:    controllers.NewVehicleController(vehicleSvc),
		GuestVisits: controllers.NewGuestVisitController(guestSvc),
		Spots:       controllers.NewParkingSpotController(spotSvc, occupancySvc),
	}, cfg.CORSOrigins)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Logger.Infof("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	utils.Logger.Info("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	utils.Logger.Info("✅ Server stopped gracefully")
}
