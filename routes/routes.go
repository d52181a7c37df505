package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"apartium-backend/controllers"
	"apartium-backend/middleware"
)

type Controllers struct {
	Buildings   *controllers.BuildingController
	Vehicles    *controllers.VehicleController
	GuestVisits *controllers.GuestVisitController
	Spots       *controllers.ParkingSpotController
}

// SetupRouter wires the controllers onto the paths the dashboard calls.
func SetupRouter(ctl Controllers, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	residents := r.Group("/residents")
	{
		residents.GET("/building-data", ctl.Buildings.ListBuildingData)
		residents.GET("/building-data/:buildingId", ctl.Buildings.GetBuildingData)
	}

	vehicles := r.Group("/vehicles")
	{
		vehicles.POST("", ctl.Vehicles.CreateVehicle)
		vehicles.PATCH("/:id", ctl.Vehicles.UpdateVehicleSpot)
		vehicles.DELETE("/:id", ctl.Vehicles.DeleteVehicle)
	}

	guests := r.Group("/guest-visits")
	{
		guests.GET("", ctl.GuestVisits.ListGuestVisits)
		guests.POST("", ctl.GuestVisits.CreateGuestVisit)
		guests.PATCH("/:id", ctl.GuestVisits.UpdateGuestVisitSpot)
		guests.PATCH("/:id/status", ctl.GuestVisits.UpdateGuestVisitStatus)
		guests.DELETE("/:id", ctl.GuestVisits.DeleteGuestVisit)
	}

	spots := r.Group("/parking-spots")
	{
		// must stay before /:id
		spots.GET("/occupancy", ctl.Spots.GetOccupancy)
		spots.GET("", ctl.Spots.ListSpots)
		spots.POST("", ctl.Spots.CreateSpot)
		spots.PATCH("/:id", ctl.Spots.UpdateSpot)
		spots.DELETE("/:id", ctl.Spots.DeleteSpot)
	}

	return r
}
