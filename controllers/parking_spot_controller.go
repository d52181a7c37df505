package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"apartium-backend/services"
	"apartium-backend/utils"
)

type ParkingSpotController struct {
	Spots     *services.ParkingSpotService
	Occupancy *services.OccupancyService
}

func NewParkingSpotController(spots *services.ParkingSpotService, occ *services.OccupancyService) *ParkingSpotController {
	return &ParkingSpotController{Spots: spots, Occupancy: occ}
}

// optionalFloor parses ?floor=. A missing value means every floor.
func optionalFloor(c *gin.Context) (*int, bool) {
	raw := strings.TrimSpace(c.Query("floor"))
	if raw == "" {
		return nil, true
	}
	f, err := strconv.Atoi(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "floor must be an integer")
		return nil, false
	}
	return &f, true
}

// GET /parking-spots?buildingId=&floor=
func (pc *ParkingSpotController) ListSpots(c *gin.Context) {
	buildingID := c.Query("buildingId")
	if buildingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "buildingId is required")
		return
	}
	floor, ok := optionalFloor(c)
	if !ok {
		return
	}
	spots, err := pc.Spots.List(c.Request.Context(), buildingID, floor)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, spots)
}

// GET /parking-spots/occupancy?buildingId=&floor=
func (pc *ParkingSpotController) GetOccupancy(c *gin.Context) {
	buildingID := c.Query("buildingId")
	if buildingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "buildingId is required")
		return
	}
	floor, ok := optionalFloor(c)
	if !ok {
		return
	}
	rep, err := pc.Occupancy.Report(c.Request.Context(), buildingID, floor)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rep)
}

// POST /parking-spots
func (pc *ParkingSpotController) CreateSpot(c *gin.Context) {
	var in services.CreateSpotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	spot, err := pc.Spots.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, spot)
}

// PATCH /parking-spots/:id?buildingId=
func (pc *ParkingSpotController) UpdateSpot(c *gin.Context) {
	var in services.UpdateSpotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	spot, err := pc.Spots.Update(c.Request.Context(), c.Param("id"), c.Query("buildingId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, spot)
}

// DELETE /parking-spots/:id?buildingId=&force=true
func (pc *ParkingSpotController) DeleteSpot(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	if err := pc.Spots.Delete(c.Request.Context(), c.Param("id"), c.Query("buildingId"), force); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
