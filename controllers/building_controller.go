package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apartium-backend/services"
	"apartium-backend/utils"
)

type BuildingController struct {
	Svc *services.BuildingDataService
}

func NewBuildingController(svc *services.BuildingDataService) *BuildingController {
	return &BuildingController{Svc: svc}
}

// GET /residents/building-data/:buildingId
func (bc *BuildingController) GetBuildingData(c *gin.Context) {
	building, err := bc.Svc.Get(c.Request.Context(), c.Param("buildingId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, building)
}

// GET /residents/building-data
func (bc *BuildingController) ListBuildingData(c *gin.Context) {
	buildings, err := bc.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, buildings)
}
