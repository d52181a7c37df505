package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apartium-backend/services"
	"apartium-backend/utils"
)

type VehicleController struct {
	Svc *services.VehicleService
}

func NewVehicleController(svc *services.VehicleService) *VehicleController {
	return &VehicleController{Svc: svc}
}

// POST /vehicles
func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var in services.CreateVehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	v, err := vc.Svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, v)
}

// PATCH /vehicles/:id {"parkingSpotId": "..."|null}
func (vc *VehicleController) UpdateVehicleSpot(c *gin.Context) {
	spotID, ok := bindSpotPatch(c)
	if !ok {
		return
	}
	v, err := vc.Svc.SetParkingSpot(c.Request.Context(), c.Param("id"), spotID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, v)
}

// DELETE /vehicles/:id
func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	if err := vc.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
