package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apartium-backend/services"
	"apartium-backend/utils"
)

type GuestVisitController struct {
	Svc *services.GuestVisitService
}

func NewGuestVisitController(svc *services.GuestVisitService) *GuestVisitController {
	return &GuestVisitController{Svc: svc}
}

type guestStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// ----------------------------------------------------
// GET /guest-visits?buildingId=
// ----------------------------------------------------

func (gc *GuestVisitController) ListGuestVisits(c *gin.Context) {
	visits, err := gc.Svc.ListByBuilding(c.Request.Context(), c.Query("buildingId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, visits)
}

// ----------------------------------------------------
// POST /guest-visits
// ----------------------------------------------------

func (gc *GuestVisitController) CreateGuestVisit(c *gin.Context) {
	var in services.CreateGuestVisitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	g, err := gc.Svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, g)
}

// ----------------------------------------------------
// PATCH /guest-visits/:id {"parkingSpotId": "..."|null}
// ----------------------------------------------------

func (gc *GuestVisitController) UpdateGuestVisitSpot(c *gin.Context) {
	spotID, ok := bindSpotPatch(c)
	if !ok {
		return
	}
	g, err := gc.Svc.SetParkingSpot(c.Request.Context(), c.Param("id"), spotID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, g)
}

// ----------------------------------------------------
// PATCH /guest-visits/:id/status {"status": "active"}
// ----------------------------------------------------

func (gc *GuestVisitController) UpdateGuestVisitStatus(c *gin.Context) {
	var p guestStatusPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	g, err := gc.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), p.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, g)
}

// ----------------------------------------------------
// DELETE /guest-visits/:id
// ----------------------------------------------------

func (gc *GuestVisitController) DeleteGuestVisit(c *gin.Context) {
	if err := gc.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
