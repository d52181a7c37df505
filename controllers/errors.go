package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"apartium-backend/services"
	"apartium-backend/utils"
)

// respondError maps a service error onto a status code and the error envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrSpotInOtherBuilding):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrBuildingNotFound),
		errors.Is(err, services.ErrResidentNotFound),
		errors.Is(err, services.ErrVehicleNotFound),
		errors.Is(err, services.ErrGuestVisitNotFound),
		errors.Is(err, services.ErrSpotNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateSpotName),
		errors.Is(err, services.ErrSpotInUse),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrGuestVisitClosed):
		status = http.StatusConflict
	}

	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		utils.Logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, status, "internal server error")
		return
	}
	utils.JSONError(c, status, err.Error())
}

// bindSpotPatch reads {"parkingSpotId": string|null}. The key must be
// present; null or "" clears the spot.
func bindSpotPatch(c *gin.Context) (*string, bool) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}
	raw, ok := body["parkingSpotId"]
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "parkingSpotId is required")
		return nil, false
	}

	var spotID *string
	if err := json.Unmarshal(raw, &spotID); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "parkingSpotId must be a string or null")
		return nil, false
	}
	if spotID != nil && strings.TrimSpace(*spotID) == "" {
		spotID = nil
	}
	return spotID, true
}
