package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Domain errors returned by the service layer. Controllers map them to HTTP
// status codes with errors.Is.
var (
	ErrValidation          = errors.New("validation_failed")
	ErrBuildingNotFound    = errors.New("building_not_found")
	ErrResidentNotFound    = errors.New("resident_not_found")
	ErrVehicleNotFound     = errors.New("vehicle_not_found")
	ErrGuestVisitNotFound  = errors.New("guest_visit_not_found")
	ErrSpotNotFound        = errors.New("parking_spot_not_found")
	ErrDuplicateSpotName   = errors.New("duplicate_spot_name")
	ErrSpotInUse           = errors.New("parking_spot_in_use")
	ErrSpotInOtherBuilding = errors.New("parking_spot_in_other_building")
	ErrInvalidTransition   = errors.New("invalid_status_transition")
	ErrGuestVisitClosed    = errors.New("guest_visit_completed")
)

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// nullableID maps an empty or missing spot id to SQL NULL.
func nullableID(id *string) interface{} {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	return strings.TrimSpace(*id)
}
