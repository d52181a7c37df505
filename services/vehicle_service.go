// services/vehicle_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"apartium-backend/cache"
	"apartium-backend/models"

	"gorm.io/gorm"
)

type VehicleService struct {
	DB *gorm.DB

	invalidate invalidator
}

func NewVehicleService(db *gorm.DB, store cache.Store) *VehicleService {
	return &VehicleService{DB: db, invalidate: invalidator{store: store}}
}

type CreateVehicleInput struct {
	ResidentID    string  `json:"residentId" binding:"required"`
	Plate         string  `json:"plate" binding:"required"`
	Model         string  `json:"model"`
	ParkingSpotID *string `json:"parkingSpotId"`
}

func (s *VehicleService) Get(ctx context.Context, id string) (models.Vehicle, error) {
	var v models.Vehicle
	if err := s.DB.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Vehicle{}, ErrVehicleNotFound
		}
		return models.Vehicle{}, fmt.Errorf("failed to find vehicle: %w", err)
	}
	return v, nil
}

func (s *VehicleService) Create(ctx context.Context, in CreateVehicleInput) (models.Vehicle, error) {
	plate := normalizePlate(in.Plate)
	if plate == "" {
		return models.Vehicle{}, fmt.Errorf("%w: plate is required", ErrValidation)
	}

	db := s.DB.WithContext(ctx)
	var resident models.Resident
	if err := db.First(&resident, "id = ?", in.ResidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Vehicle{}, ErrResidentNotFound
		}
		return models.Vehicle{}, fmt.Errorf("failed to find resident: %w", err)
	}

	v := models.Vehicle{
		ResidentID: resident.ID,
		Plate:      plate,
		Model:      strings.TrimSpace(in.Model),
	}
	if id := nullableID(in.ParkingSpotID); id != nil {
		spotID := id.(string)
		buildingID, err := residentBuilding(db, resident.ID)
		if err != nil {
			return models.Vehicle{}, err
		}
		if err := spotInBuilding(db, spotID, buildingID); err != nil {
			return models.Vehicle{}, err
		}
		v.ParkingSpotID = &spotID
	}

	if err := db.Create(&v).Error; err != nil {
		return models.Vehicle{}, fmt.Errorf("failed to create vehicle: %w", err)
	}
	s.invalidate.residents(ctx)
	return v, nil
}

// SetParkingSpot points the vehicle at spotID, or clears its spot when spotID
// is nil or empty. The spot must be in the resident's building. The legacy name link is cleared either way so the id link
// is the only one left.
func (s *VehicleService) SetParkingSpot(ctx context.Context, id string, spotID *string) (models.Vehicle, error) {
	var out models.Vehicle
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return fmt.Errorf("failed to find vehicle: %w", err)
		}

		target := nullableID(spotID)
		if target != nil {
			buildingID, err := residentBuilding(tx, out.ResidentID)
			if err != nil {
				return err
			}
			if err := spotInBuilding(tx, target.(string), buildingID); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Vehicle{}).Where("id = ?", id).Updates(map[string]interface{}{
			"parking_spot_id": target,
			"parking_spot":    "",
		}).Error; err != nil {
			return fmt.Errorf("failed to update vehicle spot: %w", err)
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	s.invalidate.residents(ctx)
	return out, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.Vehicle{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	s.invalidate.residents(ctx)
	return nil
}

// spotInBuilding checks that spotID exists and belongs to buildingID. An
// empty buildingID, as on visits recorded before buildings were tracked,
// accepts any spot.
func spotInBuilding(db *gorm.DB, spotID, buildingID string) error {
	var spot models.ParkingSpot
	if err := db.Select("id", "building_id").First(&spot, "id = ?", spotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpotNotFound
		}
		return fmt.Errorf("failed to look up parking spot: %w", err)
	}
	if buildingID != "" && spot.BuildingID != buildingID {
		return ErrSpotInOtherBuilding
	}
	return nil
}

// residentBuilding returns the building a resident lives in.
func residentBuilding(db *gorm.DB, residentID string) (string, error) {
	var ids []string
	err := db.Table("residents").
		Joins("JOIN units ON units.id = residents.unit_id").
		Where("residents.id = ?", residentID).
		Pluck("units.building_id", &ids).Error
	if err != nil {
		return "", fmt.Errorf("failed to look up resident building: %w", err)
	}
	if len(ids) == 0 {
		return "", ErrResidentNotFound
	}
	return ids[0], nil
}

func normalizePlate(p string) string {
	return strings.ToUpper(strings.Join(strings.Fields(p), " "))
}
