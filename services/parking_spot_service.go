// services/parking_spot_service.go
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

type ParkingSpotService struct {
	DB *gorm.DB

	invalidate invalidator
}

func NewParkingSpotService(db *gorm.DB, store cache.Store) *ParkingSpotService {
	return &ParkingSpotService{DB: db, invalidate: invalidator{store: store}}
}

type CreateSpotInput struct {
	BuildingID string `json:"buildingId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Floor      int    `json:"floor"`
}

type UpdateSpotInput struct {
	Name  *string `json:"name"`
	Floor *int    `json:"floor"`
}

// ---- queries

func (s *ParkingSpotService) List(ctx context.Context, buildingID string, floor *int) ([]models.ParkingSpot, error) {
	spots := []models.ParkingSpot{}
	q := s.DB.WithContext(ctx).Where("building_id = ?", buildingID)
	if floor != nil {
		q = q.Where("floor = ?", *floor)
	}
	if err := q.Order("floor ASC, name ASC").Find(&spots).Error; err != nil {
		return nil, fmt.Errorf("failed to list parking spots: %w", err)
	}
	return spots, nil
}

// ---- mutations

func (s *ParkingSpotService) Create(ctx context.Context, in CreateSpotInput) (models.ParkingSpot, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.ParkingSpot{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	db := s.DB.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Building{}).Where("id = ?", in.BuildingID).Count(&count).Error; err != nil {
		return models.ParkingSpot{}, fmt.Errorf("failed to look up building: %w", err)
	}
	if count == 0 {
		return models.ParkingSpot{}, ErrBuildingNotFound
	}

	spot := models.ParkingSpot{BuildingID: in.BuildingID, Name: name, Floor: in.Floor}
	if err := db.Create(&spot).Error; err != nil {
		if isDuplicateKey(err) {
			return models.ParkingSpot{}, ErrDuplicateSpotName
		}
		return models.ParkingSpot{}, fmt.Errorf("failed to create parking spot: %w", err)
	}
	s.invalidate.residents(ctx)
	return spot, nil
}

// Update renames or moves a spot. Records that still point at the old name
// through the legacy link are moved onto the id link in the same
// transaction, so a rename never orphans them.
func (s *ParkingSpotService) Update(ctx context.Context, id, buildingID string, in UpdateSpotInput) (models.ParkingSpot, error) {
	var spot models.ParkingSpot
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if spot, err = findSpot(tx, id, buildingID); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		oldName := spot.Name
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: name must not be empty", ErrValidation)
			}
			if name != oldName {
				updates["name"] = name
			}
		}
		if in.Floor != nil && *in.Floor != spot.Floor {
			updates["floor"] = *in.Floor
		}
		if len(updates) == 0 {
			return nil
		}

		if _, renamed := updates["name"]; renamed {
			if err := adoptLegacyLinks(tx, spot.BuildingID, oldName, spot.ID); err != nil {
				return err
			}
		}
		if err := tx.Model(&models.ParkingSpot{}).Where("id = ?", spot.ID).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateSpotName
			}
			return fmt.Errorf("failed to update parking spot: %w", err)
		}
		return tx.First(&spot, "id = ?", spot.ID).Error
	})
	if err != nil {
		return models.ParkingSpot{}, err
	}
	s.invalidate.residents(ctx)
	s.invalidate.guests(ctx, spot.BuildingID)
	return spot, nil
}

// Delete removes a spot. A spot still held by a resident vehicle or an
// on-site guest is refused with ErrSpotInUse unless force is set, in which
// case those references are cleared first.
func (s *ParkingSpotService) Delete(ctx context.Context, id, buildingID string, force bool) error {
	var spot models.ParkingSpot
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if spot, err = findSpot(tx, id, buildingID); err != nil {
			return err
		}

		vehicles := vehicleHolders(tx, spot)
		guests := guestHolders(tx, spot)

		if !force {
			var held int64
			if err := vehicles.Count(&held).Error; err != nil {
				return fmt.Errorf("failed to count vehicle holders: %w", err)
			}
			if held == 0 {
				if err := guests.Count(&held).Error; err != nil {
					return fmt.Errorf("failed to count guest holders: %w", err)
				}
			}
			if held > 0 {
				return ErrSpotInUse
			}
		}

		cleared := map[string]interface{}{"parking_spot_id": nil, "parking_spot": ""}
		if err := vehicleHolders(tx, spot).Updates(cleared).Error; err != nil {
			return fmt.Errorf("failed to release vehicles: %w", err)
		}
		// Completed visits keep no spot either, so every visit is released.
		if err := tx.Model(&models.GuestVisit{}).
			Where("parking_spot_id = ? OR ((parking_spot_id IS NULL OR parking_spot_id = '') AND building_id = ? AND TRIM(parking_spot) = ?)", spot.ID, spot.BuildingID, spot.Name).
			Updates(cleared).Error; err != nil {
			return fmt.Errorf("failed to release guest visits: %w", err)
		}
		if err := tx.Delete(&models.ParkingSpot{}, "id = ?", spot.ID).Error; err != nil {
			return fmt.Errorf("failed to delete parking spot: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate.residents(ctx)
	s.invalidate.guests(ctx, spot.BuildingID)
	return nil
}

// ---- helpers

func findSpot(db *gorm.DB, id, buildingID string) (models.ParkingSpot, error) {
	var spot models.ParkingSpot
	q := db.Where("id = ?", id)
	if buildingID != "" {
		q = q.Where("building_id = ?", buildingID)
	}
	if err := q.First(&spot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ParkingSpot{}, ErrSpotNotFound
		}
		return models.ParkingSpot{}, fmt.Errorf("failed to find parking spot: %w", err)
	}
	return spot, nil
}

// buildingResidents selects the ids of residents living in the building.
func buildingResidents(db *gorm.DB, buildingID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("residents").
		Select("residents.id").
		Joins("JOIN units ON units.id = residents.unit_id").
		Where("units.building_id = ?", buildingID)
}

// vehicleHolders scopes resident vehicles linked to the spot by id, or by
// name from within the same building. A name link counts only when there is
// no id link, and surrounding spaces are ignored, as in parking.Snapshot.
func vehicleHolders(db *gorm.DB, spot models.ParkingSpot) *gorm.DB {
	return db.Model(&models.Vehicle{}).Where(
		"parking_spot_id = ? OR ((parking_spot_id IS NULL OR parking_spot_id = '') AND TRIM(parking_spot) = ? AND resident_id IN (?))",
		spot.ID, spot.Name, buildingResidents(db, spot.BuildingID),
	)
}

func guestHolders(db *gorm.DB, spot models.ParkingSpot) *gorm.DB {
	return db.Model(&models.GuestVisit{}).
		Where("status IN ?", []string{models.GuestStatusActive, models.GuestStatusPending}).
		Where("parking_spot_id = ? OR ((parking_spot_id IS NULL OR parking_spot_id = '') AND building_id = ? AND TRIM(parking_spot) = ?)", spot.ID, spot.BuildingID, spot.Name)
}

func adoptLegacyLinks(tx *gorm.DB, buildingID, name, spotID string) error {
	adopt := map[string]interface{}{"parking_spot_id": spotID, "parking_spot": ""}
	if err := tx.Model(&models.Vehicle{}).
		Where("(parking_spot_id IS NULL OR parking_spot_id = '') AND TRIM(parking_spot) = ? AND resident_id IN (?)", name, buildingResidents(tx, buildingID)).
		Updates(adopt).Error; err != nil {
		return fmt.Errorf("failed to relink vehicles: %w", err)
	}
	if err := tx.Model(&models.GuestVisit{}).
		Where("(parking_spot_id IS NULL OR parking_spot_id = '') AND building_id = ? AND TRIM(parking_spot) = ?", buildingID, name).
		Updates(adopt).Error; err != nil {
		return fmt.Errorf("failed to relink guest visits: %w", err)
	}
	return nil
}
