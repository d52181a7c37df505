// services/building_data_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"apartium-backend/cache"
	"apartium-backend/models"
	"apartium-backend/utils"

	"gorm.io/gorm"
)

// BuildingDataService serves the nested building tree the dashboard reads:
// units -> residents -> vehicles, plus the building's parking spots with the
// assignedVehicle join attached.
type BuildingDataService struct {
	DB    *gorm.DB
	Cache cache.Store
	TTL   time.Duration

	invalidate invalidator
}

func NewBuildingDataService(db *gorm.DB, store cache.Store, ttl time.Duration) *BuildingDataService {
	return &BuildingDataService{DB: db, Cache: store, TTL: ttl, invalidate: invalidator{store: store}}
}

func (s *BuildingDataService) Get(ctx context.Context, buildingID string) (*models.Building, error) {
	key := cache.BuildingDataKey(buildingID)
	if s.Cache != nil {
		var cached models.Building
		hit, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			utils.Logger.Warnf("cache: read %s failed: %v", key, err)
		} else if hit {
			return &cached, nil
		}
	}

	building, err := s.load(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, building, s.TTL); err != nil {
			utils.Logger.Warnf("cache: write %s failed: %v", key, err)
		}
	}
	return building, nil
}

// List returns every building with the same tree as Get, uncached.
func (s *BuildingDataService) List(ctx context.Context) ([]models.Building, error) {
	var ids []string
	if err := s.DB.WithContext(ctx).Model(&models.Building{}).Order("name ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	out := make([]models.Building, 0, len(ids))
	for _, id := range ids {
		b, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *BuildingDataService) Invalidate(ctx context.Context) {
	s.invalidate.residents(ctx)
}

func (s *BuildingDataService) load(ctx context.Context, buildingID string) (*models.Building, error) {
	db := s.DB.WithContext(ctx)

	var building models.Building
	err := db.
		Preload("Units", func(tx *gorm.DB) *gorm.DB { return tx.Order("units.number ASC") }).
		Preload("Units.Residents", func(tx *gorm.DB) *gorm.DB { return tx.Order("residents.created_at ASC") }).
		Preload("Units.Residents.Vehicles", func(tx *gorm.DB) *gorm.DB { return tx.Order("vehicles.created_at ASC") }).
		Preload("ParkingSpots", func(tx *gorm.DB) *gorm.DB { return tx.Order("parking_spots.floor ASC, parking_spots.name ASC") }).
		First(&building, "id = ?", buildingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, fmt.Errorf("failed to load building %s: %w", buildingID, err)
	}

	if err := s.attachAssignedVehicles(db, building.ParkingSpots); err != nil {
		return nil, err
	}
	return &building, nil
}

// attachAssignedVehicles fills the assignedVehicle join from id links only.
// The earliest vehicle referencing a spot wins.
func (s *BuildingDataService) attachAssignedVehicles(db *gorm.DB, spots []models.ParkingSpot) error {
	if len(spots) == 0 {
		return nil
	}
	ids := make([]string, 0, len(spots))
	for _, sp := range spots {
		ids = append(ids, sp.ID)
	}

	var vehicles []models.Vehicle
	if err := db.Where("parking_spot_id IN ?", ids).Order("created_at ASC").Find(&vehicles).Error; err != nil {
		return fmt.Errorf("failed to join assigned vehicles: %w", err)
	}

	bySpot := make(map[string]*models.Vehicle, len(vehicles))
	for i := range vehicles {
		v := &vehicles[i]
		if _, taken := bySpot[*v.ParkingSpotID]; !taken {
			bySpot[*v.ParkingSpotID] = v
		}
	}
	for i := range spots {
		spots[i].AssignedVehicle = bySpot[spots[i].ID]
	}
	return nil
}
