// services/guest_visit_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"apartium-backend/cache"
	"apartium-backend/models"
	"apartium-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GuestVisitService struct {
	DB    *gorm.DB
	Cache cache.Store
	TTL   time.Duration

	invalidate invalidator
}

func NewGuestVisitService(db *gorm.DB, store cache.Store, ttl time.Duration) *GuestVisitService {
	return &GuestVisitService{DB: db, Cache: store, TTL: ttl, invalidate: invalidator{store: store}}
}

type CreateGuestVisitInput struct {
	BuildingID    string         `json:"buildingId" binding:"required"`
	Plate         string         `json:"plate" binding:"required"`
	GuestName     string         `json:"guestName"`
	Status        string         `json:"status"`
	Source        string         `json:"source"`
	ParkingSpotID *string        `json:"parkingSpotId"`
	HostName      string         `json:"hostName"`
	UnitNumber    string         `json:"unitNumber"`
	BlockName     string         `json:"blockName"`
	ExpectedAt    *time.Time     `json:"expectedAt"`
	Metadata      datatypes.JSON `json:"metadata"`
}

// guestTransitions lists the allowed status moves. Completed is terminal.
var guestTransitions = map[string][]string{
	models.GuestStatusPending: {models.GuestStatusActive, models.GuestStatusCompleted},
	models.GuestStatusActive:  {models.GuestStatusCompleted},
}

func canTransition(from, to string) bool {
	for _, next := range guestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func validGuestStatus(s string) bool {
	switch s {
	case models.GuestStatusPending, models.GuestStatusActive, models.GuestStatusCompleted:
		return true
	}
	return false
}

// ListByBuilding returns every visit of the building, newest first.
func (s *GuestVisitService) ListByBuilding(ctx context.Context, buildingID string) ([]models.GuestVisit, error) {
	key := cache.GuestVisitsKey(buildingID)
	if s.Cache != nil {
		var cached []models.GuestVisit
		hit, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			utils.Logger.Warnf("cache: read %s failed: %v", key, err)
		} else if hit {
			return cached, nil
		}
	}

	visits := []models.GuestVisit{}
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if buildingID != "" {
		q = q.Where("building_id = ?", buildingID)
	}
	if err := q.Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("failed to list guest visits: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, visits, s.TTL); err != nil {
			utils.Logger.Warnf("cache: write %s failed: %v", key, err)
		}
	}
	return visits, nil
}

func (s *GuestVisitService) Get(ctx context.Context, id string) (models.GuestVisit, error) {
	var g models.GuestVisit
	if err := s.DB.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.GuestVisit{}, ErrGuestVisitNotFound
		}
		return models.GuestVisit{}, fmt.Errorf("failed to find guest visit: %w", err)
	}
	return g, nil
}

func (s *GuestVisitService) Create(ctx context.Context, in CreateGuestVisitInput) (models.GuestVisit, error) {
	plate := normalizePlate(in.Plate)
	if plate == "" {
		return models.GuestVisit{}, fmt.Errorf("%w: plate is required", ErrValidation)
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.GuestStatusPending
	}
	if !validGuestStatus(status) {
		return models.GuestVisit{}, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}

	source := strings.ToLower(strings.TrimSpace(in.Source))
	switch source {
	case "":
		source = models.GuestSourceManual
	case models.GuestSourceApp, models.GuestSourceManual:
	default:
		return models.GuestVisit{}, fmt.Errorf("%w: unknown source %q", ErrValidation, in.Source)
	}

	db := s.DB.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Building{}).Where("id = ?", in.BuildingID).Count(&count).Error; err != nil {
		return models.GuestVisit{}, fmt.Errorf("failed to look up building: %w", err)
	}
	if count == 0 {
		return models.GuestVisit{}, ErrBuildingNotFound
	}

	g := models.GuestVisit{
		BuildingID: in.BuildingID,
		Plate:      plate,
		GuestName:  strings.TrimSpace(in.GuestName),
		Status:     status,
		Source:     source,
		HostName:   strings.TrimSpace(in.HostName),
		UnitNumber: strings.TrimSpace(in.UnitNumber),
		BlockName:  strings.TrimSpace(in.BlockName),
		ExpectedAt: in.ExpectedAt,
		Metadata:   in.Metadata,
	}
	if id := nullableID(in.ParkingSpotID); id != nil && status != models.GuestStatusCompleted {
		spotID := id.(string)
		if err := spotInBuilding(db, spotID, g.BuildingID); err != nil {
			return models.GuestVisit{}, err
		}
		g.ParkingSpotID = &spotID
	}
	if status == models.GuestStatusCompleted {
		now := time.Now().UTC()
		g.CompletedAt = &now
	}

	if err := db.Create(&g).Error; err != nil {
		return models.GuestVisit{}, fmt.Errorf("failed to create guest visit: %w", err)
	}
	s.invalidate.guests(ctx, g.BuildingID)
	return g, nil
}

// SetParkingSpot assigns or clears the visit's spot. A completed visit can be
// cleared but not assigned.
func (s *GuestVisitService) SetParkingSpot(ctx context.Context, id string, spotID *string) (models.GuestVisit, error) {
	var out models.GuestVisit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestVisitNotFound
			}
			return fmt.Errorf("failed to find guest visit: %w", err)
		}

		target := nullableID(spotID)
		if target != nil {
			if out.Status == models.GuestStatusCompleted {
				return ErrGuestVisitClosed
			}
			if err := spotInBuilding(tx, target.(string), out.BuildingID); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.GuestVisit{}).Where("id = ?", id).Updates(map[string]interface{}{
			"parking_spot_id": target,
			"parking_spot":    "",
		}).Error; err != nil {
			return fmt.Errorf("failed to update guest visit spot: %w", err)
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return models.GuestVisit{}, err
	}
	s.invalidate.guests(ctx, out.BuildingID)
	return out, nil
}

// UpdateStatus moves the visit along its lifecycle. Setting the current
// status again is a no-op. Completing a visit releases its spot.
func (s *GuestVisitService) UpdateStatus(ctx context.Context, id, status string) (models.GuestVisit, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !validGuestStatus(status) {
		return models.GuestVisit{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var out models.GuestVisit
	changed := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestVisitNotFound
			}
			return fmt.Errorf("failed to find guest visit: %w", err)
		}
		if out.Status == status {
			return nil
		}
		if !canTransition(out.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, out.Status, status)
		}

		updates := map[string]interface{}{"status": status}
		if status == models.GuestStatusCompleted {
			updates["completed_at"] = time.Now().UTC()
			updates["parking_spot_id"] = nil
			updates["parking_spot"] = ""
		}
		if err := tx.Model(&models.GuestVisit{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update guest visit status: %w", err)
		}
		changed = true
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return models.GuestVisit{}, err
	}
	if changed {
		s.invalidate.guests(ctx, out.BuildingID)
	}
	return out, nil
}

func (s *GuestVisitService) Delete(ctx context.Context, id string) error {
	var g models.GuestVisit
	db := s.DB.WithContext(ctx)
	if err := db.Select("id", "building_id").First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestVisitNotFound
		}
		return fmt.Errorf("failed to find guest visit: %w", err)
	}
	if err := db.Delete(&models.GuestVisit{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete guest visit: %w", err)
	}
	s.invalidate.guests(ctx, g.BuildingID)
	return nil
}
