// services/occupancy_service.go
package services

import (
	"context"

	"apartium-backend/models"
	"apartium-backend/parking"
)

// OccupancyService resolves who holds each spot of a building, from the same
// building data and guest list the dashboard reads.
type OccupancyService struct {
	Buildings *BuildingDataService
	Guests    *GuestVisitService
}

func NewOccupancyService(buildings *BuildingDataService, guests *GuestVisitService) *OccupancyService {
	return &OccupancyService{Buildings: buildings, Guests: guests}
}

type OccupancyReport struct {
	BuildingID string               `json:"buildingId"`
	Floor      *int                 `json:"floor,omitempty"`
	Stats      parking.Stats        `json:"stats"`
	Floors     []parking.FloorGroup `json:"floors"`
}

// Report builds the occupancy view of a building, optionally narrowed to one
// floor. Stats cover the same spots as the groups.
func (s *OccupancyService) Report(ctx context.Context, buildingID string, floor *int) (OccupancyReport, error) {
	building, err := s.Buildings.Get(ctx, buildingID)
	if err != nil {
		return OccupancyReport{}, err
	}
	guests, err := s.Guests.ListByBuilding(ctx, buildingID)
	if err != nil {
		return OccupancyReport{}, err
	}

	snap := parking.NewSnapshot([]models.Building{*building}, guests)
	spots := snap.Spots()
	if floor != nil {
		onFloor := make([]models.ParkingSpot, 0, len(spots))
		for _, sp := range spots {
			if sp.Floor == *floor {
				onFloor = append(onFloor, sp)
			}
		}
		spots = onFloor
	}

	return OccupancyReport{
		BuildingID: buildingID,
		Floor:      floor,
		Stats:      parking.ComputeStats(spots, snap),
		Floors:     parking.GroupByFloor(spots, snap),
	}, nil
}
