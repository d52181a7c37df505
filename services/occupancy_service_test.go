package services

import (
	"context"
	"testing"

	"apartium-backend/models"
	"apartium-backend/parking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancyService_Report(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	svc := NewOccupancyService(NewBuildingDataService(db, nil, 0), NewGuestVisitService(db, nil, 0))

	rep, err := svc.Report(context.Background(), l.Building.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, parking.Stats{
		TotalSpots:     4,
		OccupiedSpots:  3,
		AvailableSpots: 1,
		OccupancyRate:  75,
		GuestVehicles:  1,
	}, rep.Stats)

	require.Len(t, rep.Floors, 2)
	assert.Equal(t, -1, rep.Floors[0].Floor)

	occupants := map[string]*parking.Occupant{}
	for _, fg := range rep.Floors {
		for _, sv := range fg.Spots {
			occupants[sv.Name] = sv.Occupant
		}
	}
	require.NotNil(t, occupants["A-01"])
	assert.Equal(t, "Ayse Kaya", occupants["A-01"].Name)
	require.NotNil(t, occupants["A-02"], "legacy name resolves to the spot")
	assert.Equal(t, "34 ABC 02", occupants["A-02"].Plate)
	require.NotNil(t, occupants["B-01"])
	assert.Equal(t, parking.OccupantGuest, occupants["B-01"].Type)
	assert.Nil(t, occupants["A-03"])
}

func TestOccupancyService_ReportSingleFloor(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	svc := NewOccupancyService(NewBuildingDataService(db, nil, 0), NewGuestVisitService(db, nil, 0))

	rep, err := svc.Report(context.Background(), l.Building.ID, intPtr(0))
	require.NoError(t, err)
	require.Len(t, rep.Floors, 1)
	assert.Equal(t, 1, rep.Stats.TotalSpots)
	assert.Equal(t, 100, rep.Stats.OccupancyRate)
}

func TestOccupancyService_CompletedGuestFreesSpot(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	require.NoError(t, db.Model(&models.GuestVisit{}).Where("id = ?", l.Guest.ID).Update("status", models.GuestStatusCompleted).Error)
	svc := NewOccupancyService(NewBuildingDataService(db, nil, 0), NewGuestVisitService(db, nil, 0))

	rep, err := svc.Report(context.Background(), l.Building.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Stats.OccupiedSpots)
	assert.Equal(t, 0, rep.Stats.GuestVehicles)
}

func TestOccupancyService_UnknownBuilding(t *testing.T) {
	db := newTestDB(t)
	svc := NewOccupancyService(NewBuildingDataService(db, nil, 0), NewGuestVisitService(db, nil, 0))

	_, err := svc.Report(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrBuildingNotFound)
}
