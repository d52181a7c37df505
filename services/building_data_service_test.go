package services

import (
	"context"
	"testing"
	"time"

	"apartium-backend/cache"
	"apartium-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildingDataService_GetAttachesAssignedVehicle(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	svc := NewBuildingDataService(db, nil, 0)

	b, err := svc.Get(context.Background(), l.Building.ID)
	require.NoError(t, err)

	require.Len(t, b.Units, 1)
	require.Len(t, b.Units[0].Residents, 1)
	assert.Len(t, b.Units[0].Residents[0].Vehicles, 2)
	require.Len(t, b.ParkingSpots, 4)

	joined := map[string]*models.Vehicle{}
	for _, sp := range b.ParkingSpots {
		joined[sp.Name] = sp.AssignedVehicle
	}
	require.NotNil(t, joined["A-01"])
	assert.Equal(t, l.ByID.ID, joined["A-01"].ID)
	// the join follows id links only
	assert.Nil(t, joined["A-02"])
	assert.Nil(t, joined["B-01"])
}

func TestBuildingDataService_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewBuildingDataService(db, nil, 0)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBuildingNotFound)
}

func TestBuildingDataService_CachesUntilInvalidated(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	store := newMemoryStore()
	svc := NewBuildingDataService(db, store, time.Minute)
	ctx := context.Background()

	_, err := svc.Get(ctx, l.Building.ID)
	require.NoError(t, err)

	var cached models.Building
	hit, err := store.Get(ctx, cache.BuildingDataKey(l.Building.ID), &cached)
	require.NoError(t, err)
	require.True(t, hit)

	require.NoError(t, db.Model(&models.Building{}).Where("id = ?", l.Building.ID).Update("name", "Renamed").Error)

	b, err := svc.Get(ctx, l.Building.ID)
	require.NoError(t, err)
	assert.Equal(t, "Block A", b.Name)

	svc.Invalidate(ctx)
	b, err = svc.Get(ctx, l.Building.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", b.Name)
}

func TestBuildingDataService_List(t *testing.T) {
	db := newTestDB(t)
	seedLot(t, db)
	svc := NewBuildingDataService(db, nil, 0)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].ParkingSpots, 4)
}
