package services

import (
	"context"
	"testing"

	"apartium-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestVisitService_CreateDefaults(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	svc := NewGuestVisitService(db, nil, 0)

	g, err := svc.Create(context.Background(), CreateGuestVisitInput{BuildingID: l.Building.ID, Plate: "35 abc 7"})
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusPending, g.Status)
	assert.Equal(t, models.GuestSourceManual, g.Source)
	assert.Equal(t, "35 ABC 7", g.Plate)
	assert.NotEmpty(t, g.ID)
}

func TestGuestVisitService_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	svc := NewGuestVisitService(db, nil, 0)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateGuestVisitInput
		want error
	}{
		{"missing plate", CreateGuestVisitInput{BuildingID: l.Building.ID}, ErrValidation},
		{"bad status", CreateGuestVisitInput{BuildingID: l.Building.ID, Plate: "1", Status: "parked"}, ErrValidation},
		{"bad source", CreateGuestVisitInput{BuildingID: l.Building.ID, Plate: "1", Source: "fax"}, ErrValidation},
		{"unknown building", CreateGuestVisitInput{BuildingID: "nope", Plate: "1"}, ErrBuildingNotFound},
		{"unknown spot", CreateGuestVisitInput{BuildingID: l.Building.ID, Plate: "1", ParkingSpotID: strPtr("nope")}, ErrSpotNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGuestVisitService_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	svc := NewGuestVisitService(db, nil, 0)
	ctx := context.Background()

	g, err := svc.Create(ctx, CreateGuestVisitInput{
		BuildingID:    l.Building.ID,
		Plate:         "35 ABC 7",
		ParkingSpotID: strPtr(l.Spots["A-03"].ID),
	})
	require.NoError(t, err)

	g, err = svc.UpdateStatus(ctx, g.ID, "active")
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusActive, g.Status)
	require.NotNil(t, g.ParkingSpotID)

	g, err = svc.UpdateStatus(ctx, g.ID, "active")
	require.NoError(t, err, "repeating the current status is a no-op")

	g, err = svc.UpdateStatus(ctx, g.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusCompleted, g.Status)
	assert.Nil(t, g.ParkingSpotID, "completing releases the spot")
	assert.NotNil(t, g.CompletedAt)

	_, err = svc.UpdateStatus(ctx, g.ID, "active")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.SetParkingSpot(ctx, g.ID, strPtr(l.Spots["A-03"].ID))
	assert.ErrorIs(t, err, ErrGuestVisitClosed)

	_, err = svc.SetParkingSpot(ctx, g.ID, nil)
	assert.NoError(t, err, "clearing a completed visit is allowed")
}

func TestGuestVisitService_ActiveCannotGoBackToPending(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	svc := NewGuestVisitService(db, nil, 0)

	_, err := svc.UpdateStatus(context.Background(), l.Guest.ID, "pending")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGuestVisitService_ListByBuildingCachesAndInvalidates(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	store := newMemoryStore()
	svc := NewGuestVisitService(db, store, 0)
	ctx := context.Background()

	list, err := svc.ListByBuilding(ctx, l.Building.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Create(ctx, CreateGuestVisitInput{BuildingID: l.Building.ID, Plate: "35 ABC 7"})
	require.NoError(t, err)

	list, err = svc.ListByBuilding(ctx, l.Building.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGuestVisitService_Delete(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	svc := NewGuestVisitService(db, nil, 0)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, l.Guest.ID))
	assert.ErrorIs(t, svc.Delete(ctx, l.Guest.ID), ErrGuestVisitNotFound)
}

func TestGuestVisitService_SpotMustBeInVisitBuilding(t *testing.T) {
	db := newTestDB(t)
	l := seedLot(t, db)
	foreign := foreignSpot(t, db)
	svc := NewGuestVisitService(db, nil, 0)
	ctx := context.Background()

	_, err := svc.SetParkingSpot(ctx, l.Guest.ID, strPtr(foreign.ID))
	assert.ErrorIs(t, err, ErrSpotInOtherBuilding)

	_, err = svc.Create(ctx, CreateGuestVisitInput{BuildingID: l.Building.ID, Plate: "1", ParkingSpotID: strPtr(foreign.ID)})
	assert.ErrorIs(t, err, ErrSpotInOtherBuilding)
}
