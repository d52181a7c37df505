package parking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartium-backend/models"
)

func TestOccupancyRate(t *testing.T) {
	tests := []struct {
		occupied, total, want int
	}{
		{3, 10, 30},
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
		{12, 10, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.occupied, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, OccupancyRate(tt.occupied, tt.total))
		})
	}
}

func TestComputeStats(t *testing.T) {
	var spots []models.ParkingSpot
	for i := 1; i <= 10; i++ {
		spots = append(spots, spot(fmt.Sprintf("S%d", i), fmt.Sprintf("A-%02d", i), i%2))
	}
	b := building(spots,
		vehicle("V1", "R1", strPtr("S1"), ""),
		vehicle("V2", "R2", nil, "A-02"),
	)
	guests := []models.GuestVisit{
		guest("G1", "G1", "Ali", models.GuestStatusActive, strPtr("S3"), ""),
		guest("G2", "G2", "Veli", models.GuestStatusPending, nil, ""),
		guest("G3", "G3", "Can", models.GuestStatusCompleted, strPtr("S4"), ""),
	}
	snap := NewSnapshot([]models.Building{b}, guests)

	st := ComputeStats(spots, snap)

	assert.Equal(t, Stats{
		TotalSpots:     10,
		OccupiedSpots:  3,
		AvailableSpots: 7,
		OccupancyRate:  30,
		GuestVehicles:  2,
	}, st)
	assert.Equal(t, st.TotalSpots, st.OccupiedSpots+st.AvailableSpots)
}

func TestComputeStatsEmptyLot(t *testing.T) {
	st := ComputeStats(nil, NewSnapshot(nil, nil))
	assert.Equal(t, Stats{}, st)
}

func TestStatsAgreeWithResolver(t *testing.T) {
	spots := []models.ParkingSpot{spot("S1", "A-01", 0), spot("S2", "A-02", 0), spot("S3", "A-03", 1)}
	b := building(spots, vehicle("V1", "R1", nil, "A-03"))
	guests := []models.GuestVisit{guest("G1", "G1", "", models.GuestStatusPending, nil, "A-01")}
	snap := NewSnapshot([]models.Building{b}, guests)

	occupied := 0
	for _, sp := range spots {
		if snap.Resolve(sp) != nil {
			occupied++
		}
	}
	assert.Equal(t, occupied, ComputeStats(spots, snap).OccupiedSpots)
}

func TestGroupByFloor(t *testing.T) {
	spots := []models.ParkingSpot{
		spot("S3", "B-02", 1),
		spot("S1", "A-02", 0),
		spot("S2", "A-01", 0),
		spot("S4", "C-01", -1),
	}
	b := building(spots, vehicle("V1", "R1", strPtr("S2"), ""))
	snap := NewSnapshot([]models.Building{b}, nil)

	groups := GroupByFloor(spots, snap)

	require.Len(t, groups, 3)
	assert.Equal(t, -1, groups[0].Floor)
	assert.Equal(t, 0, groups[1].Floor)
	assert.Equal(t, 1, groups[2].Floor)
	require.Len(t, groups[1].Spots, 2)
	assert.Equal(t, "A-01", groups[1].Spots[0].Name)
	require.NotNil(t, groups[1].Spots[0].Occupant)
	assert.Nil(t, groups[1].Spots[1].Occupant)
}
