package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartium-backend/models"
)

func boardFixture() *Snapshot {
	spots := []models.ParkingSpot{
		spot("S1", "A-01", -1),
		spot("S2", "A-02", -1),
		spot("S3", "B-01", 0),
		spot("S4", "B-02", 0),
	}
	b := building(spots, vehicle("V1", "34 ABC 01", strPtr("S1"), ""))
	guests := []models.GuestVisit{
		guest("G1", "06 GST 01", "Mehmet", models.GuestStatusActive, nil, "B-01"),
	}
	return NewSnapshot([]models.Building{b}, guests)
}

func spotNames(board Board) []string {
	var out []string
	for _, g := range board.Floors {
		for _, sv := range g.Spots {
			out = append(out, sv.Name)
		}
	}
	return out
}

func TestBuildBoard_WholeBlock(t *testing.T) {
	board := BuildBoard(boardFixture(), ViewState{BlockID: "B1"})

	assert.Equal(t, Stats{TotalSpots: 4, OccupiedSpots: 2, AvailableSpots: 2, OccupancyRate: 50, GuestVehicles: 1}, board.Stats)
	require.Len(t, board.Floors, 2)
	assert.Equal(t, []string{"A-01", "A-02", "B-01", "B-02"}, spotNames(board))
}

func TestBuildBoard_FloorSelection(t *testing.T) {
	floor := 0
	board := BuildBoard(boardFixture(), ViewState{BlockID: "B1", Floor: &floor})

	assert.Equal(t, 2, board.Stats.TotalSpots)
	assert.Equal(t, []string{"B-01", "B-02"}, spotNames(board))
}

func TestBuildBoard_FiltersDoNotChangeStats(t *testing.T) {
	snap := boardFixture()
	tests := []struct {
		name string
		view ViewState
		want []string
	}{
		{"occupied", ViewState{StatusFilter: StatusFilterOccupied}, []string{"A-01", "B-01"}},
		{"available", ViewState{StatusFilter: StatusFilterAvailable}, []string{"A-02", "B-02"}},
		{"search plate", ViewState{Search: "gst"}, []string{"B-01"}},
		{"search resident", ViewState{Search: "ayse"}, []string{"A-01"}},
		{"search spot", ViewState{Search: " a-02 "}, []string{"A-02"}},
		{"no match", ViewState{Search: "zzz"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := BuildBoard(snap, tt.view)
			assert.Equal(t, tt.want, spotNames(board))
			assert.Equal(t, 4, board.Stats.TotalSpots)
		})
	}
}

func TestBuildBoard_OtherBlock(t *testing.T) {
	board := BuildBoard(boardFixture(), ViewState{BlockID: "B2"})
	assert.Equal(t, 0, board.Stats.TotalSpots)
	assert.Equal(t, 0, board.Stats.OccupancyRate)
	assert.Empty(t, board.Floors)
}
