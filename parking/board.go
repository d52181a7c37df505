package parking

import (
	"strings"

	"apartium-backend/models"
)

const (
	StatusFilterOccupied  = "occupied"
	StatusFilterAvailable = "available"
)

// Board is what the parking view renders for one ViewState.
type Board struct {
	Stats  Stats        `json:"stats"`
	Floors []FloorGroup `json:"floors"`
}

// BuildBoard selects the spots of the view's block and floor. Stats cover
// that whole selection; search and status filter only narrow the groups.
func BuildBoard(snap *Snapshot, view ViewState) Board {
	var selected []models.ParkingSpot
	for _, sp := range snap.Spots() {
		if view.BlockID != "" && sp.BuildingID != view.BlockID {
			continue
		}
		if view.Floor != nil && sp.Floor != *view.Floor {
			continue
		}
		selected = append(selected, sp)
	}

	groups := GroupByFloor(selected, snap)
	query := strings.ToLower(strings.TrimSpace(view.Search))
	filtered := groups[:0]
	for _, g := range groups {
		kept := g.Spots[:0]
		for _, sv := range g.Spots {
			if matchesStatus(sv, view.StatusFilter) && matchesSearch(sv, query) {
				kept = append(kept, sv)
			}
		}
		if len(kept) > 0 {
			filtered = append(filtered, FloorGroup{Floor: g.Floor, Spots: kept})
		}
	}

	return Board{Stats: ComputeStats(selected, snap), Floors: filtered}
}

func matchesStatus(sv SpotView, status string) bool {
	switch status {
	case StatusFilterOccupied:
		return sv.Occupant != nil
	case StatusFilterAvailable:
		return sv.Occupant == nil
	}
	return true
}

// matchesSearch looks for query in the spot name and the occupant's plate,
// name and unit.
func matchesSearch(sv SpotView, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(sv.Name), query) {
		return true
	}
	if o := sv.Occupant; o != nil {
		for _, field := range []string{o.Plate, o.Name, o.UnitNumber} {
			if strings.Contains(strings.ToLower(field), query) {
				return true
			}
		}
	}
	return false
}
