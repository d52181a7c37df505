package parking

import (
	"math"
	"sort"

	"apartium-backend/models"
)

type Stats struct {
	TotalSpots     int `json:"totalSpots"`
	OccupiedSpots  int `json:"occupiedSpots"`
	AvailableSpots int `json:"availableSpots"`
	OccupancyRate  int `json:"occupancyRate"`
	GuestVehicles  int `json:"guestVehicles"`
}

// ComputeStats counts spots using the same resolution as Snapshot.Resolve.
// GuestVehicles counts every pending or active guest in the snapshot,
// whether or not it holds a spot.
func ComputeStats(spots []models.ParkingSpot, snap *Snapshot) Stats {
	st := Stats{TotalSpots: len(spots)}
	for _, sp := range spots {
		if snap.Occupied(sp) {
			st.OccupiedSpots++
		}
	}
	st.AvailableSpots = st.TotalSpots - st.OccupiedSpots
	st.OccupancyRate = OccupancyRate(st.OccupiedSpots, st.TotalSpots)
	for _, g := range snap.Guests() {
		if g.OnSite() {
			st.GuestVehicles++
		}
	}
	return st
}

// OccupancyRate is round(100 * occupied / total), 0 for an empty lot.
func OccupancyRate(occupied, total int) int {
	if total <= 0 || occupied <= 0 {
		return 0
	}
	if occupied >= total {
		return 100
	}
	return int(math.Round(100 * float64(occupied) / float64(total)))
}

type SpotView struct {
	models.ParkingSpot
	Occupant *Occupant `json:"occupant"`
}

type FloorGroup struct {
	Floor int        `json:"floor"`
	Spots []SpotView `json:"spots"`
}

// GroupByFloor partitions spots into display groups, floors ascending and
// spots ordered by name inside a floor.
func GroupByFloor(spots []models.ParkingSpot, snap *Snapshot) []FloorGroup {
	byFloor := map[int][]SpotView{}
	for _, sp := range spots {
		byFloor[sp.Floor] = append(byFloor[sp.Floor], SpotView{ParkingSpot: sp, Occupant: snap.Resolve(sp)})
	}

	floors := make([]int, 0, len(byFloor))
	for f := range byFloor {
		floors = append(floors, f)
	}
	sort.Ints(floors)

	out := make([]FloorGroup, 0, len(floors))
	for _, f := range floors {
		views := byFloor[f]
		sort.SliceStable(views, func(i, j int) bool { return views[i].Name < views[j].Name })
		out = append(out, FloorGroup{Floor: f, Spots: views})
	}
	return out
}
