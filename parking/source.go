// Package parking derives which vehicle holds which parking spot from the two
// vehicle feeds (resident vehicles nested under buildings, and the flat guest
// list) and aggregates occupancy statistics from that derivation.
package parking

import (
	"strings"

	"apartium-backend/models"
)

// ResidentVehicle is one resident vehicle flattened out of
// building -> unit -> resident -> vehicle, keeping the owner context.
type ResidentVehicle struct {
	BuildingID   string
	UnitNumber   string
	ResidentID   string
	ResidentName string
	Vehicle      models.Vehicle
}

// ResidentVehicles flattens the resident feed in scan order: buildings, units,
// residents and vehicles in the order they were given.
func ResidentVehicles(buildings []models.Building) []ResidentVehicle {
	var out []ResidentVehicle
	for _, b := range buildings {
		for _, u := range b.Units {
			for _, r := range u.Residents {
				for _, v := range r.Vehicles {
					out = append(out, ResidentVehicle{
						BuildingID:   b.ID,
						UnitNumber:   u.Number,
						ResidentID:   r.ID,
						ResidentName: r.FullName,
						Vehicle:      v,
					})
				}
			}
		}
	}
	return out
}

// spotDirectory maps legacy spot names to canonical ids.
type spotDirectory struct {
	byBuilding  map[string]map[string]string
	anyBuilding map[string]string
}

func newSpotDirectory(spots []models.ParkingSpot) spotDirectory {
	d := spotDirectory{
		byBuilding:  map[string]map[string]string{},
		anyBuilding: map[string]string{},
	}
	for _, s := range spots {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		names, ok := d.byBuilding[s.BuildingID]
		if !ok {
			names = map[string]string{}
			d.byBuilding[s.BuildingID] = names
		}
		if _, dup := names[name]; !dup {
			names[name] = s.ID
		}
		if _, dup := d.anyBuilding[name]; !dup {
			d.anyBuilding[name] = s.ID
		}
	}
	return d
}

// canonical returns the spot id a record points at. The id link wins; the
// legacy name is looked up inside buildingID when that building has spots,
// otherwise across every known spot.
func (d spotDirectory) canonical(spotID *string, legacyName, buildingID string) string {
	if spotID != nil && strings.TrimSpace(*spotID) != "" {
		return strings.TrimSpace(*spotID)
	}
	name := strings.TrimSpace(legacyName)
	if name == "" {
		return ""
	}
	if buildingID != "" {
		if names, ok := d.byBuilding[buildingID]; ok {
			return names[name]
		}
	}
	return d.anyBuilding[name]
}
