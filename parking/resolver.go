package parking

import (
	"strings"

	"apartium-backend/models"
)

type OccupantType string

const (
	OccupantResident OccupantType = "resident"
	OccupantGuest    OccupantType = "guest"

	UnnamedGuest = "Unnamed Guest"
)

// Occupant describes whichever vehicle currently holds a spot. It is derived
// on every read and never stored.
type Occupant struct {
	Name       string       `json:"name"`
	Plate      string       `json:"plate"`
	UnitNumber string       `json:"unitNumber"`
	Type       OccupantType `json:"type"`
}

// Holder is the record that references a spot, as found by Snapshot.Holder.
// Exactly one of Resident and Guest is set.
type Holder struct {
	Resident *ResidentVehicle
	Guest    *models.GuestVisit
}

// Snapshot is an immutable, normalized view over one fetch of building data
// and guest visits. Every legacy name link is resolved to a spot id when the
// snapshot is built, so lookups below only compare ids.
type Snapshot struct {
	spots  []models.ParkingSpot
	guests []models.GuestVisit

	owners         map[string]ResidentVehicle // vehicle id -> owner
	residentBySpot map[string]ResidentVehicle // spot id -> first resident vehicle
	guestBySpot    map[string]models.GuestVisit
	guestByID      map[string]models.GuestVisit
}

// NewSnapshot indexes the two vehicle feeds. Spots are taken from the
// buildings; extra spots not carried by any building may be passed so their
// legacy names can be matched too.
func NewSnapshot(buildings []models.Building, guests []models.GuestVisit, extra ...models.ParkingSpot) *Snapshot {
	var spots []models.ParkingSpot
	seen := map[string]bool{}
	for _, b := range buildings {
		for _, sp := range b.ParkingSpots {
			if sp.BuildingID == "" {
				sp.BuildingID = b.ID
			}
			seen[sp.ID] = true
			spots = append(spots, sp)
		}
	}
	for _, sp := range extra {
		if !seen[sp.ID] {
			seen[sp.ID] = true
			spots = append(spots, sp)
		}
	}
	dir := newSpotDirectory(spots)

	s := &Snapshot{
		spots:          spots,
		guests:         guests,
		owners:         map[string]ResidentVehicle{},
		residentBySpot: map[string]ResidentVehicle{},
		guestBySpot:    map[string]models.GuestVisit{},
		guestByID:      map[string]models.GuestVisit{},
	}

	for _, rv := range ResidentVehicles(buildings) {
		if _, ok := s.owners[rv.Vehicle.ID]; !ok {
			s.owners[rv.Vehicle.ID] = rv
		}
		spotID := dir.canonical(rv.Vehicle.ParkingSpotID, rv.Vehicle.ParkingSpot, rv.BuildingID)
		if spotID == "" {
			continue
		}
		if _, taken := s.residentBySpot[spotID]; !taken {
			s.residentBySpot[spotID] = rv
		}
	}

	for _, g := range guests {
		if _, ok := s.guestByID[g.ID]; !ok {
			s.guestByID[g.ID] = g
		}
		if !g.OnSite() {
			continue
		}
		spotID := dir.canonical(g.ParkingSpotID, g.ParkingSpot, g.BuildingID)
		if spotID == "" {
			continue
		}
		if _, taken := s.guestBySpot[spotID]; !taken {
			s.guestBySpot[spotID] = g
		}
	}

	return s
}

// Spots returns every spot of every building in the snapshot.
func (s *Snapshot) Spots() []models.ParkingSpot { return s.spots }

// Guests returns the guest feed as given.
func (s *Snapshot) Guests() []models.GuestVisit { return s.guests }

// Guest looks a guest visit up by id.
func (s *Snapshot) Guest(id string) (models.GuestVisit, bool) {
	g, ok := s.guestByID[id]
	return g, ok
}

// Owner returns the resident owning a vehicle id.
func (s *Snapshot) Owner(vehicleID string) (ResidentVehicle, bool) {
	rv, ok := s.owners[vehicleID]
	return rv, ok
}

// Resolve returns the occupant of spot, or nil when the spot is free.
//
// A precomputed assignedVehicle join wins. Otherwise the first resident
// vehicle pointing at the spot wins, then the first pending or active guest.
func (s *Snapshot) Resolve(spot models.ParkingSpot) *Occupant {
	if av := spot.AssignedVehicle; av != nil {
		if rv, ok := s.owners[av.ID]; ok {
			return residentOccupant(rv)
		}
		// join without a known owner still marks the spot taken
		return &Occupant{Plate: av.Plate, Type: OccupantResident}
	}
	if rv, ok := s.residentBySpot[spot.ID]; ok {
		return residentOccupant(rv)
	}
	if g, ok := s.guestBySpot[spot.ID]; ok {
		return guestOccupant(g)
	}
	return nil
}

// Occupied reports whether Resolve would return an occupant.
func (s *Snapshot) Occupied(spot models.ParkingSpot) bool {
	return s.Resolve(spot) != nil
}

// Holder finds the record that Resolve reports for spot, in the same order:
// the assignedVehicle join, then resident vehicles, then pending or active
// guests.
func (s *Snapshot) Holder(spot models.ParkingSpot) (Holder, bool) {
	if av := spot.AssignedVehicle; av != nil {
		if rv, ok := s.owners[av.ID]; ok {
			return Holder{Resident: &rv}, true
		}
		return Holder{Resident: &ResidentVehicle{BuildingID: spot.BuildingID, Vehicle: *av}}, true
	}
	if rv, ok := s.residentBySpot[spot.ID]; ok {
		return Holder{Resident: &rv}, true
	}
	if g, ok := s.guestBySpot[spot.ID]; ok {
		return Holder{Guest: &g}, true
	}
	return Holder{}, false
}

// Spot looks a spot up by id.
func (s *Snapshot) Spot(id string) (models.ParkingSpot, bool) {
	for _, sp := range s.spots {
		if sp.ID == id {
			return sp, true
		}
	}
	return models.ParkingSpot{}, false
}

// Resolve is a convenience for a single lookup without keeping the snapshot.
func Resolve(spot models.ParkingSpot, buildings []models.Building, guests []models.GuestVisit) *Occupant {
	return NewSnapshot(buildings, guests, spot).Resolve(spot)
}

func residentOccupant(rv ResidentVehicle) *Occupant {
	return &Occupant{
		Name:       rv.ResidentName,
		Plate:      rv.Vehicle.Plate,
		UnitNumber: rv.UnitNumber,
		Type:       OccupantResident,
	}
}

func guestOccupant(g models.GuestVisit) *Occupant {
	name := strings.TrimSpace(g.GuestName)
	if name == "" {
		name = UnnamedGuest
	}
	return &Occupant{
		Name:       name,
		Plate:      g.Plate,
		UnitNumber: g.UnitNumber,
		Type:       OccupantGuest,
	}
}
