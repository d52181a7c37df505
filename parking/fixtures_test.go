package parking

import "apartium-backend/models"

func strPtr(s string) *string { return &s }

func spot(id, name string, floor int) models.ParkingSpot {
	return models.ParkingSpot{Base: models.Base{ID: id}, Name: name, Floor: floor, BuildingID: "B1"}
}

func vehicle(id, plate string, spotID *string, legacy string) models.Vehicle {
	return models.Vehicle{Base: models.Base{ID: id}, Plate: plate, ParkingSpotID: spotID, ParkingSpot: legacy}
}

func guest(id, plate, name, status string, spotID *string, legacy string) models.GuestVisit {
	return models.GuestVisit{
		Base:          models.Base{ID: id},
		Plate:         plate,
		GuestName:     name,
		Status:        status,
		ParkingSpotID: spotID,
		ParkingSpot:   legacy,
		UnitNumber:    "12",
	}
}

// building returns one building with a single unit "7" and resident "Ayse Kaya"
// owning the given vehicles.
func building(spots []models.ParkingSpot, vehicles ...models.Vehicle) models.Building {
	return models.Building{
		Base: models.Base{ID: "B1"},
		Name: "Block A",
		Units: []models.Unit{{
			Base:   models.Base{ID: "U1"},
			Number: "7",
			Residents: []models.Resident{{
				Base:     models.Base{ID: "R1"},
				FullName: "Ayse Kaya",
				Vehicles: vehicles,
			}},
		}},
		ParkingSpots: spots,
	}
}
