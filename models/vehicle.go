package models

// Vehicle is a resident-owned vehicle.
//
// ParkingSpotID is the authoritative link. ParkingSpot is the legacy link that
// stores the spot's display name; older rows may only carry that one.
type Vehicle struct {
	Base

	ResidentID string `gorm:"type:varchar(36);index;not null" json:"residentId"`
	Plate      string `gorm:"size:20;not null" json:"plate"`
	Model      string `gorm:"size:100" json:"model,omitempty"`

	ParkingSpotID *string `gorm:"type:varchar(36);index" json:"parkingSpotId"`
	ParkingSpot   string  `gorm:"column:parking_spot;size:50" json:"parkingSpot,omitempty"`
}
