package models

type ParkingSpot struct {
	Base

	BuildingID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_spot_building_name" json:"buildingId"`
	Name       string `gorm:"size:50;not null;uniqueIndex:idx_spot_building_name" json:"name"`
	Floor      int    `gorm:"index" json:"floor"`

	// filled by the building-data query, never stored
	AssignedVehicle *Vehicle `gorm:"-" json:"assignedVehicle,omitempty"`
}
