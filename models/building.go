package models

type Building struct {
	Base

	Name    string `gorm:"size:150;not null" json:"name"`
	Address string `gorm:"type:text" json:"address"`

	Units        []Unit        `gorm:"foreignKey:BuildingID" json:"units"`
	ParkingSpots []ParkingSpot `gorm:"foreignKey:BuildingID" json:"parkingSpots"`
}

type Unit struct {
	Base

	BuildingID string `gorm:"type:varchar(36);index;not null" json:"buildingId"`
	Number     string `gorm:"size:20;not null" json:"number"`
	BlockName  string `gorm:"size:50" json:"blockName"`
	Floor      int    `json:"floor"`

	Residents []Resident `gorm:"foreignKey:UnitID" json:"residents"`
}

type Resident struct {
	Base

	UnitID   string `gorm:"type:varchar(36);index;not null" json:"unitId"`
	FullName string `gorm:"size:150" json:"fullName"`
	Phone    string `gorm:"size:30" json:"phone"`

	Vehicles []Vehicle `gorm:"foreignKey:ResidentID" json:"vehicles"`
}
