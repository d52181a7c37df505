package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	GuestStatusPending   = "pending"
	GuestStatusActive    = "active"
	GuestStatusCompleted = "completed"

	GuestSourceApp    = "app"
	GuestSourceManual = "manual"
)

// GuestVisit is a temporary, non-resident vehicle record. It is tied to a unit
// only through the denormalized host/unit/block fields.
type GuestVisit struct {
	Base

	BuildingID string `gorm:"type:varchar(36);index" json:"buildingId"`
	Plate      string `gorm:"size:20;not null" json:"plate"`
	GuestName  string `gorm:"size:150" json:"guestName"`
	Status     string `gorm:"size:20;not null;default:pending;index" json:"status"`
	Source     string `gorm:"size:20;not null;default:manual" json:"source"`

	ParkingSpotID *string `gorm:"type:varchar(36);index" json:"parkingSpotId"`
	ParkingSpot   string  `gorm:"column:parking_spot;size:50" json:"parkingSpot,omitempty"`

	HostName   string `gorm:"size:150" json:"hostName"`
	UnitNumber string `gorm:"size:20" json:"unitNumber"`
	BlockName  string `gorm:"size:50" json:"blockName"`

	ExpectedAt  *time.Time     `json:"expectedAt,omitempty"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
}

// OnSite reports whether the visit still holds (or may hold) a spot.
func (g GuestVisit) OnSite() bool {
	return g.Status == GuestStatusActive || g.Status == GuestStatusPending
}

func (g *GuestVisit) BeforeCreate(tx *gorm.DB) error {
	if len(g.Metadata) == 0 {
		g.Metadata = datatypes.JSON("{}")
	}
	return g.Base.BeforeCreate(tx)
}
