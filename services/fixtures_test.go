package services

import (
	"fmt"
	"testing"
	"time"

	"apartium-backend/cache"
	"apartium-backend/config"
	"apartium-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string { return &s }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// lot is a seeded building: three spots on two floors, one resident with
// an id-linked and a legacy-linked vehicle, and one active guest.
type lot struct {
	Building models.Building
	Unit     models.Unit
	Resident models.Resident
	Spots    map[string]models.ParkingSpot
	ByID     models.Vehicle
	ByName   models.Vehicle
	Guest    models.GuestVisit
}

func seedLot(t *testing.T, db *gorm.DB) lot {
	t.Helper()
	l := lot{Spots: map[string]models.ParkingSpot{}}

	l.Building = models.Building{Name: "Block A", Address: "Test"}
	require.NoError(t, db.Create(&l.Building).Error)

	for _, sp := range []models.ParkingSpot{
		{Name: "A-01", Floor: -1},
		{Name: "A-02", Floor: -1},
		{Name: "A-03", Floor: -1},
		{Name: "B-01", Floor: 0},
	} {
		sp.BuildingID = l.Building.ID
		require.NoError(t, db.Create(&sp).Error)
		l.Spots[sp.Name] = sp
	}

	l.Unit = models.Unit{BuildingID: l.Building.ID, Number: "12", BlockName: "A", Floor: 3}
	require.NoError(t, db.Create(&l.Unit).Error)
	l.Resident = models.Resident{UnitID: l.Unit.ID, FullName: "Ayse Kaya"}
	require.NoError(t, db.Create(&l.Resident).Error)

	l.ByID = models.Vehicle{ResidentID: l.Resident.ID, Plate: "34 ABC 01", ParkingSpotID: strPtr(l.Spots["A-01"].ID)}
	require.NoError(t, db.Create(&l.ByID).Error)
	l.ByName = models.Vehicle{ResidentID: l.Resident.ID, Plate: "34 ABC 02", ParkingSpot: "A-02"}
	require.NoError(t, db.Create(&l.ByName).Error)

	l.Guest = models.GuestVisit{
		BuildingID:    l.Building.ID,
		Plate:         "06 GST 01",
		GuestName:     "Mehmet",
		Status:        models.GuestStatusActive,
		ParkingSpotID: strPtr(l.Spots["B-01"].ID),
		UnitNumber:    "12",
	}
	require.NoError(t, db.Create(&l.Guest).Error)
	return l
}

func newMemoryStore() *cache.MemoryStore {
	return cache.NewMemoryStore(time.Minute)
}

// foreignSpot creates a second building with one spot named like a spot of
// the seeded lot.
func foreignSpot(t *testing.T, db *gorm.DB) models.ParkingSpot {
	t.Helper()
	other := models.Building{Name: "Block B"}
	require.NoError(t, db.Create(&other).Error)
	sp := models.ParkingSpot{BuildingID: other.ID, Name: "A-01", Floor: -1}
	require.NoError(t, db.Create(&sp).Error)
	return sp
}
