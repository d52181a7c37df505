package config

import (
	"fmt"

	"gorm.io/gorm"

	"apartium-backend/models"
	"apartium-backend/utils"
)

func strPtr(s string) *string { return &s }

// SeedDatabase inserts one demo building when the database is empty.
func SeedDatabase(db *gorm.DB) {
	var count int64
	db.Model(&models.Building{}).Count(&count)
	if count > 0 {
		utils.Logger.Info("Buildings already seeded")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		building := models.Building{Name: "Block A", Address: "Demo Site"}
		if err := tx.Create(&building).Error; err != nil {
			return err
		}

		spots := make([]models.ParkingSpot, 0, 12)
		for floor := -1; floor <= 0; floor++ {
			for i := 1; i <= 6; i++ {
				spots = append(spots, models.ParkingSpot{
					BuildingID: building.ID,
					Name:       fmt.Sprintf("%s-%02d", floorPrefix(floor), i),
					Floor:      floor,
				})
			}
		}
		if err := tx.Create(&spots).Error; err != nil {
			return err
		}

		unit := models.Unit{BuildingID: building.ID, Number: "1", BlockName: "A", Floor: 1}
		if err := tx.Create(&unit).Error; err != nil {
			return err
		}
		resident := models.Resident{UnitID: unit.ID, FullName: "Demo Resident", Phone: "+900000000000"}
		if err := tx.Create(&resident).Error; err != nil {
			return err
		}

		vehicles := []models.Vehicle{
			{ResidentID: resident.ID, Plate: "34 DEM 001", Model: "Sedan", ParkingSpotID: strPtr(spots[0].ID)},
			// legacy row linked by spot name only
			{ResidentID: resident.ID, Plate: "34 DEM 002", Model: "Hatchback", ParkingSpot: spots[1].Name},
		}
		if err := tx.Create(&vehicles).Error; err != nil {
			return err
		}

		guest := models.GuestVisit{
			BuildingID:    building.ID,
			Plate:         "06 GST 100",
			GuestName:     "Demo Guest",
			Status:        models.GuestStatusActive,
			Source:        models.GuestSourceManual,
			ParkingSpotID: strPtr(spots[6].ID),
			HostName:      resident.FullName,
			UnitNumber:    unit.Number,
			BlockName:     unit.BlockName,
		}
		return tx.Create(&guest).Error
	})
	if err != nil {
		utils.Logger.Warnf("failed to seed demo building: %v", err)
		return
	}
	utils.Logger.Info("Demo building seeded")
}

func floorPrefix(floor int) string {
	if floor < 0 {
		return fmt.Sprintf("B%d", -floor)
	}
	return fmt.Sprintf("G%d", floor)
}
