package apiclient

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"apartium-backend/cache"
	"apartium-backend/config"
	"apartium-backend/controllers"
	"apartium-backend/models"
	"apartium-backend/parking"
	"apartium-backend/routes"
	"apartium-backend/services"
)

// toasts records notifications.
type toasts struct {
	mu     sync.Mutex
	ok     []string
	failed []string
}

func (t *toasts) Success(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ok = append(t.ok, msg)
}

func (t *toasts) Error(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed = append(t.failed, msg)
}

type harness struct {
	DB       *gorm.DB
	Client   *Client
	Mutator  *Mutator
	Toasts   *toasts
	Building models.Building
	View     parking.ViewState
}

// newHarness serves the real API over the seeded demo building.
func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.SeedDatabase(db)

	// the server keeps no cache so every client read sees the database
	buildingSvc := services.NewBuildingDataService(db, nil, 0)
	guestSvc := services.NewGuestVisitService(db, nil, 0)
	router := routes.SetupRouter(routes.Controllers{
		Buildings:   controllers.NewBuildingController(buildingSvc),
		Vehicles:    controllers.NewVehicleController(services.NewVehicleService(db, nil)),
		GuestVisits: controllers.NewGuestVisitController(guestSvc),
		Spots: controllers.NewParkingSpotController(
			services.NewParkingSpotService(db, nil),
			services.NewOccupancyService(buildingSvc, guestSvc),
		),
	}, []string{"*"})

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		_ = sqlDB.Close()
	})

	var b models.Building
	require.NoError(t, db.First(&b).Error)

	c := New(srv.URL)
	c.Cache = cache.NewMemoryStore(time.Minute)
	tt := &toasts{}
	return &harness{
		DB:       db,
		Client:   c,
		Mutator:  NewMutator(c, tt),
		Toasts:   tt,
		Building: b,
		View:     parking.ViewState{BlockID: b.ID},
	}
}

func (h *harness) spot(t *testing.T, name string) models.ParkingSpot {
	t.Helper()
	var sp models.ParkingSpot
	require.NoError(t, h.DB.Where("building_id = ? AND name = ?", h.Building.ID, name).First(&sp).Error)
	return sp
}

func (h *harness) vehicle(t *testing.T, plate string) models.Vehicle {
	t.Helper()
	var v models.Vehicle
	require.NoError(t, h.DB.Where("plate = ?", plate).First(&v).Error)
	return v
}
