package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"apartium-backend/parking"
)

// Local validation errors. They are reported before any request is sent.
var (
	ErrNoBuildingSelected = errors.New("no building selected")
	ErrNoVehicleAssigned  = errors.New("no vehicle assigned to this spot")
	ErrInvalidInput       = errors.New("invalid input")
)

var spotValidate = validator.New()

// SpotInput is the editable part of a parking spot. A nil Floor takes the
// floor selected in the view. With neither, a new spot goes on floor 0 and
// an edited spot keeps its floor.
type SpotInput struct {
	Name  string `json:"name" validate:"required,max=50"`
	Floor *int   `json:"floor,omitempty" validate:"omitempty,min=-20,max=200"`
}

// Mutator issues the assignment and spot writes of the parking views. Each
// write is one remote call; success invalidates the affected queries and a
// failure is surfaced through Notify and returned.
type Mutator struct {
	Client *Client
	Notify Notifier
}

func NewMutator(c *Client, n Notifier) *Mutator {
	if n == nil {
		n = nopNotifier{}
	}
	return &Mutator{Client: c, Notify: n}
}

type spotPatch struct {
	ParkingSpotID *string `json:"parkingSpotId"`
}

// Assign points vehicleID at spotID. vehicleID is treated as a guest visit
// when it appears in the building's guest list, as a resident vehicle
// otherwise.
func (m *Mutator) Assign(ctx context.Context, view parking.ViewState, spotID, vehicleID string) error {
	buildingID, err := m.building(view)
	if err != nil {
		return err
	}
	if strings.TrimSpace(spotID) == "" || strings.TrimSpace(vehicleID) == "" {
		m.Notify.Error("Select a spot and a vehicle")
		return fmt.Errorf("%w: spot and vehicle are required", ErrInvalidInput)
	}

	guests, err := m.Client.GuestVisits(ctx, buildingID)
	if err != nil {
		return m.fail("Could not load guest visits", err)
	}
	resource := "/vehicles/"
	for _, g := range guests {
		if g.ID == vehicleID {
			resource = "/guest-visits/"
			break
		}
	}

	if err := m.Client.do(ctx, http.MethodPatch, resource+url.PathEscape(vehicleID), spotPatch{ParkingSpotID: &spotID}, nil); err != nil {
		return m.fail("Could not assign the parking spot", err)
	}
	m.Client.invalidateBuilding(ctx, buildingID)
	m.Notify.Success("Parking spot assigned")
	return nil
}

// Unassign clears the record the board shows on spotID: the assignedVehicle
// join, else the first resident vehicle, else the first on-site guest.
func (m *Mutator) Unassign(ctx context.Context, view parking.ViewState, spotID string) error {
	buildingID, err := m.building(view)
	if err != nil {
		return err
	}

	snap, err := m.Client.Snapshot(ctx, buildingID)
	if err != nil {
		return m.fail("Could not load parking data", err)
	}
	var holder parking.Holder
	ok := false
	if spot, found := snap.Spot(spotID); found {
		holder, ok = snap.Holder(spot)
	}
	if !ok {
		m.Notify.Error("No vehicle is assigned to this spot")
		return ErrNoVehicleAssigned
	}

	path := "/vehicles/"
	id := ""
	if holder.Resident != nil {
		id = holder.Resident.Vehicle.ID
	} else {
		path = "/guest-visits/"
		id = holder.Guest.ID
	}

	if err := m.Client.do(ctx, http.MethodPatch, path+url.PathEscape(id), spotPatch{}, nil); err != nil {
		return m.fail("Could not release the parking spot", err)
	}
	m.Client.invalidateBuilding(ctx, buildingID)
	m.Notify.Success("Parking spot released")
	return nil
}

// DeleteVehicle removes a resident vehicle or a guest visit.
func (m *Mutator) DeleteVehicle(ctx context.Context, view parking.ViewState, vehicleID string, isGuest bool) error {
	path := "/vehicles/"
	if isGuest {
		path = "/guest-visits/"
	}
	if err := m.Client.do(ctx, http.MethodDelete, path+url.PathEscape(vehicleID), nil, nil); err != nil {
		return m.fail("Could not delete the vehicle", err)
	}

	if isGuest {
		m.Client.invalidateGuests(ctx, view.BlockID)
	}
	m.Client.invalidateResidents(ctx)
	m.Notify.Success("Vehicle deleted")
	return nil
}

// ---- spot CRUD

func (m *Mutator) AddSpot(ctx context.Context, view parking.ViewState, in SpotInput) error {
	buildingID, err := m.building(view)
	if err != nil {
		return err
	}
	in, err = m.validate(in, view)
	if err != nil {
		return err
	}

	floor := 0
	if in.Floor != nil {
		floor = *in.Floor
	}
	body := map[string]interface{}{
		"buildingId": buildingID,
		"name":       in.Name,
		"floor":      floor,
	}
	if err := m.Client.do(ctx, http.MethodPost, "/parking-spots", body, nil); err != nil {
		return m.fail("Could not add the parking spot", err)
	}
	m.Client.invalidateBuilding(ctx, buildingID)
	m.Notify.Success("Parking spot added")
	return nil
}

func (m *Mutator) EditSpot(ctx context.Context, view parking.ViewState, spotID string, in SpotInput) error {
	buildingID, err := m.building(view)
	if err != nil {
		return err
	}
	in, err = m.validate(in, view)
	if err != nil {
		return err
	}

	// without a floor the spot stays where it is
	body := map[string]interface{}{"name": in.Name}
	if in.Floor != nil {
		body["floor"] = *in.Floor
	}
	if err := m.Client.do(ctx, http.MethodPatch, spotPath(spotID, buildingID, false), body, nil); err != nil {
		return m.fail("Could not update the parking spot", err)
	}
	m.Client.invalidateBuilding(ctx, buildingID)
	m.Notify.Success("Parking spot updated")
	return nil
}

// DeleteSpot removes a spot. With force the server releases any vehicle
// still holding it; without, a held spot is refused.
func (m *Mutator) DeleteSpot(ctx context.Context, view parking.ViewState, spotID string, force bool) error {
	buildingID, err := m.building(view)
	if err != nil {
		return err
	}
	if err := m.Client.do(ctx, http.MethodDelete, spotPath(spotID, buildingID, force), nil, nil); err != nil {
		return m.fail("Could not delete the parking spot", err)
	}
	m.Client.invalidateBuilding(ctx, buildingID)
	m.Client.invalidateResidents(ctx)
	m.Notify.Success("Parking spot deleted")
	return nil
}

// ---- helpers

func (m *Mutator) building(view parking.ViewState) (string, error) {
	if view.BlockID == "" {
		m.Notify.Error("Select a building first")
		return "", ErrNoBuildingSelected
	}
	return view.BlockID, nil
}

// validate trims the name, fills Floor from the view when unset and checks
// the result.
func (m *Mutator) validate(in SpotInput, view parking.ViewState) (SpotInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Floor == nil && view.Floor != nil {
		f := *view.Floor
		in.Floor = &f
	}
	if err := spotValidate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			m.Notify.Error(fmt.Sprintf("Invalid %s", strings.ToLower(verrs[0].Field())))
			return in, fmt.Errorf("%w: %s failed on %s", ErrInvalidInput, verrs[0].Field(), verrs[0].Tag())
		}
		m.Notify.Error("Invalid parking spot")
		return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return in, nil
}

// fail surfaces err as a toast, preferring the server's message, and
// returns it unchanged.
func (m *Mutator) fail(fallback string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		m.Notify.Error(fallback + ": " + apiErr.Message)
	} else {
		m.Notify.Error(fallback)
	}
	return err
}

func spotPath(spotID, buildingID string, force bool) string {
	q := url.Values{}
	q.Set("buildingId", buildingID)
	if force {
		q.Set("force", "true")
	}
	return "/parking-spots/" + url.PathEscape(spotID) + "?" + q.Encode()
}
