package parking

// ViewState is the selection and filter state of the parking views. It is a
// plain value so it can be serialized, passed around and reduced.
//
// A site groups blocks; a block is a building and owns the parking spots.
type ViewState struct {
	SiteID       string `json:"siteId"`
	BlockID      string `json:"blockId"`
	Floor        *int   `json:"floor,omitempty"`
	Search       string `json:"search"`
	StatusFilter string `json:"statusFilter"`
}

// Action is a state transition understood by Reduce.
type Action interface {
	apply(ViewState) ViewState
}

type SelectSite struct{ SiteID string }

type SelectBlock struct{ BlockID string }

// SelectFloor with a nil Floor clears the floor selection.
type SelectFloor struct{ Floor *int }

type SetSearch struct{ Query string }

type SetStatusFilter struct{ Status string }

type ResetFilters struct{}

func (a SelectSite) apply(s ViewState) ViewState {
	if a.SiteID == s.SiteID {
		return s
	}
	s.SiteID = a.SiteID
	s.BlockID = ""
	s.Floor = nil
	return s
}

func (a SelectBlock) apply(s ViewState) ViewState {
	if a.BlockID == s.BlockID {
		return s
	}
	s.BlockID = a.BlockID
	s.Floor = nil
	return s
}

func (a SelectFloor) apply(s ViewState) ViewState {
	if a.Floor == nil {
		s.Floor = nil
		return s
	}
	f := *a.Floor
	s.Floor = &f
	return s
}

func (a SetSearch) apply(s ViewState) ViewState {
	s.Search = a.Query
	return s
}

func (a SetStatusFilter) apply(s ViewState) ViewState {
	s.StatusFilter = a.Status
	return s
}

func (ResetFilters) apply(s ViewState) ViewState {
	s.Search = ""
	s.StatusFilter = ""
	return s
}

// Reduce returns the state after applying a. The input is never modified.
func Reduce(s ViewState, a Action) ViewState {
	if a == nil {
		return s
	}
	if s.Floor != nil {
		f := *s.Floor
		s.Floor = &f
	}
	return a.apply(s)
}

// FloorOr returns the selected floor, or def when none is selected.
func (s ViewState) FloorOr(def int) int {
	if s.Floor == nil {
		return def
	}
	return *s.Floor
}
