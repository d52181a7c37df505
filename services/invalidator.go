package services

import (
	"context"

	"apartium-backend/cache"
	"apartium-backend/utils"
)

// invalidator drops cached queries after a write. A failed invalidation is
// logged and never fails the write that triggered it.
type invalidator struct {
	store cache.Store
}

// residents drops every resident-scoped query, building data included.
func (i invalidator) residents(ctx context.Context) {
	if i.store == nil {
		return
	}
	if err := i.store.DeletePrefix(ctx, cache.ResidentPrefix); err != nil {
		utils.Logger.Warnf("cache: failed to invalidate resident queries: %v", err)
	}
}

// guests drops the building's visit list and the unscoped list.
func (i invalidator) guests(ctx context.Context, buildingID string) {
	if i.store == nil {
		return
	}
	var err error
	if buildingID == "" {
		err = i.store.DeletePrefix(ctx, cache.GuestVisitPrefix)
	} else {
		err = i.store.Delete(ctx, cache.GuestVisitsKey(buildingID), cache.GuestVisitsKey(""))
	}
	if err != nil {
		utils.Logger.Warnf("cache: failed to invalidate guest visits (building=%s): %v", buildingID, err)
	}
}
