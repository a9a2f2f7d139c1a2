package cache

import (
	"sync"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/models"
)

const VehicleTTL = 5 * time.Minute

// ── Vehicle list cache ───────────────────────────────────────────────────────
// One entry per list query (page, limit, search). GET /vehicles reads from it;
// every vehicle or part write drops it, since parts_count is part of the entry.

type VehicleListEntry struct {
	Vehicles []models.Vehicle
	Total    int64
}

type vehicleEntry struct {
	data      VehicleListEntry
	fetchedAt time.Time
}

var (
	vehicleMu    sync.RWMutex
	vehicleCache = map[string]vehicleEntry{}
	now          = time.Now
)

func GetVehicles(key string) (VehicleListEntry, bool) {
	vehicleMu.RLock()
	defer vehicleMu.RUnlock()
	if e, ok := vehicleCache[key]; ok && now().Sub(e.fetchedAt) < VehicleTTL {
		return e.data, true
	}
	return VehicleListEntry{}, false
}

func SetVehicles(key string, data VehicleListEntry) {
	vehicleMu.Lock()
	defer vehicleMu.Unlock()
	vehicleCache[key] = vehicleEntry{data: data, fetchedAt: now()}
}

// ── Invalidate everything (call on any vehicle or part create/update/delete) ─

func InvalidateVehicles() {
	vehicleMu.Lock()
	vehicleCache = map[string]vehicleEntry{}
	vehicleMu.Unlock()
}
