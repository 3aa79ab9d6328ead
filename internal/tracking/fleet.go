package tracking

import (
	"sync"

	"backend-fleetdesk/internal/fleet"
)

// Fleet is the live vehicle state shared by the simulator and readers.
// Readers always receive copies.
type Fleet struct {
	mu       sync.RWMutex
	vehicles []fleet.VehicleRecord
	index    map[string]int
}

func NewFleet(vehicles []fleet.VehicleRecord) *Fleet {
	f := &Fleet{
		vehicles: make([]fleet.VehicleRecord, len(vehicles)),
		index:    make(map[string]int, len(vehicles)),
	}
	for i, v := range vehicles {
		f.vehicles[i] = v.Clone()
		f.index[v.ID] = i
	}
	return f
}

func (f *Fleet) Snapshot() []fleet.VehicleRecord {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]fleet.VehicleRecord, len(f.vehicles))
	for i, v := range f.vehicles {
		out[i] = v.Clone()
	}
	return out
}

func (f *Fleet) Vehicle(id string) (fleet.VehicleRecord, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i, ok := f.index[id]
	if !ok {
		return fleet.VehicleRecord{}, false
	}
	return f.vehicles[i].Clone(), true
}

// update applies fn to every vehicle under the write lock and returns the
// ids of the vehicles fn changed.
func (f *Fleet) update(fn func(v *fleet.VehicleRecord) bool) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var changed []string
	for i := range f.vehicles {
		if fn(&f.vehicles[i]) {
			changed = append(changed, f.vehicles[i].ID)
		}
	}
	return changed
}
