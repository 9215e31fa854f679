package fleet

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. It backs tests and the demo binary;
// production deployments use the Mongo adapter.
type MemoryStore struct {
	mu        sync.RWMutex
	routes    map[string]*Route
	vehicles  map[string]*Vehicle
	positions map[string][]PositionSample
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		routes:    map[string]*Route{},
		vehicles:  map[string]*Vehicle{},
		positions: map[string][]PositionSample{},
	}
}

// PutRoute inserts or replaces a route. Stops are sorted by Order.
func (m *MemoryStore) PutRoute(r *Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	cp.Stops = append([]Stop(nil), r.Stops...)
	sort.Slice(cp.Stops, func(i, j int) bool { return cp.Stops[i].Order < cp.Stops[j].Order })
	m.routes[cp.ID] = &cp
}

// PutVehicle inserts or replaces a vehicle.
func (m *MemoryStore) PutVehicle(v *Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.vehicles[cp.ID] = &cp
}

// AddPositions appends samples for their vehicles, keeping per-vehicle order
// by RecordedAt.
func (m *MemoryStore) AddPositions(samples ...PositionSample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	touched := map[string]bool{}
	for _, s := range samples {
		m.positions[s.VehicleID] = append(m.positions[s.VehicleID], s)
		touched[s.VehicleID] = true
	}
	for id := range touched {
		list := m.positions[id]
		sort.Slice(list, func(i, j int) bool { return list[i].RecordedAt.Before(list[j].RecordedAt) })
	}
}

func (m *MemoryStore) RouteByID(_ context.Context, id string) (*Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.routes[id]
	if !ok {
		return nil, ErrRouteNotFound
	}
	return copyRoute(r), nil
}

func (m *MemoryStore) RoutesByFleet(_ context.Context, fleetID string, q RouteQuery) ([]*Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Route
	for _, r := range m.routes {
		if r.FleetID != fleetID {
			continue
		}
		if q.Status != "" && r.Status != q.Status {
			continue
		}
		if q.DateFrom != nil && r.RouteDate.Before(*q.DateFrom) {
			continue
		}
		out = append(out, copyRoute(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) VehicleByID(_ context.Context, id string) (*Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *MemoryStore) VehiclesByFleet(_ context.Context, fleetID string) ([]*Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Vehicle
	for _, v := range m.vehicles {
		if v.FleetID != fleetID {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) InProgressRoute(_ context.Context, vehicleID string) (*Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.routes {
		if r.VehicleID == vehicleID && r.Status == RouteInProgress {
			return copyRoute(r), nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) Positions(_ context.Context, vehicleID string, from, to time.Time) ([]PositionSample, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []PositionSample
	for _, s := range m.positions[vehicleID] {
		if s.RecordedAt.Before(from) || s.RecordedAt.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func copyRoute(r *Route) *Route {
	cp := *r
	cp.Stops = append([]Stop(nil), r.Stops...)
	return &cp
}
