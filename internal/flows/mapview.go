package flows

import (
	"context"
	"slices"
	"sync"

	"acadiasafe/internal/domain"
	"acadiasafe/internal/geo"
	"acadiasafe/pkg/e"
)

type LocationsAPI interface {
	List(ctx context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error)
}

// NearbyLocation is a campus location with its distance from the user.
type NearbyLocation struct {
	Location   domain.CampusLocation
	DistanceKM float64
	Distance   string
}

// MapFlow holds every campus location and the active type filter.
type MapFlow struct {
	api LocationsAPI

	mu        sync.RWMutex
	locations []domain.CampusLocation
	filter    *domain.LocationType
}

func NewMapFlow(api LocationsAPI) *MapFlow {
	return &MapFlow{api: api}
}

func (f *MapFlow) Load(ctx context.Context) error {
	list, err := f.api.List(ctx, nil)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.locations = list
	f.mu.Unlock()
	return nil
}

// Filter narrows Visible and Nearby to one type; nil shows all.
func (f *MapFlow) Filter(t *domain.LocationType) error {
	if t != nil && !domain.ValidLocationType(*t) {
		return e.WithDetail(e.ErrInvalidInput, "Unknown location type")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if t == nil {
		f.filter = nil
		return nil
	}
	v := *t
	f.filter = &v
	return nil
}

func (f *MapFlow) Visible() []domain.CampusLocation {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.visible()
}

func (f *MapFlow) visible() []domain.CampusLocation {
	if f.filter == nil {
		return slices.Clone(f.locations)
	}
	var out []domain.CampusLocation
	for _, l := range f.locations {
		if l.LocationType == *f.filter {
			out = append(out, l)
		}
	}
	return out
}

// Nearby returns the visible locations closest first.
func (f *MapFlow) Nearby(from geo.Point) []NearbyLocation {
	f.mu.RLock()
	locs := f.visible()
	f.mu.RUnlock()

	out := make([]NearbyLocation, 0, len(locs))
	for _, l := range locs {
		km := geo.DistanceKM(from, geo.Point{Lat: l.Lat, Lng: l.Lng})
		out = append(out, NearbyLocation{Location: l, DistanceKM: km, Distance: geo.FormatDistance(km)})
	}
	slices.SortStableFunc(out, func(a, b NearbyLocation) int {
		switch {
		case a.DistanceKM < b.DistanceKM:
			return -1
		case a.DistanceKM > b.DistanceKM:
			return 1
		}
		return 0
	})
	return out
}
