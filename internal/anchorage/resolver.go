package anchorage

import (
	"errors"
	"math"
	"sort"

	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/shared/geo"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Region is the service-area bounding box.
type Region struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func (r Region) Contains(lat, lng float64) bool {
	return lat >= r.MinLat && lat <= r.MaxLat && lng >= r.MinLng && lng <= r.MaxLng
}

// Resolver maps a GPS fix to anchorage candidates.
type Resolver struct {
	catalog        *Catalog
	radiusKm       float64
	region         Region
	fallbackLat    float64
	fallbackLng    float64
	restrictRegion bool
}

func NewResolver(catalog *Catalog, radiusKm float64, region Region, fallbackLat, fallbackLng float64, restrictRegion bool) *Resolver {
	return &Resolver{
		catalog:        catalog,
		radiusKm:       radiusKm,
		region:         region,
		fallbackLat:    fallbackLat,
		fallbackLng:    fallbackLng,
		restrictRegion: restrictRegion,
	}
}

func (r *Resolver) RadiusKm() float64 {
	return r.radiusKm
}

func (r *Resolver) RegionRestricted() bool {
	return r.restrictRegion
}

func (r *Resolver) InRegion(lat, lng float64) bool {
	return r.region.Contains(lat, lng)
}

// NearestWithinRadius returns the closest anchorage no farther than the
// auto check-in radius, or nil when none qualifies. Ties keep the first
// catalog entry encountered.
func (r *Resolver) NearestWithinRadius(lat, lng float64) (*Ranked, error) {
	if !validCoordinates(lat, lng) {
		return nil, ErrInvalidCoordinates
	}
	qLat, qLng := r.queryPoint(lat, lng)

	var nearest *Ranked
	for _, a := range r.catalog.All() {
		d := geo.HaversineKm(qLat, qLng, a.Lat, a.Lng)
		if d > r.radiusKm {
			continue
		}
		if nearest == nil || d < nearest.DistanceKm {
			nearest = &Ranked{Anchorage: a, DistanceKm: d}
		}
	}
	return nearest, nil
}

// SortedByDistance ranks every catalog anchorage ascending by distance
// from the query point. The sort is stable, so equidistant entries keep
// catalog order.
func (r *Resolver) SortedByDistance(lat, lng float64) ([]Ranked, error) {
	if !validCoordinates(lat, lng) {
		return nil, ErrInvalidCoordinates
	}
	qLat, qLng := r.queryPoint(lat, lng)

	ranked := make([]Ranked, 0, r.catalog.Len())
	for _, a := range r.catalog.All() {
		ranked = append(ranked, Ranked{Anchorage: a, DistanceKm: geo.HaversineKm(qLat, qLng, a.Lat, a.Lng)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked, nil
}

// queryPoint substitutes the fallback anchorage position for fixes
// outside the service region while the region restriction is disabled,
// so users elsewhere still get a usable list.
// TODO: remove the substitution when REGION_RESTRICTION_ENABLED becomes
// the production default.
func (r *Resolver) queryPoint(lat, lng float64) (float64, float64) {
	if !r.restrictRegion && !r.region.Contains(lat, lng) {
		return r.fallbackLat, r.fallbackLng
	}
	return lat, lng
}

func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
