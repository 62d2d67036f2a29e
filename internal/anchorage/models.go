package anchorage

type Anchorage struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Island string  `json:"island"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// Ranked pairs an anchorage with its distance from a query point.
type Ranked struct {
	Anchorage
	DistanceKm float64 `json:"distance_km"`
}
