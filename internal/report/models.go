package report

import "time"

const (
	KindIncident = "incident"
	KindSighting = "sighting"

	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Report is a community observation pinned to a point: a hazard or
// incident (fouled mooring, reef strike, theft) or a wildlife sighting.
type Report struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	PhotoURL    string    `json:"photo_url"`
	Status      string    `json:"status"`
	ReportedBy  string    `json:"reported_by"`
	CreatedAt   time.Time `json:"created_at"`
}
