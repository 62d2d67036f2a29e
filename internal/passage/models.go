package passage

import "time"

const (
	StatusUnderway = "underway"
	StatusArrived  = "arrived"
)

// Passage is one leg sailed between two places, tracked live.
type Passage struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at,omitempty"`
	TotalNm     float64   `json:"total_nm"`
	Status      string    `json:"status"`
}

type Point struct {
	ID         int64     `json:"id"`
	PassageID  string    `json:"passage_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	SpeedKn    float64   `json:"speed_kn"`
	HeadingDeg float64   `json:"heading_deg"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type Summary struct {
	PassageID      string  `json:"passage_id"`
	PointCount     int     `json:"point_count"`
	DistanceNm     float64 `json:"distance_nm"`
	DurationSec    int64   `json:"duration_sec"`
	AverageSpeedKn float64 `json:"average_speed_kn"`
}
