package mooring

import "time"

const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Field describes the mooring balls available at an anchorage.
type Field struct {
	AnchorageID   string    `json:"anchorage_id"`
	BuoyCount     int       `json:"buoy_count"`
	MaxLengthFt   int       `json:"max_length_ft"`
	PricePerNight float64   `json:"price_per_night"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Reservation holds one buoy for one boat for a span of nights.
// Nights are half-open: [start_night, end_night).
type Reservation struct {
	ID          string    `json:"id"`
	AnchorageID string    `json:"anchorage_id"`
	UserID      string    `json:"user_id"`
	BoatName    string    `json:"boat_name"`
	StartNight  time.Time `json:"start_night"`
	EndNight    time.Time `json:"end_night"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReserveRequest struct {
	AnchorageID string `json:"anchorage_id"`
	BoatName    string `json:"boat_name"`
	StartNight  string `json:"start_night"`
	EndNight    string `json:"end_night"`
}
