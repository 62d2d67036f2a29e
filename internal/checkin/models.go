package checkin

import "time"

const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
)

// Checkin is a boater's "anchored here" record. LocationLat/Lng hold
// the nominal anchorage or pin position; ActualGpsLat/Lng keep the raw
// device fix for later re-verification. At most one checkin per user is
// active at a time.
type Checkin struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	LocationName     string    `json:"location_name"`
	LocationLat      float64   `json:"location_lat"`
	LocationLng      float64   `json:"location_lng"`
	AnchorageID      *string   `json:"anchorage_id"`
	IsCustomLocation bool      `json:"is_custom_location"`
	ActualGpsLat     float64   `json:"actual_gps_lat"`
	ActualGpsLng     float64   `json:"actual_gps_lng"`
	Note             string    `json:"note,omitempty"`
	Visibility       string    `json:"visibility"`
	CheckedInAt      time.Time `json:"checked_in_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	LastVerifiedAt   time.Time `json:"last_verified_at"`
	IsActive         bool      `json:"is_active"`
}

type CustomLocation struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

type CreateRequest struct {
	AnchorageID    string          `json:"anchorage_id"`
	CustomLocation *CustomLocation `json:"custom_location"`
	GpsLat         *float64        `json:"gps_lat"`
	GpsLng         *float64        `json:"gps_lng"`
	Note           string          `json:"note"`
	Visibility     string          `json:"visibility"`
}

// ActiveCheckin is a visible checkin joined with its owner's display
// profile.
type ActiveCheckin struct {
	Checkin
	UserName  string `json:"user_name"`
	BoatName  string `json:"boat_name"`
	AvatarURL string `json:"avatar_url"`
}
