package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/anchorage"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/db"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	db       db.Querier
	catalog  *anchorage.Catalog
	resolver *anchorage.Resolver
	expiry   time.Duration
	hub      *stream.Hub
}

func NewService(db db.Querier, catalog *anchorage.Catalog, resolver *anchorage.Resolver, expiry time.Duration, hub *stream.Hub) *Service {
	return &Service{db: db, catalog: catalog, resolver: resolver, expiry: expiry, hub: hub}
}

// Create checks the user in at an anchorage or a custom pin. Any
// existing active checkin for the user is deactivated first; both
// writes run in one transaction so a double submit cannot leave two
// active checkins.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Checkin, error) {
	if userID == "" {
		return Checkin{}, fmt.Errorf("%w: user required", ErrInvalidInput)
	}
	if req.GpsLat == nil || req.GpsLng == nil || !finite(*req.GpsLat) || !finite(*req.GpsLng) {
		return Checkin{}, fmt.Errorf("%w: gps_lat and gps_lng required", ErrInvalidInput)
	}
	if req.Visibility == "" {
		req.Visibility = VisibilityPublic
	}
	if req.Visibility != VisibilityPublic && req.Visibility != VisibilityFriends {
		return Checkin{}, fmt.Errorf("%w: visibility must be public or friends", ErrInvalidInput)
	}

	now := time.Now()
	ck := Checkin{
		ID:             uuid.NewString(),
		UserID:         userID,
		ActualGpsLat:   *req.GpsLat,
		ActualGpsLng:   *req.GpsLng,
		Note:           req.Note,
		Visibility:     req.Visibility,
		CheckedInAt:    now,
		ExpiresAt:      now.Add(s.expiry),
		LastVerifiedAt: now,
		IsActive:       true,
	}

	switch {
	case req.AnchorageID != "" && req.CustomLocation != nil:
		return Checkin{}, fmt.Errorf("%w: anchorage_id and custom_location are mutually exclusive", ErrInvalidInput)
	case req.AnchorageID != "":
		a, ok := s.catalog.Get(req.AnchorageID)
		if !ok {
			return Checkin{}, fmt.Errorf("%w: anchorage %s", ErrNotFound, req.AnchorageID)
		}
		id := a.ID
		ck.AnchorageID = &id
		ck.LocationName = a.Name + ", " + a.Island
		ck.LocationLat = a.Lat
		ck.LocationLng = a.Lng
	case req.CustomLocation != nil:
		loc := req.CustomLocation
		if loc.Name == "" || loc.Lat == nil || loc.Lng == nil || !finite(*loc.Lat) || !finite(*loc.Lng) {
			return Checkin{}, fmt.Errorf("%w: custom_location needs name, lat and lng", ErrInvalidInput)
		}
		ck.IsCustomLocation = true
		ck.LocationName = loc.Name
		ck.LocationLat = *loc.Lat
		ck.LocationLng = *loc.Lng
	default:
		return Checkin{}, fmt.Errorf("%w: anchorage_id or custom_location required", ErrInvalidInput)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Checkin{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE checkins SET is_active=false WHERE user_id=$1 AND is_active
	`, userID); err != nil {
		return Checkin{}, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO checkins (id, user_id, location_name, location_lat, location_lng,
			anchorage_id, is_custom_location, actual_gps_lat, actual_gps_lng,
			note, visibility, checked_in_at, expires_at, last_verified_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,true)
	`, ck.ID, ck.UserID, ck.LocationName, ck.LocationLat, ck.LocationLng,
		ck.AnchorageID, ck.IsCustomLocation, ck.ActualGpsLat, ck.ActualGpsLng,
		ck.Note, ck.Visibility, ck.CheckedInAt, ck.ExpiresAt, ck.LastVerifiedAt); err != nil {
		return Checkin{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Checkin{}, err
	}

	if s.hub != nil && ck.AnchorageID != nil {
		payload, _ := json.Marshal(ck)
		s.hub.Broadcast("anchorage:"+*ck.AnchorageID, payload)
	}
	return ck, nil
}

// Verify re-checks a fresh GPS fix against the service region. With the
// region restriction enabled, a fix outside the region checks the user
// out; otherwise the checkin's verification timestamp advances. Safe to
// call repeatedly.
func (s *Service) Verify(ctx context.Context, userID string, gpsLat, gpsLng float64) (Checkin, bool, error) {
	if userID == "" {
		return Checkin{}, false, fmt.Errorf("%w: user required", ErrInvalidInput)
	}
	if !finite(gpsLat) || !finite(gpsLng) {
		return Checkin{}, false, fmt.Errorf("%w: gps coordinates must be finite", ErrInvalidInput)
	}

	ck, err := s.activeForUser(ctx, userID)
	if err != nil {
		return Checkin{}, false, err
	}

	if s.resolver.RegionRestricted() && !s.resolver.InRegion(gpsLat, gpsLng) {
		if _, err := s.db.Exec(ctx, `
			UPDATE checkins SET is_active=false WHERE id=$1
		`, ck.ID); err != nil {
			return Checkin{}, false, err
		}
		ck.IsActive = false
		return ck, true, nil
	}

	now := time.Now()
	if _, err := s.db.Exec(ctx, `
		UPDATE checkins SET last_verified_at=$2, actual_gps_lat=$3, actual_gps_lng=$4 WHERE id=$1
	`, ck.ID, now, gpsLat, gpsLng); err != nil {
		return Checkin{}, false, err
	}
	ck.LastVerifiedAt = now
	ck.ActualGpsLat = gpsLat
	ck.ActualGpsLng = gpsLng
	return ck, false, nil
}

// Checkout deactivates the user's active checkins. Calling it with none
// active is a no-op success.
func (s *Service) Checkout(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user required", ErrInvalidInput)
	}
	_, err := s.db.Exec(ctx, `
		UPDATE checkins SET is_active=false WHERE user_id=$1 AND is_active
	`, userID)
	return err
}

// ListActive returns active, unexpired checkins from boaters whose
// profile is visible on the map, newest first.
func (s *Service) ListActive(ctx context.Context) ([]ActiveCheckin, error) {
	// Housekeeping sweep for rows that expired while active. The
	// expires_at filter below is what keeps expired checkins out of the
	// result either way.
	_, _ = s.db.Exec(ctx, `
		UPDATE checkins SET is_active=false WHERE is_active AND expires_at <= NOW()
	`)

	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.user_id, c.location_name, c.location_lat, c.location_lng,
		       c.anchorage_id, c.is_custom_location, c.actual_gps_lat, c.actual_gps_lng,
		       COALESCE(c.note,''), c.visibility, c.checked_in_at, c.expires_at,
		       c.last_verified_at, c.is_active,
		       u.full_name, COALESCE(u.boat_name,''), COALESCE(u.avatar_url,'')
		FROM checkins c
		JOIN users u ON u.id = c.user_id
		WHERE c.is_active AND c.expires_at > NOW() AND u.show_on_map
		ORDER BY c.checked_in_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var active []ActiveCheckin
	for rows.Next() {
		var a ActiveCheckin
		if err := rows.Scan(&a.ID, &a.UserID, &a.LocationName, &a.LocationLat, &a.LocationLng,
			&a.AnchorageID, &a.IsCustomLocation, &a.ActualGpsLat, &a.ActualGpsLng,
			&a.Note, &a.Visibility, &a.CheckedInAt, &a.ExpiresAt,
			&a.LastVerifiedAt, &a.IsActive,
			&a.UserName, &a.BoatName, &a.AvatarURL); err != nil {
			return nil, err
		}
		active = append(active, a)
	}
	return active, nil
}

func (s *Service) activeForUser(ctx context.Context, userID string) (Checkin, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, location_name, location_lat, location_lng, anchorage_id,
		       is_custom_location, actual_gps_lat, actual_gps_lng, COALESCE(note,''),
		       visibility, checked_in_at, expires_at, last_verified_at, is_active
		FROM checkins
		WHERE user_id=$1 AND is_active AND expires_at > NOW()
		ORDER BY checked_in_at DESC
		LIMIT 1
	`, userID)

	var ck Checkin
	if err := row.Scan(&ck.ID, &ck.UserID, &ck.LocationName, &ck.LocationLat, &ck.LocationLng,
		&ck.AnchorageID, &ck.IsCustomLocation, &ck.ActualGpsLat, &ck.ActualGpsLng, &ck.Note,
		&ck.Visibility, &ck.CheckedInAt, &ck.ExpiresAt, &ck.LastVerifiedAt, &ck.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Checkin{}, fmt.Errorf("%w: no active checkin", ErrNotFound)
		}
		return Checkin{}, err
	}
	return ck, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
