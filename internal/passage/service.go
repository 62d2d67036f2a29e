package passage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/db"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/shared/geo"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("passage not found")

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) Start(ctx context.Context, input Passage) (Passage, error) {
	input.ID = uuid.NewString()
	if input.StartedAt.IsZero() {
		input.StartedAt = time.Now()
	}
	input.Status = StatusUnderway

	row := s.db.QueryRow(ctx, `
		INSERT INTO passages (id, user_id, origin, destination, started_at, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING started_at
	`, input.ID, input.UserID, input.Origin, input.Destination, input.StartedAt, input.Status)
	if err := row.Scan(&input.StartedAt); err != nil {
		return Passage{}, err
	}
	return input, nil
}

// AddPoint records a live position. The leg distance from the previous
// point accrues on the passage in nautical miles, and the point is
// fanned out to anyone watching the passage topic.
func (s *Service) AddPoint(ctx context.Context, passageID string, input Point) (Point, error) {
	if input.RecordedAt.IsZero() {
		input.RecordedAt = time.Now()
	}

	var lastLat, lastLng float64
	havePrev := true
	err := s.db.QueryRow(ctx, `
		SELECT ST_Y(location::geometry), ST_X(location::geometry)
		FROM passage_points
		WHERE passage_id=$1
		ORDER BY recorded_at DESC
		LIMIT 1
	`, passageID).Scan(&lastLat, &lastLng)
	if errors.Is(err, pgx.ErrNoRows) {
		havePrev = false
	} else if err != nil {
		return Point{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO passage_points (passage_id, location, speed_kn, heading_deg, recorded_at)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2,$3), 4326)::geography, $4, $5, $6)
		RETURNING id, created_at
	`, passageID, input.Lng, input.Lat, input.SpeedKn, input.HeadingDeg, input.RecordedAt)
	if err := row.Scan(&input.ID, &input.CreatedAt); err != nil {
		return Point{}, err
	}
	input.PassageID = passageID

	if havePrev {
		deltaNm := geo.KmToNm(geo.HaversineKm(lastLat, lastLng, input.Lat, input.Lng))
		_, _ = s.db.Exec(ctx, `
			UPDATE passages
			SET total_nm = COALESCE(total_nm,0) + $2
			WHERE id=$1
		`, passageID, deltaNm)
	}

	if s.hub != nil {
		payload, _ := json.Marshal(input)
		s.hub.Broadcast("passage:"+passageID, payload)
	}

	return input, nil
}

// End marks the passage arrived. Ending an already-ended passage keeps
// the original ended_at.
func (s *Service) End(ctx context.Context, passageID string) (Passage, error) {
	_, err := s.db.Exec(ctx, `
		UPDATE passages SET ended_at=NOW(), status=$2
		WHERE id=$1 AND ended_at IS NULL
	`, passageID, StatusArrived)
	if err != nil {
		return Passage{}, err
	}
	return s.Get(ctx, passageID)
}

func (s *Service) Get(ctx context.Context, passageID string) (Passage, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, origin, destination, started_at, COALESCE(ended_at, 'epoch'::timestamptz),
		       COALESCE(total_nm,0), status
		FROM passages WHERE id=$1
	`, passageID)
	var p Passage
	err := row.Scan(&p.ID, &p.UserID, &p.Origin, &p.Destination, &p.StartedAt, &p.EndedAt, &p.TotalNm, &p.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Passage{}, ErrNotFound
	}
	if err != nil {
		return Passage{}, err
	}
	if p.EndedAt.Unix() == 0 {
		p.EndedAt = time.Time{}
	}
	return p, nil
}

func (s *Service) Summary(ctx context.Context, passageID string) (Summary, error) {
	passage, err := s.Get(ctx, passageID)
	if err != nil {
		return Summary{}, err
	}

	var pointCount int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM passage_points WHERE passage_id=$1`, passageID).Scan(&pointCount); err != nil {
		return Summary{}, err
	}

	duration := time.Since(passage.StartedAt)
	if !passage.EndedAt.IsZero() {
		duration = passage.EndedAt.Sub(passage.StartedAt)
	}
	avgSpeed := 0.0
	if duration.Hours() > 0 {
		avgSpeed = passage.TotalNm / duration.Hours()
	}

	return Summary{
		PassageID:      passage.ID,
		PointCount:     pointCount,
		DistanceNm:     passage.TotalNm,
		DurationSec:    int64(duration.Seconds()),
		AverageSpeedKn: avgSpeed,
	}, nil
}

func (s *Service) Points(ctx context.Context, passageID string) ([]Point, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, passage_id, ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(speed_kn,0), COALESCE(heading_deg,0), recorded_at, created_at
		FROM passage_points WHERE passage_id=$1
		ORDER BY recorded_at
	`, passageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.ID, &p.PassageID, &p.Lat, &p.Lng, &p.SpeedKn, &p.HeadingDeg, &p.RecordedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
