package report

import (
	"context"
	"errors"

	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrInvalidInput = errors.New("invalid report input")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func validKind(kind string) bool {
	return kind == KindIncident || kind == KindSighting
}

func (s *Service) Create(ctx context.Context, input Report) (Report, error) {
	if !validKind(input.Kind) || input.Category == "" || input.ReportedBy == "" {
		return Report{}, ErrInvalidInput
	}
	input.ID = uuid.NewString()
	input.Status = StatusOpen

	row := s.db.QueryRow(ctx, `
		INSERT INTO reports (id, kind, category, description, location, photo_url, status, reported_by)
		VALUES ($1,$2,$3,$4, ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography, $7, $8, $9)
		RETURNING created_at
	`, input.ID, input.Kind, input.Category, input.Description, input.Lng, input.Lat, input.PhotoURL, input.Status, input.ReportedBy)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Report{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, kind, category, description, ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(photo_url,''), status, reported_by, created_at
		FROM reports WHERE id=$1
	`, id)
	return scanReport(row)
}

// Recent returns the newest reports, optionally filtered by kind.
func (s *Service) Recent(ctx context.Context, kind string, limit int) ([]Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `
		SELECT id, kind, category, description, ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(photo_url,''), status, reported_by, created_at
		FROM reports
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.Query(ctx, query, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]Report, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, kind, category, description, ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(photo_url,''), status, reported_by, created_at
		FROM reports
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		ORDER BY created_at DESC
	`, lng, lat, radiusKm*1000)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Report, error) {
	if status != StatusOpen && status != StatusResolved {
		return Report{}, ErrInvalidInput
	}
	_, err := s.db.Exec(ctx, `UPDATE reports SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return Report{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (Report, error) {
	var r Report
	if err := row.Scan(&r.ID, &r.Kind, &r.Category, &r.Description, &r.Lat, &r.Lng,
		&r.PhotoURL, &r.Status, &r.ReportedBy, &r.CreatedAt); err != nil {
		return Report{}, err
	}
	return r, nil
}

func collectReports(rows pgx.Rows) ([]Report, error) {
	var reports []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
