package mooring

import (
	"context"
	"errors"

	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/anchorage"
	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidInput = errors.New("invalid reservation input")
	ErrNotFound     = errors.New("not found")
	ErrNoCapacity   = errors.New("no buoys free for those nights")
)

type Service struct {
	db      db.Querier
	catalog *anchorage.Catalog
}

func NewService(db db.Querier, catalog *anchorage.Catalog) *Service {
	return &Service{db: db, catalog: catalog}
}

// UpsertField sets the mooring inventory for an anchorage.
func (s *Service) UpsertField(ctx context.Context, field Field) (Field, error) {
	if _, ok := s.catalog.Get(field.AnchorageID); !ok {
		return Field{}, ErrNotFound
	}
	if field.BuoyCount < 0 || field.MaxLengthFt < 0 || field.PricePerNight < 0 {
		return Field{}, ErrInvalidInput
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO mooring_fields (anchorage_id, buoy_count, max_length_ft, price_per_night, updated_at)
		VALUES ($1,$2,$3,$4, NOW())
		ON CONFLICT (anchorage_id) DO UPDATE
		SET buoy_count=EXCLUDED.buoy_count, max_length_ft=EXCLUDED.max_length_ft,
		    price_per_night=EXCLUDED.price_per_night, updated_at=NOW()
		RETURNING updated_at
	`, field.AnchorageID, field.BuoyCount, field.MaxLengthFt, field.PricePerNight)
	if err := row.Scan(&field.UpdatedAt); err != nil {
		return Field{}, err
	}
	return field, nil
}

func (s *Service) GetField(ctx context.Context, anchorageID string) (Field, error) {
	row := s.db.QueryRow(ctx, `
		SELECT anchorage_id, buoy_count, max_length_ft, price_per_night, updated_at
		FROM mooring_fields WHERE anchorage_id=$1
	`, anchorageID)
	var field Field
	err := row.Scan(&field.AnchorageID, &field.BuoyCount, &field.MaxLengthFt, &field.PricePerNight, &field.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Field{}, ErrNotFound
	}
	if err != nil {
		return Field{}, err
	}
	return field, nil
}

// Reserve books a buoy for [startNight, endNight). The capacity check
// and insert run in one transaction so two boats cannot both take the
// last buoy.
func (s *Service) Reserve(ctx context.Context, userID string, res Reservation) (Reservation, error) {
	if userID == "" || res.AnchorageID == "" {
		return Reservation{}, ErrInvalidInput
	}
	if res.StartNight.IsZero() || res.EndNight.IsZero() || !res.EndNight.After(res.StartNight) {
		return Reservation{}, ErrInvalidInput
	}
	if _, ok := s.catalog.Get(res.AnchorageID); !ok {
		return Reservation{}, ErrNotFound
	}

	res.ID = uuid.NewString()
	res.UserID = userID
	res.Status = StatusBooked

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Reservation{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var buoyCount int
	err = tx.QueryRow(ctx, `
		SELECT buoy_count FROM mooring_fields WHERE anchorage_id=$1 FOR UPDATE
	`, res.AnchorageID).Scan(&buoyCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return Reservation{}, ErrNotFound
	}
	if err != nil {
		return Reservation{}, err
	}

	var booked int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM mooring_reservations
		WHERE anchorage_id=$1 AND status=$2
		  AND start_night < $4 AND end_night > $3
	`, res.AnchorageID, StatusBooked, res.StartNight, res.EndNight).Scan(&booked)
	if err != nil {
		return Reservation{}, err
	}
	if booked >= buoyCount {
		return Reservation{}, ErrNoCapacity
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO mooring_reservations (id, anchorage_id, user_id, boat_name, start_night, end_night, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, res.ID, res.AnchorageID, res.UserID, res.BoatName, res.StartNight, res.EndNight, res.Status).Scan(&res.CreatedAt)
	if err != nil {
		return Reservation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Reservation{}, err
	}
	return res, nil
}

// Cancel soft-cancels the caller's reservation. Cancelling an already
// cancelled or unknown reservation is a no-op success.
func (s *Service) Cancel(ctx context.Context, userID, reservationID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE mooring_reservations SET status=$3
		WHERE id=$1 AND user_id=$2 AND status=$4
	`, reservationID, userID, StatusCancelled, StatusBooked)
	return err
}

func (s *Service) ForAnchorage(ctx context.Context, anchorageID string) ([]Reservation, error) {
	return s.list(ctx, `
		SELECT id, anchorage_id, user_id, boat_name, start_night, end_night, status, created_at
		FROM mooring_reservations
		WHERE anchorage_id=$1 AND status='booked'
		ORDER BY start_night
	`, anchorageID)
}

func (s *Service) ForUser(ctx context.Context, userID string) ([]Reservation, error) {
	return s.list(ctx, `
		SELECT id, anchorage_id, user_id, boat_name, start_night, end_night, status, created_at
		FROM mooring_reservations
		WHERE user_id=$1
		ORDER BY start_night DESC
	`, userID)
}

func (s *Service) list(ctx context.Context, query string, arg any) ([]Reservation, error) {
	rows, err := s.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []Reservation
	for rows.Next() {
		var r Reservation
		if err := rows.Scan(&r.ID, &r.AnchorageID, &r.UserID, &r.BoatName,
			&r.StartNight, &r.EndNight, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, nil
}
