package mooring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1beyondthereef/Report-The-Reef-sub000/internal/anchorage"

	"github.com/pashagolub/pgxmock/v3"
)

func testCatalog() *anchorage.Catalog {
	return anchorage.NewCatalog([]anchorage.Anchorage{
		{ID: "the-bight", Name: "The Bight, Norman Island", Island: "Norman Island", Lat: 18.32, Lng: -64.62},
	})
}

func night(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func reservationColumns() []string {
	return []string{"id", "anchorage_id", "user_id", "boat_name", "start_night", "end_night", "status", "created_at"}
}

func TestUpsertField(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO mooring_fields`).
		WithArgs("the-bight", 24, 60, 35.0).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	svc := NewService(mock, testCatalog())
	field, err := svc.UpsertField(context.Background(), Field{
		AnchorageID:   "the-bight",
		BuoyCount:     24,
		MaxLengthFt:   60,
		PricePerNight: 35,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if field.BuoyCount != 24 {
		t.Fatalf("unexpected field %+v", field)
	}
}

func TestUpsertFieldUnknownAnchorage(t *testing.T) {
	svc := NewService(nil, testCatalog())
	if _, err := svc.UpsertField(context.Background(), Field{AnchorageID: "atlantis"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReserve(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	start, end := night("2026-09-01"), night("2026-09-03")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT buoy_count FROM mooring_fields`).
		WithArgs("the-bight").
		WillReturnRows(pgxmock.NewRows([]string{"buoy_count"}).AddRow(24))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM mooring_reservations`).
		WithArgs("the-bight", StatusBooked, start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO mooring_reservations`).
		WithArgs(pgxmock.AnyArg(), "the-bight", "user-1", "Wandering Star", start, end, StatusBooked).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	svc := NewService(mock, testCatalog())
	res, err := svc.Reserve(context.Background(), "user-1", Reservation{
		AnchorageID: "the-bight",
		BoatName:    "Wandering Star",
		StartNight:  start,
		EndNight:    end,
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if res.Status != StatusBooked || res.ID == "" {
		t.Fatalf("unexpected reservation %+v", res)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveNoCapacity(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	start, end := night("2026-09-01"), night("2026-09-02")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT buoy_count FROM mooring_fields`).
		WithArgs("the-bight").
		WillReturnRows(pgxmock.NewRows([]string{"buoy_count"}).AddRow(2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM mooring_reservations`).
		WithArgs("the-bight", StatusBooked, start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	svc := NewService(mock, testCatalog())
	_, err = svc.Reserve(context.Background(), "user-1", Reservation{
		AnchorageID: "the-bight",
		StartNight:  start,
		EndNight:    end,
	})
	if !errors.Is(err, ErrNoCapacity) {
		t.Fatalf("expected ErrNoCapacity, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveValidation(t *testing.T) {
	svc := NewService(nil, testCatalog())
	cases := []struct {
		name string
		res  Reservation
		want error
	}{
		{"missing anchorage", Reservation{StartNight: night("2026-09-01"), EndNight: night("2026-09-02")}, ErrInvalidInput},
		{"end before start", Reservation{AnchorageID: "the-bight", StartNight: night("2026-09-03"), EndNight: night("2026-09-01")}, ErrInvalidInput},
		{"zero nights", Reservation{AnchorageID: "the-bight", StartNight: night("2026-09-01"), EndNight: night("2026-09-01")}, ErrInvalidInput},
		{"unknown anchorage", Reservation{AnchorageID: "atlantis", StartNight: night("2026-09-01"), EndNight: night("2026-09-02")}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Reserve(context.Background(), "user-1", tc.res); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCancelIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`UPDATE mooring_reservations SET status`).
		WithArgs("res-1", "user-1", StatusCancelled, StatusBooked).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE mooring_reservations SET status`).
		WithArgs("res-1", "user-1", StatusCancelled, StatusBooked).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	svc := NewService(mock, testCatalog())
	if err := svc.Cancel(context.Background(), "user-1", "res-1"); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := svc.Cancel(context.Background(), "user-1", "res-1"); err != nil {
		t.Fatalf("second cancel should be a no-op, got %v", err)
	}
}

func TestForUser(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, anchorage_id, user_id, boat_name`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(reservationColumns()).
			AddRow("res-1", "the-bight", "user-1", "Wandering Star",
				night("2026-09-01"), night("2026-09-03"), StatusBooked, time.Now()))

	svc := NewService(mock, testCatalog())
	reservations, err := svc.ForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(reservations) != 1 || reservations[0].AnchorageID != "the-bight" {
		t.Fatalf("unexpected reservations %+v", reservations)
	}
}
