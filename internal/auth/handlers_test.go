package auth

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newAuthApp(t *testing.T, mock pgxmock.PgxPoolIface) (*fiber.App, *Service) {
	t.Helper()
	svc := NewService("test-secret", mock)
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc, JWTMiddleware("test-secret"))
	return app, svc
}

func TestRegisterHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "skipper@example.com", "skipper", pgxmock.AnyArg(),
			"Ada Sailor", "Wandering Star", "", "", true).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app, _ := newAuthApp(t, mock)
	body := `{"email":"skipper@example.com","username":"skipper","password":"password123","full_name":"Ada Sailor","boat_name":"Wandering Star"}`
	req := httptest.NewRequest(fiber.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var payload struct {
		User   User          `json:"user"`
		Tokens TokenResponse `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.User.Email != "skipper@example.com" || payload.Tokens.AccessToken == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestRegisterHandlerBadPayload(t *testing.T) {
	app, _ := newAuthApp(t, nil)
	req := httptest.NewRequest(fiber.MethodPost, "/auth/register", strings.NewReader(`{"email":"only@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLoginHandlerUnauthorized(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, email, username, password_hash`).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()))

	app, _ := newAuthApp(t, mock)
	req := httptest.NewRequest(fiber.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"nobody@example.com","password":"whatever"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMeHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, email, username, password_hash`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow("user-1", "skipper@example.com", "skipper", "hash", "Ada Sailor",
				"Wandering Star", "Road Town", "", true, now, now))

	app, svc := newAuthApp(t, mock)
	token, err := svc.signToken("user-1", accessTokenTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.BoatName != "Wandering Star" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestMeHandlerNoToken(t *testing.T) {
	app, _ := newAuthApp(t, nil)
	req := httptest.NewRequest(fiber.MethodGet, "/auth/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
