package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/user"
	"microcredx-backend/internal/infrastructure/identity"

	"github.com/labstack/echo/v4"
)

type fakeVerifier map[string]string // token -> email

func (f fakeVerifier) Verify(_ context.Context, token string) (*identity.Identity, error) {
	email, ok := f[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &identity.Identity{UID: "uid-" + token, Email: email}, nil
}

type fakeRoles map[string]user.Role // email -> role

func (f fakeRoles) GetRole(_ context.Context, email string) (user.Role, error) {
	if email == "boom@x.com" {
		return "", errors.New("store down")
	}
	r, ok := f[email]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return r, nil
}

func setupAuthEcho() *echo.Echo {
	v := fakeVerifier{"admin": "admin@x.com", "borrower": "b@x.com", "ghost": "ghost@x.com", "boom": "boom@x.com"}
	roles := fakeRoles{"admin@x.com": user.RoleAdmin, "b@x.com": user.RoleBorrower}

	e := echo.New()
	ok := func(c echo.Context) error {
		id := c.Get(CtxIdentity).(*identity.Identity)
		return c.String(http.StatusOK, id.Email)
	}
	e.GET("/all-adminloan", ok, BearerAuth(v))
	e.PATCH("/update-role/:id", ok, BearerAuth(v), RequireRole(roles, user.RoleAdmin))
	return e
}

func authReq(e *echo.Echo, method, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBearerAuth(t *testing.T) {
	e := setupAuthEcho()

	cases := []struct {
		name  string
		authz string
		code  int
		body  string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{"empty token", "Bearer ", http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, `{"message":"Invalid token"}`},
		{"valid", "Bearer borrower", http.StatusOK, "b@x.com"},
	}
	for _, tc := range cases {
		rec := authReq(e, http.MethodGet, "/all-adminloan", tc.authz)
		if rec.Code != tc.code {
			t.Fatalf("%s: want %d, got %d", tc.name, tc.code, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != tc.body {
			t.Fatalf("%s: body %q want %q", tc.name, got, tc.body)
		}
	}
}

func TestRequireRole(t *testing.T) {
	e := setupAuthEcho()

	cases := []struct {
		name  string
		authz string
		code  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"admin", "Bearer admin", http.StatusOK},
		{"borrower", "Bearer borrower", http.StatusForbidden},
		{"unregistered", "Bearer ghost", http.StatusForbidden},
		{"lookup failure", "Bearer boom", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := authReq(e, http.MethodPatch, "/update-role/abc", tc.authz)
		if rec.Code != tc.code {
			t.Fatalf("%s: want %d, got %d (%s)", tc.name, tc.code, rec.Code, rec.Body.String())
		}
	}
}

func TestRequireRole_WithoutBearerAuth(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(fakeRoles{}, user.RoleAdmin))
	if rec := authReq(e, http.MethodGet, "/x", "Bearer admin"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}
