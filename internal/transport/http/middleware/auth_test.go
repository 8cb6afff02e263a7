package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexlaboral/internal/domain/auth"
)

func TestAuthMiddlewareSetsUser(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", TenantID: "t1", Role: auth.RoleLawyer}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	called := false
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.UserID != "u1" || user.TenantID != "t1" || user.Role != auth.RoleLawyer {
			t.Fatalf("unexpected user: %+v", user)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("expected handler to run")
	}
}

func TestAuthMiddlewareAnonymous(t *testing.T) {
	valid, _ := auth.GenerateToken("secret", auth.Claims{UserID: "u1", TenantID: "t1"}, time.Hour)
	cases := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "bad token", header: "Bearer nope"},
		{name: "wrong secret", header: "Bearer " + valid},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handler := Auth("other-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, ok := GetUser(r.Context()); ok {
					t.Fatal("did not expect user in context")
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected anonymous pass-through, got %d", rec.Code)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	perms := auth.NewStaticPermissions()
	handler := RequirePermission(auth.PermIdentityLookup, perms)(noContent())

	cases := []struct {
		name string
		user *auth.UserContext
		want int
	}{
		{name: "anonymous", want: http.StatusUnauthorized},
		{name: "client", user: &auth.UserContext{UserID: "u1", TenantID: "t1", Role: auth.RoleClient}, want: http.StatusForbidden},
		{name: "lawyer", user: &auth.UserContext{UserID: "u2", TenantID: "t1", Role: auth.RoleLawyer}, want: http.StatusNoContent},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/identity/lookup", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(context.Background(), *tc.user))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(noContent())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPermissionIfAuthenticated(t *testing.T) {
	handler := PermissionIfAuthenticated(auth.PermIdentityExtract, auth.NewStaticPermissions())(noContent())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected anonymous caller to pass, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil).WithContext(WithUser(context.Background(), auth.UserContext{UserID: "u1", TenantID: "t1", Role: "guest"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected unknown role to be forbidden, got %d", rec.Code)
	}
}
