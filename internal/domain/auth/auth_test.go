package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", TenantID: "t1", Role: "Lawyer"}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	user := claims.User()
	if user.UserID != "u1" || user.TenantID != "t1" || user.Role != RoleLawyer {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestParseTokenRejects(t *testing.T) {
	valid, _ := GenerateToken("secret", Claims{UserID: "u1", TenantID: "t1", Role: RoleClient}, time.Hour)
	expired, _ := GenerateToken("secret", Claims{UserID: "u1", TenantID: "t1"}, -time.Minute)
	noTenant, _ := GenerateToken("secret", Claims{UserID: "u1"}, time.Hour)
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u1", TenantID: "t1"}).SignedString([]byte("secret"))
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           "u1",
		TenantID:         "t1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))

	cases := []struct {
		name   string
		secret string
		token  string
		want   error
	}{
		{name: "wrong secret", secret: "other", token: valid, want: ErrInvalidToken},
		{name: "expired", secret: "secret", token: expired, want: ErrInvalidToken},
		{name: "missing expiry", secret: "secret", token: noExpiry, want: ErrInvalidToken},
		{name: "other algorithm", secret: "secret", token: hs512, want: ErrInvalidToken},
		{name: "garbage", secret: "secret", token: "not.a.token", want: ErrInvalidToken},
		{name: "missing tenant", secret: "secret", token: noTenant, want: ErrMissingClaim},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseToken(tc.secret, tc.token); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStaticPermissions(t *testing.T) {
	perms := NewStaticPermissions()
	cases := []struct {
		role string
		perm string
		want bool
	}{
		{RoleClient, PermIdentityExtract, true},
		{RoleClient, PermIdentityLookup, false},
		{RoleLawyer, PermIdentityLookup, true},
		{RoleLawyer, PermAuditRead, false},
		{RoleAdmin, PermAuditRead, true},
		{"", PermSeveranceRead, false},
		{"unknown", PermSeveranceRead, false},
	}
	for _, tc := range cases {
		got, err := perms.HasPermission(context.Background(), tc.role, tc.perm)
		if err != nil {
			t.Fatalf("has permission: %v", err)
		}
		if got != tc.want {
			t.Fatalf("%s/%s: expected %v, got %v", tc.role, tc.perm, tc.want, got)
		}
	}
}
