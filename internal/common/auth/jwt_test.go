package auth

import (
	"testing"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/common/config"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "drivefleet",
		Audience:  "drivefleet",
	}

	token, exp, err := GenerateAccessToken(cfg, "u-1", []string{"staff"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "staff" {
		t.Fatalf("roles mismatch: %#v", claims.Roles)
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	issue := config.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"}
	verify := config.AuthConfig{JWTSecret: "test-secret", Issuer: "drivefleet"}

	token, _, err := GenerateAccessToken(issue, "u-1", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := ParseAccessToken(verify, token); err == nil {
		t.Fatalf("expected issuer mismatch to fail")
	}
}

func TestParseAccessTokenRejectsBadSignature(t *testing.T) {
	issue := config.AuthConfig{JWTSecret: "secret-a"}
	verify := config.AuthConfig{JWTSecret: "secret-b"}

	token, _, err := GenerateAccessToken(issue, "u-1", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := ParseAccessToken(verify, token); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}
}
