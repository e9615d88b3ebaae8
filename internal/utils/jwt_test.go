package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func TestTokenPairRoundTrip(t *testing.T) {
	t.Parallel()

	userID := primitive.NewObjectID()
	pair, err := GenerateTokenPair(userID, "customer", "user@example.com", testSecret)
	if err != nil {
		t.Fatalf("failed to generate tokens: %v", err)
	}

	if pair.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %q", pair.TokenType)
	}

	claims, err := ValidateToken(pair.AccessToken, testSecret)
	if err != nil {
		t.Fatalf("failed to validate access token: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("expected user ID %s, got %s", userID.Hex(), claims.UserID.Hex())
	}
	if claims.Role != "customer" {
		t.Errorf("expected role customer, got %q", claims.Role)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	pair, err := GenerateTokenPair(primitive.NewObjectID(), "driver", "d@example.com", testSecret)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateToken(pair.AccessToken, "other-secret"); err == nil {
		t.Error("expected validation to fail with a wrong secret")
	}
}

func TestRefreshAccessToken(t *testing.T) {
	t.Parallel()

	userID := primitive.NewObjectID()
	pair, err := GenerateTokenPair(userID, "admin", "a@example.com", testSecret)
	if err != nil {
		t.Fatal(err)
	}

	refreshed, err := RefreshAccessToken(pair.RefreshToken, testSecret)
	if err != nil {
		t.Fatalf("failed to refresh: %v", err)
	}

	claims, err := ValidateToken(refreshed.AccessToken, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != userID || claims.Role != "admin" {
		t.Errorf("refreshed claims mismatch: %+v", claims)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := ValidateToken("not-a-token", testSecret); err == nil {
		t.Error("expected validation to fail for garbage input")
	}
}
