package main

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	uid := primitive.NewObjectID()
	tok, err := signJWT("secret", uid)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	got, err := parseJWT("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != uid {
		t.Fatalf("subject = %s, want %s", got.Hex(), uid.Hex())
	}
}

func TestJWTWrongSecret(t *testing.T) {
	tok, err := signJWT("secret", primitive.NewObjectID())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := parseJWT("other", tok); err == nil {
		t.Fatal("expected rejection with wrong secret")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := parseJWT("secret", "not.a.token"); err == nil {
		t.Fatal("expected rejection of malformed token")
	}
}
