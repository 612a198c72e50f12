package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundtrip(t *testing.T) {
    const secret = "test-secret"
    at, err := NewAccessToken(secret, 42, "CUSTOMER", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if at.Token == "" {
        t.Fatal("empty token")
    }
    if remaining := time.Until(at.Exp); remaining < 14*time.Minute || remaining > 16*time.Minute {
        t.Fatalf("unexpected expiry %v", at.Exp)
    }

    tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        t.Fatalf("parse issued token: %v", err)
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        t.Fatal("claims are not MapClaims")
    }
    if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
        t.Fatalf("sub = %v, want 42", claims["sub"])
    }
    if role, _ := claims["role"].(string); role != "CUSTOMER" {
        t.Fatalf("role = %v, want CUSTOMER", claims["role"])
    }
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right-secret", 1, "ADMIN", 5)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    if err == nil && tok.Valid {
        t.Fatal("token validated with the wrong secret")
    }
}

func TestNewRefreshToken(t *testing.T) {
    rt, err := NewRefreshToken(30)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if len(rt.Raw) != 96 { // 48 random bytes, hex encoded
        t.Fatalf("raw length = %d, want 96", len(rt.Raw))
    }
    if remaining := time.Until(rt.Exp); remaining < 29*24*time.Hour {
        t.Fatalf("unexpected expiry %v", rt.Exp)
    }

    other, err := NewRefreshToken(30)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if rt.Raw == other.Raw {
        t.Fatal("two refresh tokens collided")
    }
}

func TestHashRefreshRaw(t *testing.T) {
    a := HashRefreshRaw("some-token")
    b := HashRefreshRaw("some-token")
    if a != b {
        t.Fatal("hash is not deterministic")
    }
    if len(a) != 64 { // sha256 hex
        t.Fatalf("hash length = %d, want 64", len(a))
    }
    if a == "some-token" {
        t.Fatal("hash must not equal input")
    }
    if HashRefreshRaw("other-token") == a {
        t.Fatal("distinct inputs hashed equal")
    }
}
