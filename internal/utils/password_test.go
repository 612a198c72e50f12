package utils

import "testing"

func TestValidatePassword(t *testing.T) {
    cases := []struct {
        name string
        pw   string
        ok   bool
    }{
        {"valid", "Abcdef12", true},
        {"valid long", "SuperSecret99", true},
        {"too short", "Abc12", false},
        {"no uppercase", "abcdefg1", false},
        {"no lowercase", "ABCDEFG1", false},
        {"no digit", "Abcdefgh", false},
        {"symbol rejected", "Abcdef1!", false},
        {"space rejected", "Abcdef 12", false},
        {"empty", "", false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            err := ValidatePassword(tc.pw)
            if tc.ok && err != nil {
                t.Fatalf("ValidatePassword(%q) = %v, want nil", tc.pw, err)
            }
            if !tc.ok && err != ErrWeakPassword {
                t.Fatalf("ValidatePassword(%q) = %v, want ErrWeakPassword", tc.pw, err)
            }
        })
    }
}

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("Abcdef12", 4)
    if err != nil {
        t.Fatalf("HashPassword: %v", err)
    }
    if hash == "Abcdef12" {
        t.Fatal("hash must not equal the plain password")
    }
    if !VerifyPassword(hash, "Abcdef12") {
        t.Fatal("VerifyPassword rejected the correct password")
    }
    if VerifyPassword(hash, "Abcdef13") {
        t.Fatal("VerifyPassword accepted a wrong password")
    }
}
