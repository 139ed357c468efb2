package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/clinic-service/internal/domain"
)

const testSecret = "test-secret"

func testIdentity() domain.Identity {
	return domain.Identity{ID: 42, Name: "Admin User", Email: "admin@example.com", Role: domain.RoleAdmin}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	identities := []domain.Identity{
		testIdentity(),
		{ID: 7, Name: "Dr. Grey", Email: "grey@example.com", Role: domain.RoleDoctor},
		{ID: 9, Name: "Front Desk", Email: "desk@example.com", Role: domain.RoleReceptionist},
	}

	for _, identity := range identities {
		token, expiresAt, err := tm.Generate(identity)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > 61*time.Minute {
			t.Errorf("expiry %v not about one hour away", remaining)
		}

		claims, err := tm.Parse(token)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if claims.Identity != identity {
			t.Errorf("claims identity = %+v, want %+v", claims.Identity, identity)
		}
	}
}

func TestTokenTamperDetection(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)
	token, _, err := tm.Generate(testIdentity())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Flip a single byte in the payload section.
	raw := []byte(token)
	idx := len(raw) / 2
	if raw[idx] == 'a' {
		raw[idx] = 'b'
	} else {
		raw[idx] = 'a'
	}

	if _, err := tm.Parse(string(raw)); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Parse(tampered) = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("other-secret", 60).Generate(testIdentity())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tm := NewTokenManager(testSecret, 60)
	if _, err := tm.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Parse(foreign secret) = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenExpired(t *testing.T) {
	// Correctly signed token whose expiry already passed.
	claims := &Claims{
		Identity: testIdentity(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tm := NewTokenManager(testSecret, 60)
	if _, err := tm.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Parse(expired) = %v, want ErrTokenExpired", err)
	}
}

func TestTokenRejectsUnexpectedSigningMethod(t *testing.T) {
	claims := &Claims{
		Identity: testIdentity(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tm := NewTokenManager(testSecret, 60)
	if _, err := tm.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Parse(alg none) = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager(testSecret, 0)
	if tm.ttl != time.Hour {
		t.Errorf("default ttl = %v, want 1h", tm.ttl)
	}
}
