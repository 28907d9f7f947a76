package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zistal/zistal/kit"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateValidate_RoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, &Claims{Username: "vishal"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "vishal" {
		t.Errorf("Username = %q, want %q", claims.Username, "vishal")
	}
}

func TestGenerateToken_ShortSecret(t *testing.T) {
	// WHAT: Secrets under 32 bytes are refused outright.
	if _, err := GenerateToken([]byte("short"), &Claims{Username: "x"}, time.Hour); !errors.Is(err, ErrSecretTooShort) {
		t.Errorf("err = %v, want ErrSecretTooShort", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, &Claims{Username: "vishal"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	other := []byte("ffffffffffffffffffffffffffffffff")
	if _, err := ValidateToken(other, token); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, &Claims{Username: "vishal"}, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(testSecret, token); err == nil {
		t.Error("expected validation failure for expired token")
	}
}

func TestMiddleware_CookieSession(t *testing.T) {
	// WHAT: A valid token cookie puts claims and the username in context.
	token, err := GenerateToken(testSecret, &Claims{Username: "vishal"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var gotUser string
	var gotClaims *Claims
	h := Middleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = kit.GetUser(r.Context())
		gotClaims = GetClaims(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotUser != "vishal" {
		t.Errorf("user in context = %q, want %q", gotUser, "vishal")
	}
	if gotClaims == nil || gotClaims.Username != "vishal" {
		t.Errorf("claims in context = %+v", gotClaims)
	}
}

func TestMiddleware_InvalidTokenIgnored(t *testing.T) {
	// WHAT: A garbage token leaves the request anonymous; enforcement is
	// a separate layer's job.
	var gotClaims *Claims
	h := Middleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = GetClaims(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if gotClaims != nil {
		t.Errorf("claims = %+v, want nil", gotClaims)
	}
}

func TestFixed_Authenticate(t *testing.T) {
	f, err := NewFixed("vishal", "1234")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	claims, err := f.Authenticate(ctx, "vishal", "1234")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if claims.Username != "vishal" {
		t.Errorf("Username = %q", claims.Username)
	}

	// Leading/trailing whitespace around the username is tolerated.
	if _, err := f.Authenticate(ctx, "  vishal ", "1234"); err != nil {
		t.Errorf("trimmed username rejected: %v", err)
	}

	for _, tc := range []struct{ u, p string }{
		{"vishal", "wrong"},
		{"someone", "1234"},
		{"", ""},
	} {
		if _, err := f.Authenticate(ctx, tc.u, tc.p); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q, %q) err = %v, want ErrInvalidCredentials", tc.u, tc.p, err)
		}
	}
}
