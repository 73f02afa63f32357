package identity_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"homenest/internal/adapters/identity"
	"homenest/internal/domain"
)

func creds(t *testing.T) string {
	t.Helper()
	blob, _ := json.Marshal(map[string]string{"project_id": "homenest-test", "api_key": "test-key"})
	return base64.StdEncoding.EncodeToString(blob)
}

func TestClient_Verify_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/tokens:verify") {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var body struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Token != "good-token" {
			w.WriteHeader(401)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"email": "a@x.com"})
	}))
	defer ts.Close()

	cl, err := identity.New(ts.URL, creds(t), 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	id, err := cl.Verify(ctx, "good-token")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id.Email != "a@x.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestClient_Verify_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer ts.Close()

	cl, err := identity.New(ts.URL, creds(t), 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = cl.Verify(context.Background(), "stale-token")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "token expired") {
		t.Fatalf("expected provider detail in error, got %v", err)
	}
}

func TestClient_Verify_ProviderDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
	}))
	defer ts.Close()

	cl, err := identity.New(ts.URL, creds(t), 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = cl.Verify(context.Background(), "any")
	if err == nil || errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected non-rejection error, got %v", err)
	}
}

func TestNew_BadCredentialBlob(t *testing.T) {
	if _, err := identity.New("http://localhost", "not-base64!!", 10); err == nil {
		t.Fatalf("expected error for undecodable blob")
	}
}

func TestLocalVerifier_RoundTrip(t *testing.T) {
	v := identity.NewLocal("test-secret")

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "vendor@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	id, err := v.Verify(context.Background(), signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Email != "vendor@x.com" {
		t.Fatalf("unexpected email: %s", id.Email)
	}
}

func TestLocalVerifier_Expired(t *testing.T) {
	v := identity.NewLocal("test-secret")

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "vendor@x.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	signed, _ := tok.SignedString([]byte("test-secret"))

	if _, err := v.Verify(context.Background(), signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}
