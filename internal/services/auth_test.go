package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edulearn/edulearn-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeIdP struct {
	key  *rsa.PrivateKey
	kid  string
	srv  *httptest.Server
	proj string
}

func newFakeIdP(t *testing.T) *fakeIdP {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create cert: %v", err)
	}
	certPEM := string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))

	idp := &fakeIdP{key: key, kid: "test-kid", proj: "edulearn-test"}
	idp.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		json.NewEncoder(w).Encode(map[string]string{idp.kid: certPEM})
	}))
	t.Cleanup(idp.srv.Close)
	return idp
}

func (idp *fakeIdP) token(t *testing.T, mutate func(jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":   "https://securetoken.google.com/" + idp.proj,
		"aud":   idp.proj,
		"sub":   "user-123",
		"email": "student@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Add(-time.Minute).Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = idp.kid
	signed, err := tok.SignedString(idp.key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newVerifier(t *testing.T, idp *fakeIdP) TokenVerifier {
	t.Helper()
	v, err := NewFirebaseVerifier(testLogger(t), idp.proj, WithCertsURL(idp.srv.URL))
	if err != nil {
		t.Fatalf("NewFirebaseVerifier: %v", err)
	}
	return v
}

func TestVerifyValidToken(t *testing.T) {
	idp := newFakeIdP(t)
	identity, err := newVerifier(t, idp).Verify(context.Background(), idp.token(t, nil))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UID != "user-123" {
		t.Fatalf("uid = %q", identity.UID)
	}
	if identity.Email != "student@example.com" {
		t.Fatalf("email = %q", identity.Email)
	}
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	idp := newFakeIdP(t)
	tok := idp.token(t, func(c jwt.MapClaims) { c["aud"] = "other-project" })
	if _, err := newVerifier(t, idp).Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected rejection for wrong audience")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	idp := newFakeIdP(t)
	tok := idp.token(t, func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() })
	if _, err := newVerifier(t, idp).Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected rejection for expired token")
	}
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	idp := newFakeIdP(t)
	tok := idp.token(t, func(c jwt.MapClaims) { delete(c, "sub") })
	if _, err := newVerifier(t, idp).Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected rejection for missing subject")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	idp := newFakeIdP(t)
	if _, err := newVerifier(t, idp).Verify(context.Background(), "not.a.token"); err == nil {
		t.Fatalf("expected rejection for malformed token")
	}
}

func TestVerifierRequiresProject(t *testing.T) {
	if _, err := NewFirebaseVerifier(testLogger(t), "  "); err == nil {
		t.Fatalf("expected error for empty project id")
	}
}
