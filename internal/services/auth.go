package services

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edulearn/edulearn-backend/internal/logger"
)

const firebaseCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// Identity is the decoded caller identity exposed to routes behind auth.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier checks a Firebase ID token and returns the identity it
// carries. Any failure reason stays internal; callers respond with a
// generic unauthorized.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type denyAllVerifier struct{}

func (denyAllVerifier) Verify(context.Context, string) (*Identity, error) {
	return nil, errors.New("token verification not configured")
}

// DenyAllVerifier rejects every token. It stands in when no Firebase
// project is configured so the auth routes fail closed.
func DenyAllVerifier() TokenVerifier {
	return denyAllVerifier{}
}

type firebaseVerifier struct {
	log        *logger.Logger
	projectID  string
	certsURL   string
	httpClient *http.Client

	mu     sync.Mutex
	keys   map[string]*rsa.PublicKey
	expiry time.Time
}

type VerifierOption func(*firebaseVerifier)

// WithCertsURL overrides the signing cert endpoint (tests).
func WithCertsURL(u string) VerifierOption {
	return func(v *firebaseVerifier) { v.certsURL = u }
}

func NewFirebaseVerifier(log *logger.Logger, projectID string, opts ...VerifierOption) (TokenVerifier, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	v := &firebaseVerifier{
		log:        log.With("service", "FirebaseVerifier"),
		projectID:  projectID,
		certsURL:   firebaseCertsURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token missing kid header")
		}
		return v.signingKey(ctx, kid)
	})
	if err != nil {
		return nil, err
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.New("token missing subject")
	}
	email, _ := claims["email"].(string)
	return &Identity{UID: sub, Email: email}, nil
}

func (v *firebaseVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if time.Now().After(v.expiry) || v.keys == nil {
		if err := v.refreshKeysLocked(ctx); err != nil {
			return nil, err
		}
	}
	key, ok := v.keys[kid]
	if !ok {
		// The key set rotates; one forced refresh covers a stale cache.
		if err := v.refreshKeysLocked(ctx); err != nil {
			return nil, err
		}
		if key, ok = v.keys[kid]; !ok {
			return nil, fmt.Errorf("no signing key for kid %q", kid)
		}
	}
	return key, nil
}

func (v *firebaseVerifier) refreshKeysLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cert fetch http %d", resp.StatusCode)
	}
	var certs map[string]string
	if err := json.Unmarshal(raw, &certs); err != nil {
		return fmt.Errorf("cert fetch decode: %w", err)
	}
	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		key, err := parseCertKey(certPEM)
		if err != nil {
			v.log.Warn("Skipping unparseable signing cert", "kid", kid, "error", err)
			continue
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return errors.New("cert fetch returned no usable keys")
	}
	v.keys = keys
	v.expiry = time.Now().Add(cacheTTL(resp.Header.Get("Cache-Control")))
	return nil
}

func parseCertKey(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, errors.New("no PEM block")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("certificate key is not RSA")
	}
	return key, nil
}

// cacheTTL honors the endpoint's max-age, with a floor so a missing header
// does not hammer the cert service.
func cacheTTL(cacheControl string) time.Duration {
	for _, part := range strings.Split(cacheControl, ",") {
		part = strings.TrimSpace(part)
		if rest, ok := strings.CutPrefix(part, "max-age="); ok {
			if secs, err := strconv.Atoi(rest); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return 5 * time.Minute
}
