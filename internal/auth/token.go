package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/auth-service/internal/domain"
)

// tokenTTL is fixed on purpose: the verifier trusts only the expiry embedded
// in the token itself, so there is no per-deployment TTL to keep in sync.
const tokenTTL = time.Hour

// TokenManager issues and verifies signed bearer tokens. The secret is set
// once at startup and shared read-only between issuing and verification.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager builds a manager around the process-wide signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the time source used for issuance and expiry checks.
// Intended for tests.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Claims describes the JWT payload.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the subject with a fixed one-hour lifetime. The
// random jti guarantees that two tokens for the same subject are never the
// same string, even when issued within the same second.
func (tm *TokenManager) Issue(subject string, role domain.Role) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tokenTTL)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrTokenSigning, err)
	}
	return signed, expiresAt, nil
}

// Verify checks token structure, signature and expiry and returns the decoded
// claims. Failures are reported as exactly one of ErrMalformedToken,
// ErrInvalidSignature or ErrTokenExpired; an undecodable structure or an
// unexpected signing algorithm counts as malformed, never as a signature
// mismatch.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)

	var claims Claims
	parsed, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS512 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrMalformedToken
		}
	}
	if !parsed.Valid {
		return nil, ErrMalformedToken
	}

	// A signed token may still carry a role string minted before the role set
	// changed; unknown roles are rejected rather than passed through.
	if _, err := domain.ParseRole(string(claims.Role)); err != nil {
		return nil, ErrMalformedToken
	}
	return &claims, nil
}
