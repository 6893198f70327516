package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a session token is malformed, expired, or
// fails signature verification.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims holds the JWT claims of a session cookie. The token carries
// only the session ID; the session store remains authoritative for identity
// and revocation.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// SessionTokens issues and validates HS256-signed session-cookie tokens.
// Signing prevents session-ID forgery; it does not replace the store lookup.
type SessionTokens struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// NewSessionTokens returns a SessionTokens signing with the given secret.
// lifetime bounds the token itself; sessions also expire server-side.
func NewSessionTokens(secret []byte, issuer string, lifetime time.Duration) *SessionTokens {
	return &SessionTokens{secret: secret, issuer: issuer, lifetime: lifetime}
}

// Issue signs a token binding the cookie to sessionID.
func (p *SessionTokens) Issue(sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.lifetime)),
		},
		SessionID: sessionID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Validate verifies the token and returns the session ID it carries.
func (p *SessionTokens) Validate(token string) (string, error) {
	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	}, jwt.WithIssuer(p.issuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
