package transport

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned when a bearer token is not a JWT.
var ErrNotJWT = errors.New("bearer token is not a JWT")

// BearerInfo describes the claims of a bearer JWT; the signature is not verified.
type BearerInfo struct {
	Subject string
	Issuer  string
	Expiry  time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (b *BearerInfo) Expired(now time.Time) bool {
	return !b.Expiry.IsZero() && now.After(b.Expiry)
}

// InspectBearer decodes the JWT carried by an Authorization header value ("Bearer <jwt>").
func InspectBearer(authorization string) (*BearerInfo, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return nil, ErrNotJWT
	}
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 {
		return nil, ErrNotJWT
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Join(ErrNotJWT, err)
	}
	ret := &BearerInfo{}
	ret.Subject, _ = claims.GetSubject()
	ret.Issuer, _ = claims.GetIssuer()
	if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
		ret.Expiry = expiry.Time
	}
	return ret, nil
}
