package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Mergington-High/activity-signup-client/internal/domain"
)

// ErrMalformedToken indicates the bearer token could not be decoded: it is
// not a three-segment JWS, its payload is not valid base64/JSON, or the
// payload carries no usable `sub` claim.
var ErrMalformedToken = errors.New("malformed token")

// DecodeSubject extracts the `sub` claim from a bearer token WITHOUT
// verifying its signature. The result is a client-side display identity only;
// the service remains the sole authority on what the caller may do.
//
// The function is pure and idempotent: every component that needs the current
// identity goes through it rather than decoding inline.
func DecodeSubject(raw string) (domain.SubjectID, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: payload has no sub claim", ErrMalformedToken)
	}
	return domain.SubjectID(sub), nil
}
