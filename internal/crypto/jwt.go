package crypto

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token failure mode. Clients never learn
// whether the signature, expiry, issuer or audience was at fault.
var ErrInvalidToken = errors.New("invalid or expired token")

const (
	tokenIssuer   = "bookshop"
	tokenAudience = "bookshop-api"
)

// tokenParser rejects anything that is not HS256-signed, addressed to
// this API, and carrying an expiry.
var tokenParser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithIssuer(tokenIssuer),
	jwt.WithAudience(tokenAudience),
	jwt.WithExpirationRequired(),
)

// Claims carries the authenticated user's ID alongside the registered
// JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// GenerateToken issues a signed token for userID that expires after the
// given duration.
func GenerateToken(userID int64, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies a token's signature and registered claims and
// returns the embedded claims.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := tokenParser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
