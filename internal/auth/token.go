package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed indicates the token could not be parsed or its
	// claim set is incomplete.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenBadSignature indicates the signature does not match.
	ErrTokenBadSignature = errors.New("token signature is invalid")

	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("token is expired")
)

// Claims is the identity embedded in an issued token.
type Claims struct {
	UserID   int64
	Username string
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-SHA256 signed JWTs. The secret is
// held in process memory and is read-only after construction, so the
// manager is safe for concurrent use.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and
// token lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a claim set for the given user, valid for the configured
// lifetime from now.
func (t *TokenManager) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity and expiry and returns the embedded
// claims. Any failure is a hard reject mapped to one of the sentinel
// errors above; there is no partial-trust path.
func (t *TokenManager) Verify(tokenString string) (Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(t.issuer))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrTokenBadSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrTokenMalformed
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
		}
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.Username == "" {
		return Claims{}, ErrTokenMalformed
	}

	return Claims{UserID: userID, Username: claims.Username}, nil
}
