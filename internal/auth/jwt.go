// Package auth contains token issuing/validation and the register,
// login and logout handlers for every principal kind.
package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// JwtIssuer identifies tokens minted by this backend
const JwtIssuer = "jobdesk"

// Token lifetimes per principal kind
const (
	UserTokenTTL    = 24 * time.Hour
	CompanyTokenTTL = 7 * 24 * time.Hour
	AdminTokenTTL   = 7 * 24 * time.Hour
)

var secretKey = os.Getenv("SECRET_KEY")

// GenerateToken signs an HS256 access token for the given principal ID.
func GenerateToken(id uuid.UUID, ttl time.Duration) (string, error) {
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    JwtIssuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signedToken, err := accessToken.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %s", err)
	}

	return signedToken, nil
}

// ValidatedToken parses and verifies an access token. Only HMAC signing
// methods are accepted, so a token signed with "none" or an asymmetric
// key never validates.
func ValidatedToken(encodedToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodedToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
}
