package utils

import (
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/fit-lynq/api-go/models"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// GenerateAccessToken signs a JWT carrying the user's id and account
// type.
func GenerateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"user_type": user.UserType,
		"exp":       time.Now().Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// GenerateRefreshToken returns an opaque token persisted server-side.
func GenerateRefreshToken() string {
	return uuid.New().String()
}

// GenerateReferralCode returns a short unique code like REF-1A2B3C.
func GenerateReferralCode() string {
	id := uuid.New().String()
	code := ""
	for _, r := range id {
		if r == '-' {
			continue
		}
		code += string(r)
		if len(code) == 6 {
			break
		}
	}
	return "REF-" + code
}
