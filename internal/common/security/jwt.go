package security

import (
	"context"
	"errors"
	"time"

	"telco_dash/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken signs a session token for the given user. The token
// carries subject id, role and a fixed expiry window from config.
func GenerateToken(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     now.Add(config.AppConfig.SessionTTL).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// VerifyToken validates a session token and returns its subject id and
// role. It fails closed: any signature mismatch, malformed payload or
// past expiry yields an error with no partial result.
func VerifyToken(tokenString string) (userID, role string, err error) {
	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil {
		return "", "", err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", "", err
	}
	userID, err = GetUserIDFromClaims(claims)
	if err != nil {
		return "", "", err
	}
	role, err = GetUserRoleFromClaims(claims)
	if err != nil {
		return "", "", err
	}
	return userID, role, nil
}

// Helper functions to extract claims, used by middleware and services.
func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims map[string]interface{}) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
