package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"pims/config"
	"pims/models"
)

// Token types carried in the claims so a refresh token can't be replayed as
// an access token.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	PrincipalID uint   `json:"principal_id"`
	Username    string `json:"username"`
	TokenType   string `json:"token_type"`
	jwt.RegisteredClaims
}

func signToken(p *models.Principal, tokenType string, ttl time.Duration) (string, error) {
	claims := &Claims{
		PrincipalID: p.ID,
		Username:    p.Username,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// GenerateTokenPair issues the access/refresh pair for a principal.
func GenerateTokenPair(p *models.Principal) (string, string, error) {
	accessToken, err := signToken(p, TokenTypeAccess, accessTokenTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := signToken(p, TokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
// There is no revocation list; tokens stay good until natural expiry.
func RefreshAccessToken(db *gorm.DB, refreshToken string) (string, error) {
	claims, err := ParseToken(refreshToken)
	if err != nil {
		return "", err
	}

	if claims.TokenType != TokenTypeRefresh {
		return "", errors.New("token is not a refresh token")
	}

	var principal models.Principal
	if err := db.First(&principal, claims.PrincipalID).Error; err != nil {
		return "", errors.New("principal not found")
	}

	return signToken(&principal, TokenTypeAccess, accessTokenTTL)
}
