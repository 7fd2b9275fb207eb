package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/campusthreads/marketplace-api/models"
	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Principal is the verified identity carried by a bearer token.
type Principal struct {
	UserID   uint
	Role     string
	VendorID *uint
}

func jwtSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("dev")
}

func GenerateJWT(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	if user.VendorID != nil {
		claims["vendorId"] = *user.VendorID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func ParseJWT(tokenString string) (Principal, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return Principal{}, fmt.Errorf("%w: missing role", ErrInvalidToken)
	}

	principal := Principal{UserID: uint(userID), Role: role}
	if raw, ok := claims["vendorId"].(float64); ok && raw > 0 {
		vendorID := uint(raw)
		principal.VendorID = &vendorID
	}
	return principal, nil
}
