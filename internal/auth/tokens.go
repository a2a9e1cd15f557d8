package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("неверный или просроченный токен")

// TokenIssuer выпускает и проверяет пары access/refresh токенов (HS256).
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (i *TokenIssuer) Issue(userID uint) (TokenPair, error) {
	access, err := i.generate(userID, i.accessTTL, i.accessSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("access токен: %w", err)
	}
	refresh, err := i.generate(userID, i.refreshTTL, i.refreshSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("refresh токен: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (i *TokenIssuer) ParseAccess(token string) (uint, error) {
	return i.parse(token, i.accessSecret)
}

func (i *TokenIssuer) ParseRefresh(token string) (uint, error) {
	return i.parse(token, i.refreshSecret)
}

func (i *TokenIssuer) generate(userID uint, duration time.Duration, secret []byte) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (i *TokenIssuer) parse(tokenString string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}
