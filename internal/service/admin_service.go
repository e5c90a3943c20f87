package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"ethnikart/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid admin password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrAdminDisabled   = errors.New("admin access is not configured")
)

// AdminService is the admin gate: it verifies the shared admin credential
// server-side and issues signed session tokens with a fixed expiry window.
// The password never leaves the server and is never compared client-side.
type AdminService interface {
	Login(password string) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) error
}

type adminService struct {
	cfg config.AdminConfig
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(cfg config.AdminConfig) AdminService {
	return &adminService{cfg: cfg}
}

// Login checks the submitted password and returns a session token expiring
// after the configured window (24 hours by default). Prefers the bcrypt hash
// when configured; falls back to a constant-time comparison against the
// plaintext development password.
func (s *adminService) Login(password string) (string, time.Time, error) {
	if s.cfg.JWTSecret == "" || (s.cfg.PasswordHash == "" && s.cfg.Password == "") {
		return "", time.Time{}, ErrAdminDisabled
	}

	if s.cfg.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
			return "", time.Time{}, ErrInvalidPassword
		}
	} else if subtle.ConstantTimeCompare([]byte(s.cfg.Password), []byte(password)) != 1 {
		return "", time.Time{}, ErrInvalidPassword
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.SessionHours) * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign admin token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken verifies the signature, expiry, and subject of an admin
// session token.
func (s *adminService) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject != "admin" {
		return ErrInvalidToken
	}

	return nil
}
