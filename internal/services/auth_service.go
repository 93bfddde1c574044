package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hallmoor/binduty/internal/config"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminNotFound      = errors.New("admin not found")
)

type AuthService struct {
	admins store.Collection[models.Admin]
	cfg    *config.Config
}

func NewAuthService(s store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		admins: store.NewCollection[models.Admin](s, store.KeyAdmins),
		cfg:    cfg,
	}
}

// Login checks credentials against the admins collection and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.Admin, error) {
	if email == "" || password == "" {
		return "", models.Admin{}, ErrInvalidCredentials
	}
	admins, err := s.admins.Load(ctx)
	if err != nil {
		return "", models.Admin{}, err
	}
	for _, a := range admins {
		if a.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
			return "", models.Admin{}, ErrInvalidCredentials
		}
		token, err := s.GenerateToken(a)
		if err != nil {
			return "", models.Admin{}, err
		}
		return token, a, nil
	}
	return "", models.Admin{}, ErrInvalidCredentials
}

// FindByID resolves the admin behind a verified token; deleted admins lose
// access immediately.
func (s *AuthService) FindByID(ctx context.Context, id string) (models.Admin, error) {
	admins, err := s.admins.Load(ctx)
	if err != nil {
		return models.Admin{}, err
	}
	for _, a := range admins {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Admin{}, ErrAdminNotFound
}

// GenerateToken issues an HS256 token carrying the admin id, matching the
// wire format the web client already speaks.
func (s *AuthService) GenerateToken(admin models.Admin) (string, error) {
	claims := jwt.MapClaims{
		"id":  admin.ID,
		"exp": time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken verifies a raw token and returns the admin id claim.
func (s *AuthService) ParseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return "", errors.New("missing id claim")
	}
	return id, nil
}
