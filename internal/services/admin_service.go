package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lakesideBack/internal/models"
	"lakesideBack/utils"
)

const (
	adminTokenTTL   = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (models.Admin, error)
	UpsertAdmin(ctx context.Context, admin models.Admin) error
	CreateSession(ctx context.Context, session models.Session) error
}

type AdminService struct {
	Store        AdminStore
	TokenManager *utils.Manager
	SigningKey   string
}

func (s *AdminService) SignIn(ctx context.Context, username, password string) (models.Tokens, error) {
	admin, err := s.Store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrAdminNotFound) {
			return models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		log.Printf("Invalid password for admin: %s", username)
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	claims := &models.Claims{
		AdminID:  uint(admin.ID),
		Username: admin.Username,
		Role:     admin.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(adminTokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.SigningKey))
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken := uuid.New().String()
	if s.TokenManager != nil {
		refreshToken, err = s.TokenManager.NewRefreshToken()
		if err != nil {
			return models.Tokens{}, err
		}
	}

	err = s.Store.CreateSession(ctx, models.Session{
		AdminID:      admin.ID,
		Role:         admin.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    "24h",
	}, nil
}

// EnsureBootstrapAdmin seeds the admin account from configuration at
// startup. Credentials live in config, never in code.
func (s *AdminService) EnsureBootstrapAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Store.UpsertAdmin(ctx, models.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
}
