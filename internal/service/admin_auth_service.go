package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/phone_price_api/internal/models"
	"github.com/GTDGit/phone_price_api/internal/utils"
)

type AdminAuthService struct {
	adminRepo AdminUserStore
}

func NewAdminAuthService(adminRepo AdminUserStore) *AdminAuthService {
	return &AdminAuthService{adminRepo: adminRepo}
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string            `json:"token"`
	Admin *models.AdminUser `json:"admin"`
}

func (s *AdminAuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	log.Debug().Str("email", email).Msg("Login attempt")

	user, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load admin: %w", err)
	}
	if user == nil {
		log.Warn().Str("email", email).Msg("Unknown admin email")
		return nil, utils.ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Str("email", email).Msg("Account is inactive")
		return nil, utils.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Password verification failed")
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.adminRepo.TouchLastLogin(ctx, user.ID); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("Failed to record last login")
	}

	log.Info().Str("email", email).Msg("Login successful")
	return &LoginResult{Token: token, Admin: user}, nil
}

// EnsureAdmin creates the bootstrap admin from a precomputed bcrypt hash
// unless an account with that email already exists.
func (s *AdminAuthService) EnsureAdmin(ctx context.Context, email, passwordHash, name string) (bool, error) {
	email = normalizeEmail(email)
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return false, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}

	existing, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("load admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		IsActive:     true,
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
