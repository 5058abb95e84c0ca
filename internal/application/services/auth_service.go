package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/config"
	"github.com/silkmarket/core/internal/infrastructure/logger"
)

// CredentialVerifier checks a presented admin secret
type CredentialVerifier interface {
	Verify(presented string) bool
	Mode() string
}

// PlaintextVerifier compares against a configured secret
type PlaintextVerifier struct {
	secret []byte
}

// NewPlaintextVerifier creates a verifier for a plaintext secret
func NewPlaintextVerifier(secret string) *PlaintextVerifier {
	return &PlaintextVerifier{secret: []byte(secret)}
}

func (v *PlaintextVerifier) Verify(presented string) bool {
	if presented == "" || len(v.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), v.secret) == 1
}

func (v *PlaintextVerifier) Mode() string { return "plaintext" }

// BcryptVerifier compares against a bcrypt hash
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier creates a verifier for a bcrypt hash
func NewBcryptVerifier(hash string) *BcryptVerifier {
	return &BcryptVerifier{hash: []byte(hash)}
}

func (v *BcryptVerifier) Verify(presented string) bool {
	if presented == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(presented)) == nil
}

func (v *BcryptVerifier) Mode() string { return "bcrypt" }

// NewCredentialVerifier picks the bcrypt verifier when a hash is configured
// and falls back to the plaintext password otherwise.
func NewCredentialVerifier(cfg config.AdminConfig) (CredentialVerifier, error) {
	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return NewBcryptVerifier(cfg.PasswordHash), nil
	}
	return NewPlaintextVerifier(cfg.Password), nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// AuthService handles admin authentication
type AuthService struct {
	verifier CredentialVerifier
	logger   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(verifier CredentialVerifier, logger *logger.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		logger:   logger,
	}
}

// Authenticate returns entities.ErrUnauthorized unless presented matches the
// configured credential. Nothing is issued; every admin request presents it again.
func (s *AuthService) Authenticate(ctx context.Context, presented string) error {
	if !s.verifier.Verify(presented) {
		return entities.ErrUnauthorized
	}
	return nil
}

// Mode reports which verifier is active
func (s *AuthService) Mode() string {
	return s.verifier.Mode()
}
