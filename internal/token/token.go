// Package token mints bearer JWTs and single-use password-reset tokens.
package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dkarimov/user-account-service/internal/domain"
	"github.com/dkarimov/user-account-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultResetTTL = 15 * time.Minute
	defaultAuthTTL  = 24 * time.Hour
)

type Issuer struct {
	resetTokens repository.ResetTokenRepository
	jwtKey      []byte
	resetTTL    time.Duration
	authTTL     time.Duration
}

func NewIssuer(resetTokens repository.ResetTokenRepository, jwtKey []byte) *Issuer {
	return &Issuer{
		resetTokens: resetTokens,
		jwtKey:      jwtKey,
		resetTTL:    defaultResetTTL,
		authTTL:     defaultAuthTTL,
	}
}

// MintAuthToken returns a signed HS256 bearer JWT for the user.
func (i *Issuer) MintAuthToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(i.authTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// MintResetToken generates a random reset token for the user, stores its
// SHA-256 digest with an expiry, and returns the raw token for delivery.
func (i *Issuer) MintResetToken(ctx context.Context, user *domain.User) (string, error) {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	rawToken := hex.EncodeToString(raw)
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	expiresAt := time.Now().Add(i.resetTTL)
	if err := i.resetTokens.Create(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return rawToken, nil
}

// ValidateAndConsumeResetToken claims the token and checks it was minted for
// userID. Consumption happens even when the user check fails: a reset token
// is single-use no matter who submits it.
func (i *Issuer) ValidateAndConsumeResetToken(ctx context.Context, userID, rawToken string) error {
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	rt, err := i.resetTokens.Claim(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			return domain.ErrResetTokenInvalid
		}
		return fmt.Errorf("claim reset token: %w", err)
	}
	if rt.UserID != userID {
		return domain.ErrResetTokenInvalid
	}
	return nil
}
