package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dkarimov/user-account-service/internal/domain"
	"github.com/dkarimov/user-account-service/internal/email"
	"github.com/dkarimov/user-account-service/internal/password"
	"github.com/dkarimov/user-account-service/internal/repository"
	"github.com/google/uuid"
)

// tokenIssuer is the subset of token.Issuer the auth flows need.
// Defined here (point of use) so tests can inject a fake.
type tokenIssuer interface {
	MintAuthToken(user *domain.User) (string, error)
	MintResetToken(ctx context.Context, user *domain.User) (string, error)
	ValidateAndConsumeResetToken(ctx context.Context, userID, rawToken string) error
}

type AuthUsecase struct {
	users         repository.UserRepository
	hasher        password.Hasher
	tokens        tokenIssuer
	email         email.Sender
	resetLinkBase string
}

func NewAuthUsecase(users repository.UserRepository, hasher password.Hasher, tokens tokenIssuer, emailSender email.Sender, resetLinkBase string) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		hasher:        hasher,
		tokens:        tokens,
		email:         emailSender,
		resetLinkBase: resetLinkBase,
	}
}

// Login verifies the credentials and returns the user plus a bearer token.
// An unknown email and a wrong password both map to ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plainPassword string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	ok, err := u.hasher.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := u.tokens.MintAuthToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("mint auth token: %w", err)
	}
	return user, tok, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates the account and returns a bearer token for it.
// Returns ErrEmailTaken when the email is already registered; the store's
// unique index surfaces the same error if a concurrent register wins the race.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (string, error) {
	taken, err := u.users.ExistsByEmail(ctx, input.Email, "")
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if taken {
		return "", domain.ErrEmailTaken
	}

	digest, err := u.hasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: digest,
	})
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	tok, err := u.tokens.MintAuthToken(user)
	if err != nil {
		return "", fmt.Errorf("mint auth token: %w", err)
	}
	return tok, nil
}

// ForgotPassword mints a reset token for the account and emails a reset link.
// Returns ErrUserNotFound when no account holds the email.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	rawToken, err := u.tokens.MintResetToken(ctx, user)
	if err != nil {
		return fmt.Errorf("mint reset token: %w", err)
	}

	link := u.resetLinkBase + "/reset-password?token=" + rawToken +
		"&email=" + url.QueryEscape(user.Email)
	subject := "Reset your password"
	body := fmt.Sprintf(
		`<p>Click the link below to reset your password (expires in 15 minutes):</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

type ResetPasswordInput struct {
	Email    string
	Token    string
	Password string
}

// ResetPassword consumes the reset token and replaces the account password.
// Returns ErrUserNotFound for an unknown email and ErrResetTokenInvalid for
// a token that is unknown, expired, consumed, or minted for another account.
func (u *AuthUsecase) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	user, err := u.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := u.tokens.ValidateAndConsumeResetToken(ctx, user.ID, input.Token); err != nil {
		return err
	}

	digest, err := u.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = digest
	if _, err := u.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
