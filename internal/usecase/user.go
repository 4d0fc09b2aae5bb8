package usecase

import (
	"context"
	"fmt"

	"github.com/dkarimov/user-account-service/internal/domain"
	"github.com/dkarimov/user-account-service/internal/password"
	"github.com/dkarimov/user-account-service/internal/repository"
	"github.com/google/uuid"
)

type UserUsecase struct {
	users  repository.UserRepository
	hasher password.Hasher
}

func NewUserUsecase(users repository.UserRepository, hasher password.Hasher) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher}
}

func (u *UserUsecase) List(ctx context.Context) ([]*domain.User, error) {
	users, err := u.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

func (u *UserUsecase) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	taken, err := u.users.ExistsByEmail(ctx, input.Email, "")
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	digest, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: digest,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// UpdateUserInput carries partial updates; nil means "leave unchanged".
type UpdateUserInput struct {
	ID       string
	Name     *string
	Email    *string
	Password *string
}

func (u *UserUsecase) Update(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != "" {
		// Uniqueness check excludes the record itself so a no-op email
		// update doesn't trip over its own row.
		taken, err := u.users.ExistsByEmail(ctx, *input.Email, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Password != nil && *input.Password != "" {
		digest, err := u.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = digest
	}

	updated, err := u.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (u *UserUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
