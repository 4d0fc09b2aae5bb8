package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dkarimov/user-account-service/internal/domain"
	"github.com/dkarimov/user-account-service/internal/usecase"
)

func newUserUsecase(repo *fakeUserRepo) *usecase.UserUsecase {
	return usecase.NewUserUsecase(repo, plainHasher())
}

func strptr(s string) *string { return &s }

// ---- Create ----

func TestCreateUser_HashesPassword(t *testing.T) {
	var created *domain.User
	repo := &fakeUserRepo{
		existsByEmail: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		create: func(_ context.Context, user *domain.User) (*domain.User, error) {
			created = user
			return user, nil
		},
	}

	user, err := newUserUsecase(repo).Create(context.Background(), usecase.CreateUserInput{
		Name: "Ann", Email: "a@x.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PasswordHash != "hashed:secret1" {
		t.Errorf("stored hash = %q, want the hashed password", created.PasswordHash)
	}
	if user.ID == "" {
		t.Error("user ID was not assigned")
	}
}

func TestCreateUser_EmailTaken(t *testing.T) {
	repo := &fakeUserRepo{
		existsByEmail: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
	}

	_, err := newUserUsecase(repo).Create(context.Background(), usecase.CreateUserInput{
		Name: "Ann", Email: "a@x.com", Password: "secret1",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("want ErrEmailTaken, got %v", err)
	}
}

// ---- Update ----

func TestUpdateUser_OnlyName_KeepsEmailAndHash(t *testing.T) {
	existing := *testUser
	var updated *domain.User
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return &existing, nil
		},
		update: func(_ context.Context, u *domain.User) (*domain.User, error) {
			updated = u
			return u, nil
		},
	}

	got, err := newUserUsecase(repo).Update(context.Background(), usecase.UpdateUserInput{
		ID:   testUser.ID,
		Name: strptr("Annabel"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Annabel" {
		t.Errorf("name = %q, want %q", updated.Name, "Annabel")
	}
	if updated.Email != testUser.Email {
		t.Errorf("email changed to %q, want unchanged %q", updated.Email, testUser.Email)
	}
	if updated.PasswordHash != testUser.PasswordHash {
		t.Errorf("password hash changed to %q, want unchanged", updated.PasswordHash)
	}
	if got.Name != "Annabel" {
		t.Errorf("returned record name = %q, want merged value", got.Name)
	}
}

func TestUpdateUser_NewPassword_Rehashed(t *testing.T) {
	existing := *testUser
	var updated *domain.User
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return &existing, nil
		},
		update: func(_ context.Context, u *domain.User) (*domain.User, error) {
			updated = u
			return u, nil
		},
	}

	_, err := newUserUsecase(repo).Update(context.Background(), usecase.UpdateUserInput{
		ID:       testUser.ID,
		Password: strptr("newsecret"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PasswordHash != "hashed:newsecret" {
		t.Errorf("stored hash = %q, want hash of the new password", updated.PasswordHash)
	}
}

func TestUpdateUser_EmailUniquenessExcludesSelf(t *testing.T) {
	existing := *testUser
	var checkedExcludeID string
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return &existing, nil
		},
		existsByEmail: func(_ context.Context, _, excludeID string) (bool, error) {
			checkedExcludeID = excludeID
			return false, nil
		},
		update: func(_ context.Context, u *domain.User) (*domain.User, error) {
			return u, nil
		},
	}

	_, err := newUserUsecase(repo).Update(context.Background(), usecase.UpdateUserInput{
		ID:    testUser.ID,
		Email: strptr("new@x.com"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checkedExcludeID != testUser.ID {
		t.Errorf("uniqueness check excluded %q, want own id %q", checkedExcludeID, testUser.ID)
	}
}

func TestUpdateUser_EmailTakenByOther(t *testing.T) {
	existing := *testUser
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return &existing, nil
		},
		existsByEmail: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
	}

	_, err := newUserUsecase(repo).Update(context.Background(), usecase.UpdateUserInput{
		ID:    testUser.ID,
		Email: strptr("taken@x.com"),
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("want ErrEmailTaken, got %v", err)
	}
}

func TestUpdateUser_UnknownID(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	_, err := newUserUsecase(repo).Update(context.Background(), usecase.UpdateUserInput{ID: "missing"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}

// ---- Delete ----

func TestDeleteUser_UnknownID(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	err := newUserUsecase(repo).Delete(context.Background(), "already-deleted")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	var deletedID string
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, id string) (*domain.User, error) {
			return testUser, nil
		},
		deleteFn: func(_ context.Context, id string) error {
			deletedID = id
			return nil
		},
	}

	if err := newUserUsecase(repo).Delete(context.Background(), testUser.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != testUser.ID {
		t.Errorf("deleted %q, want %q", deletedID, testUser.ID)
	}
}

// ---- List ----

func TestListUsers_PassesThrough(t *testing.T) {
	repo := &fakeUserRepo{
		all: func(_ context.Context) ([]*domain.User, error) {
			return []*domain.User{testUser}, nil
		},
	}

	users, err := newUserUsecase(repo).List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].ID != testUser.ID {
		t.Errorf("users = %v, want the single seeded user", users)
	}
}
