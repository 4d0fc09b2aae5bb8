package usecase_test

import (
	"context"

	"github.com/dkarimov/user-account-service/internal/domain"
)

// ---- shared fakes ----

type fakeUserRepo struct {
	findByEmail   func(ctx context.Context, email string) (*domain.User, error)
	findByID      func(ctx context.Context, id string) (*domain.User, error)
	existsByEmail func(ctx context.Context, email, excludeID string) (bool, error)
	create        func(ctx context.Context, user *domain.User) (*domain.User, error)
	update        func(ctx context.Context, user *domain.User) (*domain.User, error)
	deleteFn      func(ctx context.Context, id string) error
	all           func(ctx context.Context) ([]*domain.User, error)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return r.existsByEmail(ctx, email, excludeID)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.create(ctx, user)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.update(ctx, user)
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	return r.deleteFn(ctx, id)
}

func (r *fakeUserRepo) All(ctx context.Context) ([]*domain.User, error) {
	return r.all(ctx)
}

type fakeHasher struct {
	hash   func(plain string) (string, error)
	verify func(plain, digest string) (bool, error)
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	return h.hash(plain)
}

func (h *fakeHasher) Verify(plain, digest string) (bool, error) {
	return h.verify(plain, digest)
}

type fakeIssuer struct {
	mintAuthToken                func(user *domain.User) (string, error)
	mintResetToken               func(ctx context.Context, user *domain.User) (string, error)
	validateAndConsumeResetToken func(ctx context.Context, userID, rawToken string) error
}

func (i *fakeIssuer) MintAuthToken(user *domain.User) (string, error) {
	return i.mintAuthToken(user)
}

func (i *fakeIssuer) MintResetToken(ctx context.Context, user *domain.User) (string, error) {
	return i.mintResetToken(ctx, user)
}

func (i *fakeIssuer) ValidateAndConsumeResetToken(ctx context.Context, userID, rawToken string) error {
	return i.validateAndConsumeResetToken(ctx, userID, rawToken)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

// plainHasher is a convenience fake that "hashes" by prefixing.
func plainHasher() *fakeHasher {
	return &fakeHasher{
		hash: func(plain string) (string, error) { return "hashed:" + plain, nil },
		verify: func(plain, digest string) (bool, error) {
			return digest == "hashed:"+plain, nil
		},
	}
}

var testUser = &domain.User{
	ID:           "user-1",
	Name:         "Ann",
	Email:        "a@x.com",
	PasswordHash: "hashed:secret1",
}
