// seed inserts a handful of demo accounts into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dkarimov/user-account-service/internal/domain"
	"github.com/dkarimov/user-account-service/internal/infrastructure/postgres"
	"github.com/dkarimov/user-account-service/internal/infrastructure/sqlite"
	"github.com/dkarimov/user-account-service/internal/password"
	"github.com/dkarimov/user-account-service/internal/repository"
	"github.com/google/uuid"
)

// Every demo account gets the same password to keep manual testing easy.
const seedPassword = "password1"

var accounts = []struct {
	name  string
	email string
}{
	{"Ann Demo", "ann@demo.local"},
	{"Bob Demo", "bob@demo.local"},
	{"Cal Demo", "cal@demo.local"},
}

func main() {
	ctx := context.Background()

	users, cleanup, err := openStore(ctx)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer cleanup()

	// Low cost on purpose: seed data, not real credentials.
	hasher := password.NewBcryptHasher(4)
	digest, err := hasher.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	for _, a := range accounts {
		_, err := users.Create(ctx, &domain.User{
			ID:           uuid.NewString(),
			Name:         a.name,
			Email:        a.email,
			PasswordHash: digest,
		})
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			fmt.Printf("skip %s (already seeded)\n", a.email)
		case err != nil:
			log.Fatalf("create %s: %v", a.email, err)
		default:
			fmt.Printf("seeded %s (password %q)\n", a.email, seedPassword)
		}
	}
}

func openStore(ctx context.Context) (repository.UserRepository, func(), error) {
	if os.Getenv("STORE_DRIVER") == "sqlite" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "accounts.db"
		}
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, nil, err
		}
		if err := store.ApplyMigrations(); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store.Users(), func() { _ = store.Close() }, nil
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, nil, errors.New("DATABASE_URL is not set")
	}
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.ApplyMigrations(databaseURL); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return postgres.NewUserRepository(pool), pool.Close, nil
}
