package sweeper_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dkarimov/user-account-service/internal/domain"
	"github.com/dkarimov/user-account-service/internal/sweeper"
)

type fakeResetTokenRepo struct {
	deleteStale func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (r *fakeResetTokenRepo) Create(_ context.Context, _, _ string, _ time.Time) error {
	return nil
}

func (r *fakeResetTokenRepo) Claim(_ context.Context, _ string) (*domain.PasswordResetToken, error) {
	return nil, domain.ErrResetTokenInvalid
}

func (r *fakeResetTokenRepo) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.deleteStale(ctx, cutoff)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestNew_InvalidCronExpression(t *testing.T) {
	_, err := sweeper.New(&fakeResetTokenRepo{}, testLogger(), "not a cron expr")
	if err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestSweep_PassesCurrentCutoff(t *testing.T) {
	var capturedCutoff time.Time
	repo := &fakeResetTokenRepo{
		deleteStale: func(_ context.Context, cutoff time.Time) (int64, error) {
			capturedCutoff = cutoff
			return 3, nil
		},
	}

	s, err := sweeper.New(repo, testLogger(), "*/10 * * * *")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := time.Now()
	swept, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swept != 3 {
		t.Errorf("swept = %d, want 3", swept)
	}
	if capturedCutoff.Before(before) {
		t.Errorf("cutoff %v predates the sweep call", capturedCutoff)
	}
}

func TestSweep_RepoError_Propagates(t *testing.T) {
	repoErr := errors.New("db down")
	repo := &fakeResetTokenRepo{
		deleteStale: func(_ context.Context, _ time.Time) (int64, error) {
			return 0, repoErr
		},
	}

	s, err := sweeper.New(repo, testLogger(), "@hourly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Sweep(context.Background()); !errors.Is(err, repoErr) {
		t.Errorf("want wrapped repoErr, got %v", err)
	}
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	repo := &fakeResetTokenRepo{
		deleteStale: func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
	}
	s, err := sweeper.New(repo, testLogger(), "@hourly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
