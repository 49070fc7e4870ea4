package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/service"
)

const testSecret = "test-jwt-secret-at-least-32-chars!!"

func newLedger(repo *memTokenRepo) *service.TokenLedger {
	return service.NewTokenLedger(repo, auth.NewTokenManager(testSecret), 5*time.Minute)
}

func TestIssue_ProducesSixDigitCode(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := newLedger(repo)

	code, err := ledger.Issue(context.Background(), "user-1", domain.TokenAuthenticate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("code length = %d, want 6", len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Errorf("code %q contains non-digit %q", code, r)
		}
	}
	if repo.count() != 1 {
		t.Errorf("token rows = %d, want 1", repo.count())
	}
}

func TestConsume_SucceedsExactlyOnce(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := newLedger(repo)

	code, err := ledger.Issue(context.Background(), "user-1", domain.TokenAuthenticate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := ledger.Consume(context.Background(), code, domain.TokenAuthenticate)
	if err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want user-1", userID)
	}

	if _, err := ledger.Consume(context.Background(), code, domain.TokenAuthenticate); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("second consume: want ErrInvalidCode, got %v", err)
	}
}

func TestConsume_WrongType_Fails(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := newLedger(repo)

	code, err := ledger.Issue(context.Background(), "user-1", domain.TokenEmailConfirmation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ledger.Consume(context.Background(), code, domain.TokenPasswordRecover); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("want ErrInvalidCode, got %v", err)
	}
	// The original row must survive a mistyped consume.
	if repo.count() != 1 {
		t.Errorf("token rows = %d, want 1", repo.count())
	}
}

func TestConsume_OutsideWindow_ExpiresAndReclaims(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := newLedger(repo)

	code, err := ledger.Issue(context.Background(), "user-1", domain.TokenPasswordRecover)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.backdate(code, 6*time.Minute)

	if _, err := ledger.Consume(context.Background(), code, domain.TokenPasswordRecover); !errors.Is(err, domain.ErrCodeExpired) {
		t.Fatalf("want ErrCodeExpired, got %v", err)
	}
	if repo.count() != 0 {
		t.Errorf("stale row not reclaimed: rows = %d", repo.count())
	}
}

func TestConsume_PicksMostRecentOnCollision(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := newLedger(repo)

	old := &domain.Token{Code: "123456", Type: domain.TokenAuthenticate, UserID: "user-old"}
	if err := repo.Create(context.Background(), old); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.backdate("123456", 2*time.Minute)

	fresh := &domain.Token{Code: "123456", Type: domain.TokenAuthenticate, UserID: "user-new"}
	if err := repo.Create(context.Background(), fresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := ledger.Consume(context.Background(), "123456", domain.TokenAuthenticate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-new" {
		t.Errorf("userID = %q, want the most recent issuer user-new", userID)
	}
}

func TestInvalidateAllOfType_RemovesOnlyMatching(t *testing.T) {
	repo := newMemTokenRepo()
	ledger := newLedger(repo)

	confirm, _ := ledger.Issue(context.Background(), "user-1", domain.TokenEmailConfirmation)
	login, _ := ledger.Issue(context.Background(), "user-1", domain.TokenAuthenticate)

	if err := ledger.InvalidateAllOfType(context.Background(), "user-1", domain.TokenEmailConfirmation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ledger.Consume(context.Background(), confirm, domain.TokenEmailConfirmation); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("invalidated code: want ErrInvalidCode, got %v", err)
	}
	if _, err := ledger.Consume(context.Background(), login, domain.TokenAuthenticate); err != nil {
		t.Errorf("login code should survive: %v", err)
	}
}

func TestSignedTokens_RoundTrip(t *testing.T) {
	ledger := newLedger(newMemTokenRepo())

	signed, err := ledger.IssueSigned("654321", 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, err := ledger.VerifySigned(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "654321" {
		t.Errorf("subject = %q, want 654321", subject)
	}
}

func TestVerifySigned_Expired(t *testing.T) {
	ledger := newLedger(newMemTokenRepo())

	signed, err := ledger.IssueSigned("654321", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ledger.VerifySigned(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
}

func TestVerifySigned_Garbage(t *testing.T) {
	ledger := newLedger(newMemTokenRepo())

	if _, err := ledger.VerifySigned("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("want ErrInvalidToken, got %v", err)
	}
}
