package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/Bhavna2020/ippcored/internal/collab"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateUserThenVerifyPassword(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.CreateUser(ctx, "alice", "s3cret", false); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, ok := s.VerifyPassword(ctx, "alice", "s3cret")
	if !ok {
		t.Fatal("expected correct password to verify")
	}
	if u.Username != "alice" || u.IsAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, ok := s.VerifyPassword(ctx, "alice", "wrong"); ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestEnsureAdminUserOnlyCreatesOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EnsureAdminUser(ctx, "root", "hunter2"); err != nil {
		t.Fatalf("EnsureAdminUser: %v", err)
	}
	if has, _ := s.HasUsers(ctx); !has {
		t.Fatal("expected a user to exist after EnsureAdminUser")
	}

	// A second call with different credentials must not clobber the first.
	if err := s.EnsureAdminUser(ctx, "someoneelse", "ignored"); err != nil {
		t.Fatalf("EnsureAdminUser: %v", err)
	}
	if _, ok := s.VerifyPassword(ctx, "root", "hunter2"); !ok {
		t.Fatal("expected original admin credentials to still verify")
	}
	if _, ok := s.VerifyPassword(ctx, "someoneelse", "ignored"); ok {
		t.Fatal("expected the second EnsureAdminUser call to be a no-op")
	}
}

func TestAuthorizeRejectsUnauthenticatedClient(t *testing.T) {
	s := openTestStore(t)
	a := &Authorizer{Store: s}

	ok, status := a.Authorize(collab.ClientEnvelope{}, false)
	if ok || status != http.StatusUnauthorized {
		t.Fatalf("Authorize = (%v, %d), want (false, %d)", ok, status, http.StatusUnauthorized)
	}
}

func TestAuthorizeRequiresAdminWhenAsked(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.CreateUser(ctx, "bob", "pw", false); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, "carol", "pw", true); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	a := &Authorizer{Store: s}

	ok, status := a.Authorize(collab.ClientEnvelope{AuthenticatedUser: "bob"}, true)
	if ok || status != http.StatusForbidden {
		t.Fatalf("non-admin Authorize = (%v, %d), want (false, %d)", ok, status, http.StatusForbidden)
	}

	ok, status = a.Authorize(collab.ClientEnvelope{AuthenticatedUser: "carol"}, true)
	if !ok || status != http.StatusOK {
		t.Fatalf("admin Authorize = (%v, %d), want (true, %d)", ok, status, http.StatusOK)
	}
}

func TestAuthorizeUnknownUser(t *testing.T) {
	s := openTestStore(t)
	a := &Authorizer{Store: s}
	ok, status := a.Authorize(collab.ClientEnvelope{AuthenticatedUser: "ghost"}, false)
	if ok || status != http.StatusUnauthorized {
		t.Fatalf("Authorize = (%v, %d), want (false, %d)", ok, status, http.StatusUnauthorized)
	}
}
