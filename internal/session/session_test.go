package session_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stockdeck/stockdeck/internal/localstore"
	"github.com/stockdeck/stockdeck/internal/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	local, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { local.Close() })
	return session.New(session.NewDurableScope(local), session.NewMemoryScope(time.Minute))
}

// unsigned JWT with email and name claims, alg none
func testJWT(t *testing.T) string {
	t.Helper()
	enc := func(s string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(s))
	}
	header := enc(`{"alg":"none","typ":"JWT"}`)
	claims := enc(`{"email":"ada@example.com","name":"Ada"}`)
	return header + "." + claims + "."
}

func TestLoginDurablePersistsIdentity(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	identity, err := s.Login(ctx, testJWT(t), session.PersistenceDurable)
	if err != nil {
		t.Fatal(err)
	}
	if identity.Email != "ada@example.com" || identity.Name != "Ada" {
		t.Fatalf("identity = %+v", identity)
	}
	if s.Token(ctx) == "" {
		t.Fatal("token not readable after durable login")
	}
	if got := s.Identity(ctx); got.Email != "ada@example.com" {
		t.Fatalf("stored identity = %+v", got)
	}
}

func TestLoginSessionScope(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Login(ctx, "opaque-token", session.PersistenceSession); err != nil {
		t.Fatal(err)
	}
	if s.Token(ctx) != "opaque-token" {
		t.Fatal("token not readable after session login")
	}
	// Opaque tokens carry no claims.
	if got := s.Identity(ctx); got.Email != "" || got.Name != "" {
		t.Fatalf("identity should be empty for opaque token, got %+v", got)
	}
}

func TestSessionScopeWinsOverDurable(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Login(ctx, "durable-token", session.PersistenceDurable); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Login(ctx, "session-token", session.PersistenceSession); err != nil {
		t.Fatal(err)
	}
	if got := s.Token(ctx); got != "session-token" {
		t.Fatalf("token = %q, want session scope to win", got)
	}
}

func TestLogoutClearsBothScopesButKeepsOrg(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Login(ctx, "tok", session.PersistenceDurable); err != nil {
		t.Fatal(err)
	}
	if err := s.SetOrganizationID(ctx, "org-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Token(ctx) != "" {
		t.Fatal("token survived logout")
	}
	if s.OrganizationID(ctx) != "org-1" {
		t.Fatal("organization id should survive logout")
	}
}

func TestEmptyTokenLoginRejected(t *testing.T) {
	s := newStore(t)
	if _, err := s.Login(context.Background(), "", session.PersistenceSession); err == nil {
		t.Fatal("empty token accepted")
	}
}
