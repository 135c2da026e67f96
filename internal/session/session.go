package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/stockdeck/stockdeck/internal/utils"
)

// Persistence selects where a login's identity is stored. It is decided once
// at login: durable survives restarts, session does not.
type Persistence string

const (
	PersistenceDurable Persistence = "durable"
	PersistenceSession Persistence = "session"
)

// Storage keys shared by both scopes.
const (
	KeyToken          = "token"
	KeyOrganizationID = "organizationId"
	KeyUserEmail      = "userEmail"
	KeyUserName       = "userName"
)

// Identity is the signed-in user as far as the daemon knows it.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Store is the session/organization accessor. It supplies the bearer token and
// the active organization id to every outbound request. Reads prefer the
// session scope and fall back to the durable scope; the organization id is
// written to both scopes, last writer wins.
type Store struct {
	durable Scope
	session Scope
}

// New constructs a session store over the two scopes.
func New(durable, session Scope) *Store {
	return &Store{durable: durable, session: session}
}

// get reads key from the session scope first, then the durable scope.
func (s *Store) get(ctx context.Context, key string) string {
	if v, ok, err := s.session.Get(ctx, key); err == nil && ok {
		return v
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("session scope read failed")
	}
	v, ok, err := s.durable.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("durable scope read failed")
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// Token returns the bearer token, or "" when signed out.
func (s *Store) Token(ctx context.Context) string {
	return s.get(ctx, KeyToken)
}

// OrganizationID returns the active organization id, or "" when unresolved.
func (s *Store) OrganizationID(ctx context.Context) string {
	return s.get(ctx, KeyOrganizationID)
}

// SetOrganizationID caches the active organization id in both scopes.
func (s *Store) SetOrganizationID(ctx context.Context, id string) error {
	if err := s.session.Set(ctx, KeyOrganizationID, id); err != nil {
		return err
	}
	return s.durable.Set(ctx, KeyOrganizationID, id)
}

// Identity returns the stored user identity.
func (s *Store) Identity(ctx context.Context) Identity {
	return Identity{
		Email: s.get(ctx, KeyUserEmail),
		Name:  s.get(ctx, KeyUserName),
	}
}

// Login stores the bearer token in the scope chosen by persistence and
// extracts the user identity from the token's claims. The token signature is
// not verified here: the upstream backend is the verifier, the daemon only
// needs the display claims.
func (s *Store) Login(ctx context.Context, token string, persistence Persistence) (Identity, error) {
	if token == "" {
		return Identity{}, utils.ErrNoSession
	}

	identity := identityFromToken(token)

	scope := s.session
	if persistence == PersistenceDurable {
		scope = s.durable
	}
	for key, value := range map[string]string{
		KeyToken:     token,
		KeyUserEmail: identity.Email,
		KeyUserName:  identity.Name,
	} {
		if err := scope.Set(ctx, key, value); err != nil {
			return Identity{}, fmt.Errorf("failed to store session: %w", err)
		}
	}

	log.Info().Str("persistence", string(persistence)).Str("email", identity.Email).Msg("session opened")
	return identity, nil
}

// Logout clears identity keys from both scopes. The organization id is kept:
// it is a workspace preference, not a credential.
func (s *Store) Logout(ctx context.Context) error {
	keys := []string{KeyToken, KeyUserEmail, KeyUserName}
	if err := s.session.Delete(ctx, keys...); err != nil {
		return err
	}
	if err := s.durable.Delete(ctx, keys...); err != nil {
		return err
	}
	log.Info().Msg("session closed")
	return nil
}

// identityFromToken pulls display claims out of a JWT without verifying it.
// Opaque (non-JWT) tokens yield an empty identity.
func identityFromToken(token string) Identity {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}
	}
	identity := Identity{}
	if v, ok := claims["email"].(string); ok {
		identity.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		identity.Name = v
	}
	return identity
}
