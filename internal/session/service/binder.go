package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	identitydomain "multitenant-admin/backend/internal/identity/domain"
	platformdomain "multitenant-admin/backend/internal/platformuser/domain"
	"multitenant-admin/backend/internal/security"
	"multitenant-admin/backend/internal/session/domain"
	tenantuserdomain "multitenant-admin/backend/internal/tenantuser/domain"
)

// ErrNoSession is returned by CurrentIdentity when the token does not denote
// a live session, for any reason. Missing, expired, revoked and tampered
// tokens are not distinguished.
var ErrNoSession = errors.New("no active session")

// SessionRepo is the session persistence needed by the binder.
type SessionRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	Revoke(ctx context.Context, id string) (bool, error)
	RevokeAllByUser(ctx context.Context, userID string) (int64, error)
}

// PlatformUserRepo loads platform users when rebuilding an identity.
type PlatformUserRepo interface {
	GetByID(ctx context.Context, id string) (*platformdomain.User, error)
}

// TenantUserRepo loads tenant users when rebuilding an identity.
type TenantUserRepo interface {
	GetByID(ctx context.Context, id string) (*tenantuserdomain.User, error)
}

// Binder turns authenticated identities into sessions and back. Sessions are
// rows in the database; the cookie token is only a signed pointer to a row.
// The identity attached to a request is rebuilt from the user stores every
// time, so disabling an account takes effect on the next request.
type Binder struct {
	sessions      SessionRepo
	platformUsers PlatformUserRepo
	tenantUsers   TenantUserRepo
	tokens        *security.SessionTokens
	ttl           time.Duration
}

// NewBinder returns a Binder with the given dependencies.
func NewBinder(sessions SessionRepo, platformUsers PlatformUserRepo, tenantUsers TenantUserRepo, tokens *security.SessionTokens, ttl time.Duration) *Binder {
	return &Binder{sessions: sessions, platformUsers: platformUsers, tenantUsers: tenantUsers, tokens: tokens, ttl: ttl}
}

// Login creates a session for the identity and returns its cookie token.
// If priorToken names a live session it is revoked first, so a login always
// supersedes whatever session the client presented.
func (b *Binder) Login(ctx context.Context, id *identitydomain.Identity, ipAddress, priorToken string) (string, error) {
	if priorToken != "" {
		if sessionID, err := b.tokens.Validate(priorToken); err == nil {
			if _, err := b.sessions.Revoke(ctx, sessionID); err != nil {
				return "", err
			}
		}
	}

	now := time.Now().UTC()
	s := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    id.ID,
		UserKind:  id.Kind,
		TenantID:  id.TenantID,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}
	if err := b.sessions.Create(ctx, s); err != nil {
		return "", err
	}
	return b.tokens.Issue(s.ID)
}

// RevokeAllForUser revokes every live session of the user. Used when an
// account is deleted so its sessions stop resolving immediately.
func (b *Binder) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := b.sessions.RevokeAllByUser(ctx, userID)
	return err
}

// Logout revokes the session the token denotes. It is idempotent: an invalid
// token or an already revoked session is not an error.
func (b *Binder) Logout(ctx context.Context, token string) error {
	sessionID, err := b.tokens.Validate(token)
	if err != nil {
		return nil
	}
	_, err = b.sessions.Revoke(ctx, sessionID)
	return err
}

// CurrentIdentity resolves the token to the identity of its session's user.
// The user row is read fresh, so the returned identity reflects renames and
// status changes made after login. Disabled users yield ErrNoSession.
func (b *Binder) CurrentIdentity(ctx context.Context, token string) (*identitydomain.Identity, error) {
	sessionID, err := b.tokens.Validate(token)
	if err != nil {
		return nil, ErrNoSession
	}
	s, err := b.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil || !s.Live(time.Now().UTC()) {
		return nil, ErrNoSession
	}

	switch s.UserKind {
	case identitydomain.UserKindTenant:
		u, err := b.tenantUsers.GetByID(ctx, s.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil || !u.Active() {
			return nil, ErrNoSession
		}
		return &identitydomain.Identity{
			ID:           u.ID,
			Username:     u.Email,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Kind:         identitydomain.UserKindTenant,
			TenantID:     u.TenantID,
			Enabled:      true,
		}, nil
	case identitydomain.UserKindPlatform:
		u, err := b.platformUsers.GetByID(ctx, s.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil || !u.IsActive {
			return nil, ErrNoSession
		}
		return &identitydomain.Identity{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Kind:         identitydomain.UserKindPlatform,
			Enabled:      true,
		}, nil
	default:
		return nil, ErrNoSession
	}
}
