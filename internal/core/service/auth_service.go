package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyward/flightschool-api/internal/core/domain"
	"github.com/skyward/flightschool-api/internal/core/ports"
	"github.com/skyward/flightschool-api/internal/pkg/passhash"
)

const minPasswordLen = 6

// dummyDigest is compared against when the email is unknown so that the
// response takes the same amount of work either way. It can never match a
// real password digest.
var dummyDigest = strings.Repeat("0", 64)

// AuthService verifies credentials against the credential store, issues
// sessions, and gates admin-only user queries.
type AuthService struct {
	repo     ports.AuthRepository
	sessions ports.SessionStore
	recorder ports.LoginRecorder
	secret   string
	tokenTTL time.Duration
	holder   sessionHolder
	logger   zerolog.Logger

	// revoked holds the tokens of sessions this instance has logged out.
	// A caller-held copy of such a session must never pass an admin gate
	// again. Growth is bounded by the number of logouts in the instance's
	// lifetime.
	revokedMu sync.Mutex
	revoked   map[string]struct{}
}

func NewAuthService(repo ports.AuthRepository, sessions ports.SessionStore, recorder ports.LoginRecorder, secret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:     repo,
		sessions: sessions,
		recorder: recorder,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
		revoked:  make(map[string]struct{}),
	}
}

// Login verifies credentials for an active user and installs a fresh
// session. Unknown email and wrong password both return
// domain.ErrInvalidCredentials with the same response shape.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			passhash.Verify(password, dummyDigest)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !passhash.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// Best-effort: the stamp is applied off the login path and its failure
	// never aborts the login.
	if s.recorder != nil {
		s.recorder.Record(user.ID)
	}

	now := time.Now().UTC()
	token, err := signToken(user, now, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		LoginAt: now,
		Token:   token,
	}

	s.holder.set(session)

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, session); err != nil {
			s.logger.Warn().Err(err).Msg("persist session failed")
		}
	}

	return session, nil
}

// Register creates a new account after validating the email shape and the
// password length. Nothing reaches the store on a validation failure.
func (s *AuthService) Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	if !validEmail(email) {
		return nil, domain.ErrValidation
	}
	if len(password) < minPasswordLen {
		return nil, domain.ErrValidation
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.ErrValidation
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: passhash.Hash(password),
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Logout clears the held session and the persisted token. Idempotent; a
// failure to clear the persisted copy is logged, never surfaced.
func (s *AuthService) Logout(ctx context.Context) {
	if prev := s.holder.clear(); prev != nil {
		s.revokedMu.Lock()
		s.revoked[prev.Token] = struct{}{}
		s.revokedMu.Unlock()
	}
	if s.sessions != nil {
		if err := s.sessions.Clear(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("clear persisted session failed")
		}
	}
}

// CurrentSession returns the held session. Purely local; never contacts
// the store.
func (s *AuthService) CurrentSession() *domain.Session {
	return s.holder.get()
}

// Restore reloads the persisted session at startup. An expired or
// malformed token clears the persisted copy and restores nothing.
func (s *AuthService) Restore(ctx context.Context) (*domain.Session, error) {
	if s.sessions == nil {
		return nil, nil
	}
	persisted, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return nil, nil
	}

	session, err := ParseToken(persisted.Token, s.secret)
	if err != nil {
		s.logger.Info().Err(err).Msg("discarding persisted session")
		if clearErr := s.sessions.Clear(ctx); clearErr != nil {
			s.logger.Warn().Err(clearErr).Msg("clear persisted session failed")
		}
		return nil, nil
	}

	s.holder.set(session)
	return session, nil
}

// IsAdmin reports whether the session carries the admin role. Pure; no I/O.
func (s *AuthService) IsAdmin(session *domain.Session) bool {
	return session.IsAdmin()
}

// GetUserByID returns an active user by ID. Admin-gated: the session must
// be the currently held one and carry the admin role.
func (s *AuthService) GetUserByID(ctx context.Context, id string, session *domain.Session) (*domain.User, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ListUsers returns active users ordered by created_at ascending.
// Admin-gated. limit <= 0 means no limit; a negative offset is treated as 0.
func (s *AuthService) ListUsers(ctx context.Context, session *domain.Session, limit, offset int) ([]*domain.User, error) {
	if err := s.requireAdmin(session); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// requireAdmin validates an admin session: present, admin role, token
// cryptographically valid, and not revoked by a Logout on this instance.
// Every rejection reads the same to the caller regardless of the underlying
// reason.
func (s *AuthService) requireAdmin(session *domain.Session) error {
	if session == nil || !session.IsAdmin() {
		return domain.ErrPermissionDenied
	}

	s.revokedMu.Lock()
	_, revoked := s.revoked[session.Token]
	s.revokedMu.Unlock()
	if revoked {
		return domain.ErrPermissionDenied
	}

	if _, err := ParseToken(session.Token, s.secret); err != nil {
		return domain.ErrPermissionDenied
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// Reject the "Name <addr>" form; only the bare address is a valid
	// account email.
	return addr.Address == email
}
