package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/evamarchetti/lessonplanner-backend/pkg/db/models"
	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
)

// Provider abstracts the OAuth code flow so tests can stub the upstream.
type Provider interface {
	LoginURL(state string) string
	Exchange(ctx context.Context, code string) (*GoogleUser, error)
}

// UserStore is the persistence surface the auth flow needs for users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionStore is the persistence surface for login sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindActive(ctx context.Context, id string, now time.Time) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// Service owns login, session resolution and logout.
type Service struct {
	provider   Provider
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(provider Provider, users UserStore, sessions SessionStore, sessionTTL time.Duration) *Service {
	return &Service{
		provider:   provider,
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// NewState returns a random value for the OAuth state parameter.
func NewState() (string, error) {
	return randomToken()
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating random token")
	}
	return hex.EncodeToString(buf), nil
}

// LoginURL builds the provider authorization URL for the given state.
func (s *Service) LoginURL(state string) string {
	return s.provider.LoginURL(state)
}

// HandleCallback exchanges the authorization code, upserts the user record
// and opens a fresh session.
func (s *Service) HandleCallback(ctx context.Context, code string) (*models.User, *models.Session, error) {
	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Failed to get access token: "+err.Error())
	}

	user, err := s.users.FindByGoogleID(ctx, profile.ID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up user")
	}
	if user == nil {
		created := &models.User{
			Email:    profile.Email,
			GoogleID: profile.ID,
			Name:     profile.Name,
		}
		if err := s.users.Create(ctx, created); err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
		}
		// Re-read to pick up database-populated columns.
		user, err = s.users.FindByGoogleID(ctx, profile.ID)
		if err != nil || user == nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading created user")
		}
	}

	id, err := randomToken()
	if err != nil {
		return nil, nil, err
	}
	session := &models.Session{
		ID:        id,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating session")
	}

	return user, session, nil
}

// Resolve maps a session id to its user. It returns (nil, nil) when the
// session is missing or expired, and (nil, err) only on a store failure so
// the caller can decide how to degrade.
func (s *Service) Resolve(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessions.FindActive(ctx, sessionID, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up session")
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up session user")
	}
	return user, nil
}

// Logout removes the session if it exists. Unknown ids are not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting session")
	}
	return nil
}
