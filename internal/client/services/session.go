// Package services contains the application services (controllers) of the
// Delta Mobile client: session, update check, conversations, scan
// redemption, and labs content. Each service takes its collaborators
// (remote client, database, logger) as constructor parameters; there are no
// ambient singletons.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/client/repositories/session"
	"github.com/nexabag/deltamobile/internal/common"
	"github.com/nexabag/deltamobile/internal/dbx"
	"github.com/nexabag/deltamobile/internal/logging"
)

// SessionState is the authentication state of the client.
type SessionState int

const (
	// SessionUnknown: before Restore has been invoked. No screen decision
	// may be rendered in this state.
	SessionUnknown SessionState = iota
	// SessionChecking: Restore is reading the store.
	SessionChecking
	// SessionLoggedOut: no persisted identity.
	SessionLoggedOut
	// SessionLoggedIn: persisted identity present.
	SessionLoggedIn
)

func (s SessionState) String() string {
	switch s {
	case SessionUnknown:
		return "unknown"
	case SessionChecking:
		return "checking"
	case SessionLoggedOut:
		return "logged out"
	case SessionLoggedIn:
		return "logged in"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session is the locally held record of the authenticated user. UserID is
// non-empty exactly when the state is SessionLoggedIn.
type Session struct {
	UserID    string
	Username  string
	AvatarRef string
}

// SessionService owns the authentication state machine
//
//	Unknown → Checking → {LoggedOut, LoggedIn}
//	LoggedOut → login success → LoggedIn
//	LoggedIn  → logout       → LoggedOut
//
// and is the single writer of the persisted session store. Every state
// transition writes through to the store before it becomes observable, so
// in-memory and persisted state never diverge after a call returns.
//
// The service is driven from the single cooperative UI goroutine and is not
// internally locked.
type SessionService struct {
	client      api.Client
	db          *sql.DB
	log         logging.Logger
	forumOrigin string

	state   SessionState
	session Session
}

// NewSessionService constructs the session controller. forumOrigin (no
// trailing slash) is used to absolutize relative avatar references.
func NewSessionService(client api.Client, db *sql.DB, forumOrigin string, log logging.Logger) *SessionService {
	return &SessionService{
		client:      client,
		db:          db,
		log:         log,
		forumOrigin: strings.TrimSuffix(forumOrigin, "/"),
		state:       SessionUnknown,
	}
}

func (s *SessionService) repo() session.Repository {
	return session.NewSQLiteRepository(s.db)
}

// State returns the current authentication state.
func (s *SessionService) State() SessionState { return s.state }

// Current returns the in-memory session record.
func (s *SessionService) Current() Session { return s.session }

// Restore reads the persisted identity and decides the initial state. Any
// read error fails open to logged out. Restore performs no writes and is
// idempotent: calling it twice yields the same state.
func (s *SessionService) Restore(ctx context.Context) SessionState {
	s.state = SessionChecking

	repo := s.repo()

	userID, ok, err := repo.Get(ctx, common.KeyUserID)
	if err != nil || !ok || userID == "" {
		if err != nil {
			s.log.Warn(ctx, "session restore failed, treating as logged out", "error", err)
		}
		s.session = Session{}
		s.state = SessionLoggedOut
		return s.state
	}

	username, _, err := repo.Get(ctx, common.KeyUsername)
	if err != nil {
		s.log.Warn(ctx, "session restore failed, treating as logged out", "error", err)
		s.session = Session{}
		s.state = SessionLoggedOut
		return s.state
	}
	avatar, _, err := repo.Get(ctx, common.KeyProfilePic)
	if err != nil {
		s.log.Warn(ctx, "session restore failed, treating as logged out", "error", err)
		s.session = Session{}
		s.state = SessionLoggedOut
		return s.state
	}

	s.session = Session{UserID: userID, Username: username, AvatarRef: avatar}
	s.state = SessionLoggedIn
	return s.state
}

// Login authenticates against the forum and persists the identity. Empty
// credentials fail locally with common.ErrValidation before any network
// call. A failed attempt never disturbs an existing session: the previous
// state (including LoggedIn) is left intact.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password must not be empty", common.ErrValidation)
	}

	user, err := s.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrCredentialsRejected) {
			s.log.Info(ctx, "login rejected", "username", username)
		} else {
			s.log.Error(ctx, "login request failed", "error", err)
		}
		return err
	}

	next := Session{
		UserID:    user.ID.String(),
		Username:  user.Username,
		AvatarRef: user.ProfilePicture, // "" when the account has no avatar
	}

	// all identity keys land in one transaction; the state transition only
	// becomes observable after the write-through succeeded
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := session.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.KeyUserID, next.UserID); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.KeyUsername, next.Username); err != nil {
			return err
		}
		return repo.Set(ctx, common.KeyProfilePic, next.AvatarRef)
	})
	if err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.session = next
	s.state = SessionLoggedIn
	return nil
}

// Logout removes the persisted identity and transitions to logged out. No
// network call is made and logging out while already logged out is a no-op.
// The theme preference is a device setting and survives logout.
func (s *SessionService) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := session.NewSQLiteRepository(tx)
		for _, key := range []string{common.KeyUserID, common.KeyUsername, common.KeyProfilePic} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.session = Session{}
	s.state = SessionLoggedOut
	return nil
}

// AvatarURL resolves the session's avatar reference: absolute URLs pass
// through, relative paths are prefixed with the forum origin, and an empty
// reference stays empty.
func (s *SessionService) AvatarURL() string {
	ref := s.session.AvatarRef
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	return s.forumOrigin + "/" + strings.TrimPrefix(ref, "/")
}

// Theme returns the persisted theme preference, defaulting when absent.
func (s *SessionService) Theme(ctx context.Context) (string, error) {
	theme, ok, err := s.repo().Get(ctx, common.KeyUserTheme)
	if err != nil {
		return "", err
	}
	if !ok || theme == "" {
		return common.DefaultTheme, nil
	}
	return theme, nil
}

// SetTheme persists the theme preference.
func (s *SessionService) SetTheme(ctx context.Context, theme string) error {
	if theme == "" {
		return fmt.Errorf("%w: theme must not be empty", common.ErrValidation)
	}
	return s.repo().Set(ctx, common.KeyUserTheme, theme)
}
