package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/users"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

// SessionStore is the single current-session slot.
type SessionStore = store.Slot[models.Session]

// SessionDurations are the two fixed session windows.
type SessionDurations struct {
	Default    time.Duration
	RememberMe time.Duration
}

var DefaultSessionDurations = SessionDurations{
	Default:    7 * 24 * time.Hour,
	RememberMe: 30 * 24 * time.Hour,
}

// SessionService owns the session slot; nothing else writes it.
type SessionService interface {
	// Create overwrites any existing session.
	Create(ctx context.Context, user *models.User, rememberMe bool) (*models.Session, error)

	// Current returns nil when there is no usable session. An expired
	// session, or one whose user no longer exists, is cleared on the way.
	Current(ctx context.Context) (*models.Session, error)

	Logout(ctx context.Context) error
}

type sessionService struct {
	slot      *SessionStore
	users     users.Repository
	durations SessionDurations
	log       logging.Logger
	now       func() time.Time
}

func NewSessionService(slot *SessionStore, repo users.Repository, d SessionDurations, log logging.Logger) SessionService {
	if log == nil {
		log = logging.Nop()
	}
	return &sessionService{slot: slot, users: repo, durations: d, log: log.With("component", "session"), now: time.Now}
}

func (s *sessionService) Create(ctx context.Context, user *models.User, rememberMe bool) (*models.Session, error) {
	d := s.durations.Default
	if rememberMe {
		d = s.durations.RememberMe
	}

	now := s.now().UTC()
	sess := models.Session{
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		CompanyName:  user.CompanyName,
		BusinessType: user.BusinessType,
		CreatedAt:    now,
		ExpiresAt:    now.Add(d),
		RememberMe:   rememberMe,
	}
	if err := s.slot.Store(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.log.Info(ctx, "session created", "user_id", user.ID, "remember_me", rememberMe, "expires_at", sess.ExpiresAt)
	return &sess, nil
}

func (s *sessionService) Current(ctx context.Context) (*models.Session, error) {
	sess, err := s.slot.Load(ctx)
	if errors.Is(err, common.ErrCorruptState) {
		s.log.Warn(ctx, "corrupt session discarded", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}

	if !sess.Valid(s.now()) {
		s.log.Info(ctx, "session expired", "user_id", sess.UserID)
		return nil, s.clear(ctx)
	}

	u, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve session user: %w", err)
	}
	if u == nil {
		s.log.Warn(ctx, "session user no longer exists", "user_id", sess.UserID)
		return nil, s.clear(ctx)
	}
	return sess, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.clear(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "logged out")
	return nil
}

func (s *sessionService) clear(ctx context.Context) error {
	if err := s.slot.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
