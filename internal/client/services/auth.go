package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/users"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/cryptox"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

// AuthService checks credentials and manages the session around them.
//
// Contract:
//   - Login: common.ErrEmailNotFound for an unknown email,
//     common.ErrIncorrectPassword for a wrong password; on success the
//     previous session, if any, is replaced.
//   - Logout: clears the session unconditionally.
//   - CurrentUser: the user behind a valid session, or common.ErrNoSession.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte, rememberMe bool) (*models.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	users    users.Repository
	sessions SessionService
	hasher   cryptox.Hasher
	log      logging.Logger
}

func NewAuthService(repo users.Repository, sessions SessionService, hasher cryptox.Hasher, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{users: repo, sessions: sessions, hasher: hasher, log: log.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, email string, password []byte, rememberMe bool) (*models.Session, error) {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		a.log.Info(ctx, "login rejected: unknown email", "email", logging.MaskEmail(users.NormalizeEmail(email)))
		return nil, common.ErrEmailNotFound
	}

	ok, err := a.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		a.log.Warn(ctx, "stored password hash unreadable", "user_id", u.ID, "error", err)
		return nil, common.ErrIncorrectPassword
	}
	if !ok {
		a.log.Info(ctx, "login rejected: wrong password", "user_id", u.ID)
		return nil, common.ErrIncorrectPassword
	}

	return a.sessions.Create(ctx, u, rememberMe)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Logout(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, common.ErrNoSession
	}

	u, err := a.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, common.ErrNoSession
	}
	return u, nil
}
