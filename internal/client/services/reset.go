package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/users"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/cryptox"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

// ResetStore is the single outstanding reset-request slot.
type ResetStore = store.Slot[models.PasswordResetRequest]

const DefaultResetTTL = 300 * time.Second

// OTPDispatcher hands a code to the delivery channel without waiting.
type OTPDispatcher interface {
	Dispatch(ctx context.Context, destination, otp string)
}

// ResetService is the three-stage password recovery workflow:
// RequestReset -> VerifyOTP -> ResetPassword.
//
// A new request overwrites the previous one. A wrong code keeps the
// request for another attempt; an expired one is dropped on the check that
// notices it. ResetPassword does not re-check the code.
type ResetService interface {
	RequestReset(ctx context.Context, email string) (*models.PasswordResetRequest, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email string, newPassword []byte) error

	// Pending returns the outstanding request, or nil.
	Pending(ctx context.Context) (*models.PasswordResetRequest, error)
}

type resetService struct {
	slot     *ResetStore
	kv       store.Repository
	users    users.Repository
	hasher   cryptox.Hasher
	delivery OTPDispatcher
	ttl      time.Duration
	log      logging.Logger
	now      func() time.Time
	otp      func() (string, error)
}

func NewResetService(kv store.Repository, slot *ResetStore, repo users.Repository, hasher cryptox.Hasher,
	delivery OTPDispatcher, ttl time.Duration, log logging.Logger) ResetService {
	if log == nil {
		log = logging.Nop()
	}
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &resetService{
		slot:     slot,
		kv:       kv,
		users:    repo,
		hasher:   hasher,
		delivery: delivery,
		ttl:      ttl,
		log:      log.With("component", "reset"),
		now:      time.Now,
		otp:      cryptox.GenerateOTP,
	}
}

func (s *resetService) RequestReset(ctx context.Context, email string) (*models.PasswordResetRequest, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, common.ErrUserNotFound
	}

	code, err := s.otp()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	req := models.PasswordResetRequest{
		Email:     u.Email,
		OTP:       code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.slot.Store(ctx, req); err != nil {
		return nil, fmt.Errorf("store reset request: %w", err)
	}

	if s.delivery != nil {
		s.delivery.Dispatch(ctx, u.Email, code)
	}

	s.log.Info(ctx, "reset requested", "email", logging.MaskEmail(u.Email), "expires_at", req.ExpiresAt)
	return &req, nil
}

func (s *resetService) load(ctx context.Context) (*models.PasswordResetRequest, error) {
	req, err := s.slot.Load(ctx)
	if errors.Is(err, common.ErrCorruptState) {
		s.log.Warn(ctx, "corrupt reset request discarded", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load reset request: %w", err)
	}
	return req, nil
}

func (s *resetService) VerifyOTP(ctx context.Context, email, otp string) error {
	req, err := s.load(ctx)
	if err != nil {
		return err
	}
	if req == nil {
		return common.ErrNoActiveRequest
	}
	if req.Email != users.NormalizeEmail(email) {
		return common.ErrEmailMismatch
	}
	if req.Expired(s.now()) {
		if err := s.slot.Clear(ctx); err != nil {
			return fmt.Errorf("clear reset request: %w", err)
		}
		s.log.Info(ctx, "reset code expired", "email", logging.MaskEmail(req.Email))
		return common.ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(req.OTP), []byte(otp)) != 1 {
		s.log.Info(ctx, "reset code rejected", "email", logging.MaskEmail(req.Email))
		return common.ErrInvalidOTP
	}
	return nil
}

func (s *resetService) ResetPassword(ctx context.Context, email string, newPassword []byte) error {
	all, err := s.users.All(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	email = users.NormalizeEmail(email)

	idx := -1
	for i := range all {
		if users.NormalizeEmail(all[i].Email) == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrUserNotFound
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	all[idx].PasswordHash = hash

	m, err := s.users.SaveMutation(all)
	if err != nil {
		return err
	}
	if err := s.kv.Apply(ctx, m, s.slot.ClearMutation()); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info(ctx, "password reset", "user_id", all[idx].ID)
	return nil
}

func (s *resetService) Pending(ctx context.Context) (*models.PasswordResetRequest, error) {
	req, err := s.load(ctx)
	if err != nil || req == nil {
		return nil, err
	}
	if req.Expired(s.now()) {
		return nil, nil
	}
	return req, nil
}
