package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/users"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/cryptox"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	fullNameMinLength = 3
	phoneMinLength    = 10
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Email        string
	Phone        string
	Password     []byte
	FullName     string
	CompanyName  string
	BusinessType string
	Address      *models.Address
}

// IdentityService is the user registry.
//
// Emails are unique case-insensitively, phones exactly (after trimming).
// Lookups that find nothing return common.ErrUserNotFound.
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)

	// UpdateProfile never touches id, email, password hash, orders or
	// creation time; ProfilePatch has no fields for them.
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error)

	// ToggleFavorite reports whether productID is a favorite afterwards.
	ToggleFavorite(ctx context.Context, userID, productID string) (bool, error)
}

type identityService struct {
	users  users.Repository
	hasher cryptox.Hasher
	log    logging.Logger
	now    func() time.Time
}

func NewIdentityService(repo users.Repository, hasher cryptox.Hasher, log logging.Logger) IdentityService {
	if log == nil {
		log = logging.Nop()
	}
	return &identityService{users: repo, hasher: hasher, log: log.With("component", "identity"), now: time.Now}
}

func validateRegistration(in *RegisterInput) error {
	in.Email = users.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.BusinessType = strings.TrimSpace(in.BusinessType)

	switch {
	case !emailPattern.MatchString(in.Email):
		return common.ErrInvalidEmail
	case utf8.RuneCountInString(in.FullName) < fullNameMinLength:
		return common.ErrInvalidFullName
	case utf8.RuneCountInString(in.Phone) < phoneMinLength:
		return common.ErrInvalidPhone
	case in.BusinessType == "":
		return common.ErrMissingBusiness
	}
	return ValidatePassword(in.Password)
}

func (s *identityService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validateRegistration(&in); err != nil {
		return nil, err
	}

	all, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, u := range all {
		if users.NormalizeEmail(u.Email) == in.Email {
			return nil, common.ErrDuplicateEmail
		}
		if strings.TrimSpace(u.Phone) == in.Phone {
			return nil, common.ErrDuplicatePhone
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           newID(userIDPrefix),
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		FullName:     in.FullName,
		CompanyName:  in.CompanyName,
		BusinessType: in.BusinessType,
		Addresses:    []models.Address{},
		Favorites:    []string{},
		Orders:       []models.Order{},
		CreatedAt:    s.now().UTC(),
	}
	if in.Address != nil {
		user.Addresses = append(user.Addresses, *in.Address)
	}

	if err := s.users.Save(ctx, append(all, user)); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "email", logging.MaskEmail(user.Email))
	return &user, nil
}

func (s *identityService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, common.ErrUserNotFound
	}
	return u, nil
}

func (s *identityService) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, common.ErrUserNotFound
	}
	return u, nil
}

// mutateUser loads the collection, applies fn to the user with id and saves
// the collection when fn succeeds.
func (s *identityService) mutateUser(ctx context.Context, id string, fn func(all []models.User, u *models.User) error) (*models.User, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		if err := fn(all, &all[i]); err != nil {
			return nil, err
		}
		if err := s.users.Save(ctx, all); err != nil {
			return nil, fmt.Errorf("save users: %w", err)
		}
		u := all[i]
		return &u, nil
	}
	return nil, common.ErrUserNotFound
}

func (s *identityService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error) {
	u, err := s.mutateUser(ctx, userID, func(all []models.User, u *models.User) error {
		if patch.FullName != nil {
			name := strings.TrimSpace(*patch.FullName)
			if utf8.RuneCountInString(name) < fullNameMinLength {
				return common.ErrInvalidFullName
			}
			patch.FullName = &name
		}
		if patch.Phone != nil {
			phone := strings.TrimSpace(*patch.Phone)
			if utf8.RuneCountInString(phone) < phoneMinLength {
				return common.ErrInvalidPhone
			}
			for _, other := range all {
				if other.ID != u.ID && strings.TrimSpace(other.Phone) == phone {
					return common.ErrDuplicatePhone
				}
			}
			patch.Phone = &phone
		}
		if patch.BusinessType != nil {
			business := strings.TrimSpace(*patch.BusinessType)
			if business == "" {
				return common.ErrMissingBusiness
			}
			patch.BusinessType = &business
		}
		patch.Apply(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "profile updated", "user_id", u.ID)
	return u, nil
}

func (s *identityService) ToggleFavorite(ctx context.Context, userID, productID string) (bool, error) {
	var added bool
	_, err := s.mutateUser(ctx, userID, func(_ []models.User, u *models.User) error {
		added = u.ToggleFavorite(productID)
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}
