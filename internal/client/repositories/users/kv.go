package users

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

type KVRepository struct {
	users *store.Collection[models.User]
}

func NewKVRepository(kv store.Repository, log logging.Logger) *KVRepository {
	return &KVRepository{users: store.NewCollection[models.User](kv, Key, log)}
}

func (r *KVRepository) All(ctx context.Context) ([]models.User, error) {
	return r.users.Load(ctx)
}

func (r *KVRepository) find(ctx context.Context, match func(models.User) bool) (*models.User, error) {
	all, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if match(all[i]) {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *KVRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	return r.find(ctx, func(u models.User) bool { return NormalizeEmail(u.Email) == email })
}

func (r *KVRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u models.User) bool { return u.ID == id })
}

func (r *KVRepository) Save(ctx context.Context, all []models.User) error {
	return r.users.Save(ctx, all)
}

func (r *KVRepository) SaveMutation(all []models.User) (store.Mutation, error) {
	return r.users.Mutation(all)
}

// NormalizeEmail is the comparison form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
