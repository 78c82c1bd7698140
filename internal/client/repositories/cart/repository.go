// Package cart persists the browser cart as one JSON array under "cart".
package cart

import (
	"context"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

const Key = "cart"

type Repository interface {
	Load(ctx context.Context) (models.Cart, error)
	Save(ctx context.Context, c models.Cart) error
	Clear(ctx context.Context) error

	// ClearMutation empties the cart inside a store.Repository.Apply batch.
	ClearMutation() store.Mutation
}

type KVRepository struct {
	kv    store.Repository
	items *store.Collection[models.CartItem]
}

func NewKVRepository(kv store.Repository, log logging.Logger) *KVRepository {
	return &KVRepository{kv: kv, items: store.NewCollection[models.CartItem](kv, Key, log)}
}

func (r *KVRepository) Load(ctx context.Context) (models.Cart, error) {
	items, err := r.items.Load(ctx)
	if err != nil {
		return nil, err
	}
	return models.Cart(items), nil
}

func (r *KVRepository) Save(ctx context.Context, c models.Cart) error {
	if c == nil {
		c = models.Cart{}
	}
	return r.items.Save(ctx, c)
}

func (r *KVRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, Key)
}

func (r *KVRepository) ClearMutation() store.Mutation {
	return store.Remove(Key)
}
