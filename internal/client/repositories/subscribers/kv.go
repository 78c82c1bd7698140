package subscribers

import (
	"context"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

type KVRepository struct {
	subs *store.Collection[models.Subscriber]
}

func NewKVRepository(kv store.Repository, log logging.Logger) *KVRepository {
	return &KVRepository{subs: store.NewCollection[models.Subscriber](kv, Key, log)}
}

func (r *KVRepository) All(ctx context.Context) ([]models.Subscriber, error) {
	return r.subs.Load(ctx)
}

func (r *KVRepository) Save(ctx context.Context, all []models.Subscriber) error {
	return r.subs.Save(ctx, all)
}
