package store

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

// Collection is a JSON array document. A corrupt array is logged and read
// as empty, so the next Save replaces it.
type Collection[T any] struct {
	repo Repository
	key  string
	log  logging.Logger
}

func NewCollection[T any](repo Repository, key string, log logging.Logger) *Collection[T] {
	if log == nil {
		log = logging.Nop()
	}
	return &Collection[T]{repo: repo, key: key, log: log}
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	var items []T
	_, err := LoadJSON(ctx, c.repo, c.key, &items)
	if errors.Is(err, common.ErrCorruptState) {
		c.log.Warn(ctx, "corrupt collection treated as empty", "key", c.key, "error", err)
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	return SaveJSON(ctx, c.repo, c.key, items)
}

// Mutation is the Apply form of Save.
func (c *Collection[T]) Mutation(items []T) (Mutation, error) {
	return EncodeJSON(c.key, items)
}
