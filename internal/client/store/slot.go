package store

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/crownstore/internal/common"
)

// Slot holds at most one value of T under a fixed key. A fresh Slot over an
// empty store is empty; Clear returns it to that state.
type Slot[T any] struct {
	repo Repository
	key  string
}

func NewSlot[T any](repo Repository, key string) *Slot[T] {
	return &Slot[T]{repo: repo, key: key}
}

func (s *Slot[T]) Key() string {
	return s.key
}

// Load returns the stored value or nil when the slot is empty. A corrupt
// value is cleared and reported as common.ErrCorruptState.
func (s *Slot[T]) Load(ctx context.Context) (*T, error) {
	var v T
	found, err := LoadJSON(ctx, s.repo, s.key, &v)
	if errors.Is(err, common.ErrCorruptState) {
		if cerr := s.Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	if err != nil || !found {
		return nil, err
	}
	return &v, nil
}

// Store overwrites the slot with v.
func (s *Slot[T]) Store(ctx context.Context, v T) error {
	return SaveJSON(ctx, s.repo, s.key, v)
}

func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}

// ClearMutation is the Apply form of Clear.
func (s *Slot[T]) ClearMutation() Mutation {
	return Remove(s.key)
}
