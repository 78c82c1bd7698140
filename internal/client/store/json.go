package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/crownstore/internal/common"
)

// LoadJSON decodes the document at key into dst. It reports false when the
// key is absent. Undecodable content yields common.ErrCorruptState.
func LoadJSON(ctx context.Context, repo Repository, key string, dst any) (bool, error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, common.Corrupt(key, err)
	}
	return true, nil
}

// EncodeJSON builds the Mutation that stores v at key.
func EncodeJSON(key string, v any) (Mutation, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Mutation{}, fmt.Errorf("encode document[%s]: %w", key, err)
	}
	return Put(key, raw), nil
}

// SaveJSON stores v at key.
func SaveJSON(ctx context.Context, repo Repository, key string, v any) error {
	m, err := EncodeJSON(key, v)
	if err != nil {
		return err
	}
	return repo.Set(ctx, m.Key, m.Value)
}
