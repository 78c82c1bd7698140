package store

import "context"

// Repository is the Persistent Store contract: whole-document reads and
// writes by key. Get returns (nil, nil) for a missing key. Writers are
// last-writer-wins; there is no isolation between concurrent
// read-modify-write cycles.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// Apply performs every mutation or none of them.
	Apply(ctx context.Context, muts ...Mutation) error

	Close() error
}

// Mutation is one write inside Apply: a put of Value, or a delete when
// Delete is set.
type Mutation struct {
	Key    string
	Value  []byte
	Delete bool
}

func Put(key string, value []byte) Mutation {
	return Mutation{Key: key, Value: value}
}

func Remove(key string) Mutation {
	return Mutation{Key: key, Delete: true}
}
