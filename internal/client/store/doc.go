// Package store implements the Persistent Store: a durable key to
// JSON-document map with SQLite (default) and Redis backends.
//
// Layers
//
//   - Repository: raw bytes by key (SQLiteRepository, RedisRepository).
//   - LoadJSON / EncodeJSON: typed JSON documents on top of a Repository.
//     A value that fails to decode is reported as common.ErrCorruptState.
//   - Slot[T]: a single-value document (current session, reset request)
//     with explicit Load, Store and Clear.
//
// Documents are small and always read and written whole. Multi-key writes
// that must land together go through Repository.Apply.
package store
