// Package users persists the customer collection.
//
// All users live in one JSON array document under the "crown_users" key and
// every change rewrites the whole document. Lookups scan the loaded array;
// the collection is small and local to one client.
//
// Finder methods return (nil, nil) when nothing matches. A corrupt document
// is logged and read as an empty collection.
//
//	repo := users.NewKVRepository(kv, log)
//	u, _ := repo.FindByEmail(ctx, "a@x.com")
//	all, _ := repo.All(ctx)
//	_ = repo.Save(ctx, append(all, newUser))
package users
