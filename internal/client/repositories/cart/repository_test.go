package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
)

func TestKVRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	kv, err := store.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	r := NewKVRepository(kv, nil)

	c, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, c)

	require.NoError(t, r.Save(ctx, models.Cart{{ID: "a", Price: 10, Qty: 2}}))
	c, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Cart{{ID: "a", Price: 10, Qty: 2}}, c)

	require.NoError(t, r.Save(ctx, nil))
	raw, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	require.NoError(t, r.Clear(ctx))
	raw, err = kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Nil(t, raw)

	assert.Equal(t, store.Remove(Key), r.ClearMutation())
}
