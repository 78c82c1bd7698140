package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/services"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/cryptox"
)

type captureSender struct {
	mu   sync.Mutex
	otps map[string]string
}

func (s *captureSender) Deliver(_ context.Context, destination, otp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.otps == nil {
		s.otps = map[string]string{}
	}
	s.otps[destination] = otp
	return nil
}

func (s *captureSender) get(destination string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otps[destination]
}

func testOptions(sender *captureSender) Options {
	return Options{
		Hasher: cryptox.NewArgon2Hasher(cryptox.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLength: 16, SaltLength: 8}),
		Sender: sender,
	}
}

func newSQLiteEngine(t *testing.T, sender *captureSender) *Engine {
	t.Helper()
	kv, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	e := New(kv, testOptions(sender))
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func newRedisEngine(t *testing.T, sender *captureSender) *Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	kv := store.NewRedisRepository(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "crown")
	e := New(kv, testOptions(sender))
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func register(t *testing.T, e *Engine) *models.User {
	t.Helper()
	u, err := e.Identity.Register(context.Background(), services.RegisterInput{
		Email:        "a@x.com",
		Phone:        "08011112222",
		Password:     []byte("abc12345"),
		FullName:     "Ada Lovelace",
		BusinessType: "individual",
	})
	require.NoError(t, err)
	return u
}

func runResetFlow(t *testing.T, e *Engine, sender *captureSender) {
	ctx := context.Background()
	register(t, e)

	req, err := e.Reset.RequestReset(ctx, "a@x.com")
	require.NoError(t, err)

	e.dispatcher.Wait()
	assert.Equal(t, req.OTP, sender.get("a@x.com"))

	require.NoError(t, e.Reset.VerifyOTP(ctx, "a@x.com", req.OTP))
	require.NoError(t, e.Reset.ResetPassword(ctx, "a@x.com", []byte("newpass1")))
	require.ErrorIs(t, e.Reset.VerifyOTP(ctx, "a@x.com", req.OTP), common.ErrNoActiveRequest)

	_, err = e.Auth.Login(ctx, "a@x.com", []byte("abc12345"), false)
	require.ErrorIs(t, err, common.ErrIncorrectPassword)
	_, err = e.Auth.Login(ctx, "a@x.com", []byte("newpass1"), false)
	require.NoError(t, err)
}

func TestEngine_ResetFlowSQLite(t *testing.T) {
	sender := &captureSender{}
	runResetFlow(t, newSQLiteEngine(t, sender), sender)
}

func TestEngine_ResetFlowRedis(t *testing.T) {
	sender := &captureSender{}
	runResetFlow(t, newRedisEngine(t, sender), sender)
}

func TestEngine_Teardown(t *testing.T) {
	e := newSQLiteEngine(t, &captureSender{})
	ctx := context.Background()
	register(t, e)

	_, err := e.Auth.Login(ctx, "a@x.com", []byte("abc12345"), true)
	require.NoError(t, err)
	_, err = e.Reset.RequestReset(ctx, "a@x.com")
	require.NoError(t, err)
	_, err = e.Cart.AddItem(ctx, models.CartItem{ID: "a", Price: 10, Qty: 1})
	require.NoError(t, err)

	require.NoError(t, e.Teardown(ctx))

	sess, err := e.Sessions.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	pending, err := e.Reset.Pending(ctx)
	require.NoError(t, err)
	assert.Nil(t, pending)

	// user data and cart survive
	_, err = e.Identity.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	n, err := e.Cart.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEngine_FreshSlotsEmpty(t *testing.T) {
	e := newSQLiteEngine(t, &captureSender{})
	ctx := context.Background()

	sess, err := e.Sessions.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	pending, err := e.Reset.Pending(ctx)
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestEngine_Overview(t *testing.T) {
	e := newSQLiteEngine(t, &captureSender{})
	ctx := context.Background()
	u := register(t, e)

	_, err := e.Cart.AddItem(ctx, models.CartItem{ID: "a", Price: 10, Qty: 2})
	require.NoError(t, err)
	_, err = e.Orders.Checkout(ctx, u.ID)
	require.NoError(t, err)
	_, err = e.Subscribers.Subscribe(ctx, "news@x.com")
	require.NoError(t, err)

	ov, err := e.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ov.TotalCustomers)
	assert.Equal(t, 1, ov.TotalOrders)
	assert.Equal(t, 1, ov.TotalSubscribers)
	assert.Equal(t, 1, ov.CustomersThisMonth)
}

func TestEngine_ConcurrentWritersLastWins(t *testing.T) {
	kv, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	a := New(kv, testOptions(&captureSender{}))
	b := New(kv, testOptions(&captureSender{}))
	t.Cleanup(func() { _ = a.Close() })
	ctx := context.Background()

	_, err = a.Cart.AddItem(ctx, models.CartItem{ID: "x", Price: 1, Qty: 1})
	require.NoError(t, err)
	cartB, err := b.Cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, cartB, 1)

	_, err = a.Cart.AddItem(ctx, models.CartItem{ID: "y", Price: 1, Qty: 1})
	require.NoError(t, err)

	// b writes back a stale snapshot through the store and wins
	require.NoError(t, store.SaveJSON(ctx, kv, "cart", cartB))
	items, err := a.Cart.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
