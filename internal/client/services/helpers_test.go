package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/cart"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/subscribers"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/users"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/cryptox"
)

var testHasherParams = cryptox.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLength: 16, SaltLength: 8}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type sentOTP struct {
	destination string
	otp         string
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []sentOTP
}

func (d *fakeDispatcher) Dispatch(_ context.Context, destination, otp string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentOTP{destination: destination, otp: otp})
}

func (d *fakeDispatcher) last() sentOTP {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.sent) == 0 {
		return sentOTP{}
	}
	return d.sent[len(d.sent)-1]
}

// fixture wires every service over one in-memory SQLite store and a shared
// fake clock.
type fixture struct {
	kv    store.Repository
	users *users.KVRepository
	subs  *subscribers.KVRepository
	cart  *cart.KVRepository
	clock *fakeClock
	otp   *fakeDispatcher

	sessionSlot *SessionStore
	resetSlot   *ResetStore

	identity IdentityService
	sessions SessionService
	auth     AuthService
	reset    ResetService
	carts    CartService
	orders   OrderService
	subscr   SubscriberService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	f := &fixture{
		kv:          kv,
		users:       users.NewKVRepository(kv, nil),
		subs:        subscribers.NewKVRepository(kv, nil),
		cart:        cart.NewKVRepository(kv, nil),
		clock:       newFakeClock(),
		otp:         &fakeDispatcher{},
		sessionSlot: store.NewSlot[models.Session](kv, "crown_session"),
		resetSlot:   store.NewSlot[models.PasswordResetRequest](kv, "password_reset"),
	}
	hasher := cryptox.NewArgon2Hasher(testHasherParams)

	identity := NewIdentityService(f.users, hasher, nil).(*identityService)
	identity.now = f.clock.Now
	f.identity = identity

	sessions := NewSessionService(f.sessionSlot, f.users, DefaultSessionDurations, nil).(*sessionService)
	sessions.now = f.clock.Now
	f.sessions = sessions

	f.auth = NewAuthService(f.users, f.sessions, hasher, nil)

	reset := NewResetService(kv, f.resetSlot, f.users, hasher, f.otp, DefaultResetTTL, nil).(*resetService)
	reset.now = f.clock.Now
	f.reset = reset

	f.carts = NewCartService(f.cart, nil)

	orders := NewOrderService(kv, f.users, f.cart, nil).(*orderService)
	orders.now = f.clock.Now
	f.orders = orders

	subscr := NewSubscriberService(f.subs, nil).(*subscriberService)
	subscr.now = f.clock.Now
	f.subscr = subscr

	return f
}

func adaInput() RegisterInput {
	return RegisterInput{
		Email:        "a@x.com",
		Phone:        "08011112222",
		Password:     []byte("abc12345"),
		FullName:     "Ada Lovelace",
		BusinessType: "individual",
	}
}

func (f *fixture) registerAda(t *testing.T) *models.User {
	t.Helper()
	u, err := f.identity.Register(context.Background(), adaInput())
	require.NoError(t, err)
	return u
}
