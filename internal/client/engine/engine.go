// Package engine assembles the storefront state engine over one store.
//
// The engine owns the two single-value slots (current session and
// outstanding password reset). A fresh engine over an empty store starts
// with both empty; Teardown returns them to that state.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/crownstore/internal/client/delivery"
	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/cart"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/subscribers"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/users"
	"github.com/dmitrijs2005/crownstore/internal/client/services"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/cryptox"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

const (
	SessionKey = "crown_session"
	ResetKey   = "password_reset"
)

type Options struct {
	Logger logging.Logger
	Hasher cryptox.Hasher

	// Sender receives reset codes. Nil logs them instead.
	Sender delivery.Sender

	Sessions services.SessionDurations
	ResetTTL time.Duration
}

type Engine struct {
	Identity    services.IdentityService
	Auth        services.AuthService
	Sessions    services.SessionService
	Reset       services.ResetService
	Cart        services.CartService
	Orders      services.OrderService
	Subscribers services.SubscriberService

	kv          store.Repository
	users       users.Repository
	subscribers subscribers.Repository
	sessionSlot *services.SessionStore
	resetSlot   *services.ResetStore
	dispatcher  *delivery.Dispatcher
	log         logging.Logger
	now         func() time.Time
}

func New(kv store.Repository, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	hasher := opts.Hasher
	if hasher == nil {
		hasher = cryptox.NewArgon2Hasher(cryptox.DefaultArgon2Params)
	}
	sender := opts.Sender
	if sender == nil {
		sender = delivery.NewLogSender(log)
	}
	durations := opts.Sessions
	if durations.Default <= 0 {
		durations.Default = services.DefaultSessionDurations.Default
	}
	if durations.RememberMe <= 0 {
		durations.RememberMe = services.DefaultSessionDurations.RememberMe
	}

	e := &Engine{
		kv:          kv,
		users:       users.NewKVRepository(kv, log),
		subscribers: subscribers.NewKVRepository(kv, log),
		sessionSlot: store.NewSlot[models.Session](kv, SessionKey),
		resetSlot:   store.NewSlot[models.PasswordResetRequest](kv, ResetKey),
		dispatcher:  delivery.NewDispatcher(sender, log),
		log:         log,
		now:         time.Now,
	}
	cartRepo := cart.NewKVRepository(kv, log)

	e.Identity = services.NewIdentityService(e.users, hasher, log)
	e.Sessions = services.NewSessionService(e.sessionSlot, e.users, durations, log)
	e.Auth = services.NewAuthService(e.users, e.Sessions, hasher, log)
	e.Reset = services.NewResetService(kv, e.resetSlot, e.users, hasher, e.dispatcher, opts.ResetTTL, log)
	e.Cart = services.NewCartService(cartRepo, log)
	e.Orders = services.NewOrderService(kv, e.users, cartRepo, log)
	e.Subscribers = services.NewSubscriberService(e.subscribers, log)

	return e
}

// Overview aggregates customers, orders and subscribers as of now.
func (e *Engine) Overview(ctx context.Context) (models.Overview, error) {
	return services.Overview(ctx, e.users, e.subscribers, e.now())
}

// Teardown clears the session and reset slots in one write. Other
// documents are kept.
func (e *Engine) Teardown(ctx context.Context) error {
	if err := e.kv.Apply(ctx, e.sessionSlot.ClearMutation(), e.resetSlot.ClearMutation()); err != nil {
		return fmt.Errorf("teardown: %w", err)
	}
	e.log.Debug(ctx, "engine slots cleared")
	return nil
}

// Close waits for pending code deliveries and closes the store.
func (e *Engine) Close() error {
	e.dispatcher.Wait()
	return e.kv.Close()
}
