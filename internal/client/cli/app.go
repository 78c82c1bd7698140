package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/crownstore/internal/client/config"
	"github.com/dmitrijs2005/crownstore/internal/client/delivery"
	"github.com/dmitrijs2005/crownstore/internal/client/engine"
	"github.com/dmitrijs2005/crownstore/internal/client/services"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

type App struct {
	config *config.Config
	engine *engine.Engine
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log, err := logging.New(os.Stderr, logging.Options{
		Format:      c.LogFormat,
		Level:       c.LogLevel,
		Environment: c.Environment,
	})
	if err != nil {
		return nil, err
	}

	kv, err := openStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening store", "backend", c.StoreBackend, "error", err)
		return nil, err
	}

	e := engine.New(kv, engine.Options{
		Logger:   log,
		Sender:   newSender(c, log),
		Sessions: services.SessionDurations{Default: c.SessionTTL, RememberMe: c.RememberMeTTL},
		ResetTTL: c.ResetOTPTTL,
	})

	return newApp(c, e, log, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, e *engine.Engine, log logging.Logger, r *bufio.Reader, w io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{config: c, engine: e, log: log, reader: r, out: w}
}

func openStore(ctx context.Context, c *config.Config) (store.Repository, error) {
	switch c.StoreBackend {
	case config.BackendRedis:
		return store.OpenRedis(ctx, c.RedisAddr, c.RedisPrefix)
	default:
		return store.OpenSQLite(ctx, c.DatabasePath)
	}
}

func newSender(c *config.Config, log logging.Logger) delivery.Sender {
	if c.SendGridAPIKey == "" {
		return delivery.NewLogSender(log)
	}
	return delivery.NewSendGridSender(c.SendGridAPIKey, c.MailFrom, c.MailFromName)
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.engine.Close(); err != nil {
			a.log.Error(ctx, "error closing store", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to Crown Store (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	s, err := a.engine.Sessions.Current(ctx)
	return err == nil && s != nil
}

func (a *App) getStatus(ctx context.Context) string {
	s := "guest"
	if sess, err := a.engine.Sessions.Current(ctx); err == nil && sess != nil {
		s = sess.Email
	}
	if n, err := a.engine.Cart.ItemCount(ctx); err == nil && n > 0 {
		s = fmt.Sprintf("%s, cart %d", s, n)
	}
	return fmt.Sprintf("(%s)", s)
}

// report prints the user-facing message for err. Failures outside the
// engine taxonomy are logged with their details.
func (a *App) report(ctx context.Context, err error) {
	var ie inputError
	if errors.As(err, &ie) {
		fmt.Fprintln(a.out, ie.msg)
		return
	}
	res := common.ResultOf(err)
	if res.Kind == common.KindInternal {
		a.log.Error(ctx, "command failed", "error", err)
	}
	fmt.Fprintln(a.out, res.Message)
}
