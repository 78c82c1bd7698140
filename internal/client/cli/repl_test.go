package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls    []string
	args     [][]string
	reported []error
	failWith error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.failWith
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) report(_ context.Context, err error) {
	f.reported = append(f.reported, err)
}

func (f *fakeExec) Register(context.Context) error { return f.record("register", nil) }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(context.Context) error         { return f.record("whoami", nil) }
func (f *fakeExec) ForgotPassword(context.Context) error { return f.record("forgot", nil) }
func (f *fakeExec) Profile(context.Context) error        { return f.record("profile", nil) }
func (f *fakeExec) Favorite(_ context.Context, a []string) error {
	return f.record("favorite", a)
}
func (f *fakeExec) AddToCart(context.Context) error { return f.record("add", nil) }
func (f *fakeExec) ShowCart(context.Context) error  { return f.record("cart", nil) }
func (f *fakeExec) UpdateQty(_ context.Context, a []string) error {
	return f.record("qty", a)
}
func (f *fakeExec) RemoveFromCart(_ context.Context, a []string) error {
	return f.record("remove", a)
}
func (f *fakeExec) ClearCart(context.Context) error { return f.record("clear", nil) }
func (f *fakeExec) Checkout(context.Context) error  { return f.record("checkout", nil) }
func (f *fakeExec) Orders(context.Context) error    { return f.record("orders", nil) }
func (f *fakeExec) Subscribe(_ context.Context, a []string) error {
	return f.record("subscribe", a)
}
func (f *fakeExec) Subscribers(_ context.Context, a []string) error {
	return f.record("subscribers", a)
}
func (f *fakeExec) Export(context.Context) error   { return f.record("export", nil) }
func (f *fakeExec) Overview(context.Context) error { return f.record("overview", nil) }

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"add",
		"qty sku-1 -2",
		"remove sku-1",
		"favorite sku-9",
		"subscribe ada@x.com",
		"subscribers lagos",
		"checkout",
		"orders",
		"overview",
		"logout",
		"exit",
		"cart",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{
		"login", "add", "qty", "remove", "favorite", "subscribe",
		"subscribers", "checkout", "orders", "overview", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"sku-1", "-2"}, exec.args[2])
	assert.Equal(t, []string{"lagos"}, exec.args[6])
	assert.Empty(t, exec.reported)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	lines := silencePrintln(t)

	input := strings.NewReader("qty sku-1\nremove\nfavorite\nsubscribe\nfoobar\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: qty <id> <delta>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	silencePrintln(t)

	boom := errors.New("boom")
	exec := &fakeExec{failWith: boom}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("cart\nexport")))

	assert.Equal(t, []string{"cart", "export"}, exec.calls)
	assert.Equal(t, []error{boom, boom}, exec.reported)
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := silencePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, *lines, guestHelp)

	*lines = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, *lines, customerHelp)
}
