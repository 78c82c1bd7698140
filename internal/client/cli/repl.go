package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	report(ctx context.Context, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Profile(ctx context.Context) error
	Favorite(ctx context.Context, args []string) error

	AddToCart(ctx context.Context) error
	ShowCart(ctx context.Context) error
	UpdateQty(ctx context.Context, args []string) error
	RemoveFromCart(ctx context.Context, args []string) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error

	Subscribe(ctx context.Context, args []string) error
	Subscribers(ctx context.Context, args []string) error
	Export(ctx context.Context) error
	Overview(ctx context.Context) error
}

const (
	guestHelp    = "Available commands: register, login, forgot, add, cart, qty, remove, clear, subscribe, subscribers, export, overview, exit"
	customerHelp = "Available commands: whoami, profile, favorite, add, cart, qty, remove, clear, checkout, orders, subscribe, subscribers, export, overview, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the crownstore CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Always:
//	  - help                 : show available commands
//	  - add                  : add an item to the cart (interactive)
//	  - cart                 : show the cart and subtotal
//	  - qty <id> <delta>     : change a line quantity
//	  - remove <id>          : drop a line
//	  - clear                : empty the cart (asks first)
//	  - subscribe <contact>  : newsletter sign-up by email or phone
//	  - subscribers [query]  : list or search subscribers
//	  - export               : write subscribers to CSV and print the list
//	  - overview             : store totals and recent orders
//	  - exit | quit          : leave the program
//
//	Not logged in:
//	  - register, login, forgot
//
//	Logged in:
//	  - whoami, profile, favorite <id>, checkout, orders, logout
//
// Errors returned by command handlers are rendered through report.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("crown %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(customerHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "forgot":
			cmdErr = a.ForgotPassword(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)

		case "favorite":
			if len(args) != 1 {
				printlnFn("Usage: favorite <product id>")
				continue
			}
			cmdErr = a.Favorite(ctx, args)

		case "add":
			cmdErr = a.AddToCart(ctx)
		case "cart":
			cmdErr = a.ShowCart(ctx)

		case "qty":
			if len(args) != 2 {
				printlnFn("Usage: qty <id> <delta>")
				continue
			}
			cmdErr = a.UpdateQty(ctx, args)

		case "remove":
			if len(args) != 1 {
				printlnFn("Usage: remove <id>")
				continue
			}
			cmdErr = a.RemoveFromCart(ctx, args)

		case "clear":
			cmdErr = a.ClearCart(ctx)
		case "checkout":
			cmdErr = a.Checkout(ctx)
		case "orders":
			cmdErr = a.Orders(ctx)

		case "subscribe":
			if len(args) == 0 {
				printlnFn("Usage: subscribe <email or phone>")
				continue
			}
			cmdErr = a.Subscribe(ctx, args)

		case "subscribers":
			cmdErr = a.Subscribers(ctx, args)
		case "export":
			cmdErr = a.Export(ctx)
		case "overview":
			cmdErr = a.Overview(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.report(ctx, cmdErr)
		}
	}
}
