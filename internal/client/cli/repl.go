package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/router"
)

// command is one REPL command. view returns the view path the command
// shows; the route guard for that path runs before any request is made.
// access raises the guard for commands that act on a public view but
// need a signed-in user (writing a review, say).
type command struct {
	name    string
	args    string
	help    string
	minArgs int
	view    func(args []string) string
	access  router.Access
	run     func(a *App, ctx context.Context, args []string) error
}

func at(path string) func([]string) string {
	return func([]string) string { return path }
}

func bookView(args []string) string {
	return "/book/" + args[0]
}

var commands map[string]*command

func init() {
	list := []*command{
		{name: "help", help: "show available commands", run: (*App).cmdHelp},
		{name: "home", help: "new and discounted books", view: at("/"), run: (*App).cmdHome},
		{name: "books", help: "list all books", view: at("/books"), run: (*App).cmdBooks},
		{name: "book", args: "<id>", minArgs: 1, help: "show a book with its reviews", view: bookView, run: (*App).cmdBook},
		{name: "new", help: "newest books", view: at("/"), run: (*App).cmdNewBooks},
		{name: "trending", help: "trending books", view: at("/"), run: (*App).cmdTrending},
		{name: "discounted", help: "discounted books", view: at("/"), run: (*App).cmdDiscounted},
		{name: "categories", help: "list categories", view: at("/books"), run: (*App).cmdCategories},
		{name: "publishers", help: "list publishers", view: at("/books"), run: (*App).cmdPublishers},

		{name: "login", help: "sign in with email and password", view: at(router.LoginPath), run: (*App).cmdLogin},
		{name: "google", args: "<credential>", minArgs: 1, help: "sign in with a Google ID token", view: at(router.LoginPath), run: (*App).cmdGoogle},
		{name: "register", help: "create an account", view: at("/register"), run: (*App).cmdRegister},
		{name: "verify", args: "<token>", minArgs: 1, help: "verify your email address", view: func(args []string) string { return "/verify-email/" + args[0] }, run: (*App).cmdVerify},
		{name: "logout", help: "sign out", run: (*App).cmdLogout},
		{name: "whoami", help: "show the signed-in user and token details", run: (*App).cmdWhoami},

		{name: "cart", help: "show your cart", view: at("/cart"), run: (*App).cmdCart},
		{name: "add", args: "<bookId> [qty]", minArgs: 1, help: "add a book to your cart", view: at("/cart"), run: (*App).cmdAddToCart},
		{name: "qty", args: "<itemId> <n>", minArgs: 2, help: "change the quantity of a cart item", view: at("/cart"), run: (*App).cmdQuantity},
		{name: "rm", args: "<itemId>", minArgs: 1, help: "remove a cart item", view: at("/cart"), run: (*App).cmdRemove},
		{name: "checkout", help: "place an order for your cart", view: at("/cart"), run: (*App).cmdCheckout},
		{name: "orders", help: "your orders", view: at("/orders"), run: (*App).cmdOrders},

		{name: "profile", help: "show your profile", view: at("/profile"), run: (*App).cmdProfile},
		{name: "setname", args: "<name>", minArgs: 1, help: "change your display name", view: at("/profile"), run: (*App).cmdSetName},
		{name: "rename", args: "<username>", minArgs: 1, help: "change your username", view: at("/profile"), run: (*App).cmdRename},
		{name: "avatar", args: "<path>", minArgs: 1, help: "upload an avatar image", view: at("/profile"), run: (*App).cmdAvatar},
		{name: "mybooks", help: "books you sell", view: at("/my-books"), run: (*App).cmdMyBooks},
		{name: "sell", help: "list a book for sale", view: at("/my-books"), run: (*App).cmdSell},
		{name: "unsell", args: "<id>", minArgs: 1, help: "remove one of your books", view: at("/my-books"), run: (*App).cmdUnsell},
		{name: "wishlist", help: "your wishlist", view: at("/wishlist"), run: (*App).cmdWishlist},
		{name: "wish", args: "<bookId>", minArgs: 1, help: "add or remove a book from your wishlist", view: at("/wishlist"), run: (*App).cmdWish},

		{name: "reviews", args: "<bookId>", minArgs: 1, help: "reviews of a book", view: bookView, run: (*App).cmdReviews},
		{name: "review", args: "<bookId>", minArgs: 1, help: "review a book", view: bookView, access: router.Protected, run: (*App).cmdReview},
		{name: "unreview", args: "<bookId>", minArgs: 1, help: "delete your review of a book", view: bookView, access: router.Protected, run: (*App).cmdUnreview},
		{name: "myreviews", help: "reviews you wrote", view: at("/profile"), run: (*App).cmdMyReviews},
		{name: "delreview", args: "<id>", minArgs: 1, help: "delete one of your reviews", view: at("/profile"), run: (*App).cmdDeleteReview},

		{name: "admin", args: "[books|users|orders]", help: "admin back office", view: at(router.AdminPath), run: (*App).cmdAdmin},
		{name: "status", args: "<orderId> <status>", minArgs: 2, help: "set an order status (pending, completed, cancelled)", view: at(router.AdminPath), run: (*App).cmdOrderStatus},
		{name: "editbook", args: "<id>", minArgs: 1, help: "edit a book", view: at(router.AdminPath), run: (*App).cmdEditBook},
		{name: "delbook", args: "<id>", minArgs: 1, help: "delete a book", view: at(router.AdminPath), run: (*App).cmdDeleteBook},
		{name: "addpub", help: "add a publisher", view: at(router.AdminPath), run: (*App).cmdAddPublisher},
		{name: "delpub", args: "<id>", minArgs: 1, help: "delete a publisher", view: at(router.AdminPath), run: (*App).cmdDeletePublisher},
		{name: "addcat", args: "<name>", minArgs: 1, help: "add a category", view: at(router.AdminPath), run: (*App).cmdAddCategory},
		{name: "delcat", args: "<name>", minArgs: 1, help: "delete a category", view: at(router.AdminPath), run: (*App).cmdDeleteCategory},

		{name: "back", help: "go back to the previous view", run: (*App).cmdBack},
	}

	commands = make(map[string]*command, len(list))
	for _, c := range list {
		commands[c.name] = c
	}
}

// runREPL reads commands from a.reader until EOF, "exit" or "quit".
// Command errors are printed and never end the loop.
func runREPL(ctx context.Context, a *App) {
	for {
		fmt.Fprint(a.out, a.statusLine())
		line, err := a.reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if quit := a.exec(ctx, line); quit {
				a.println("Bye!")
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.printErr(err)
			}
			a.println()
			return
		}
	}
}

// exec runs one command line, prints its error if any and reports
// whether the REPL should stop.
func (a *App) exec(ctx context.Context, line string) bool {
	quit, err := a.execErr(ctx, line)
	if err != nil {
		a.logger.Debug(ctx, "command failed", "line", line, "status", client.StatusOf(err), "error", err)
		a.printErr(err)
	}
	return quit
}

// execErr runs one command line and returns the command's error unprinted.
// Unknown commands, usage mistakes and guard redirects are reported to the
// user directly and are not errors.
func (a *App) execErr(ctx context.Context, line string) (quit bool, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}
	name, args := parts[0], parts[1:]

	switch name {
	case "exit", "quit":
		return true, nil
	}

	cmd, ok := commands[name]
	if !ok {
		a.println("Unknown command:", name)
		return false, nil
	}
	if len(args) < cmd.minArgs {
		a.printf("Usage: %s %s\n", cmd.name, cmd.args)
		return false, nil
	}

	if cmd.view != nil {
		allowed, err := a.enter(ctx, cmd.view(args), cmd.access)
		if err != nil || !allowed {
			return false, err
		}
	}

	return false, cmd.run(a, ctx, args)
}

// enter moves to path if the route guards allow it. A refused visit
// navigates to the guard's redirect instead.
func (a *App) enter(ctx context.Context, path string, access router.Access) (bool, error) {
	d, err := router.Resolve(ctx, a.ctrl, path)
	if err != nil {
		return false, err
	}
	if !d.Redirected && access > d.Route.Access {
		redirect, err := router.Guard(ctx, a.ctrl, access)
		if err != nil {
			return false, err
		}
		if redirect != "" {
			d.Path, d.Redirected = redirect, true
		}
	}

	a.history.Navigate(d.Path)
	if !d.Redirected {
		return true, nil
	}

	switch d.Path {
	case router.LoginPath:
		a.println("Please log in first.")
	case router.HomePath:
		a.println("Access denied: administrators only.")
	}
	return false, nil
}

func (a *App) cmdHelp(_ context.Context, _ []string) error {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)

	t := newTable("Command", "Description")
	for _, n := range names {
		c := commands[n]
		usage := c.name
		if c.args != "" {
			usage += " " + c.args
		}
		t.Row(usage, c.help)
	}
	t.Row("exit | quit", "leave the program")
	a.println(t.Render())
	return nil
}

func (a *App) cmdBack(_ context.Context, _ []string) error {
	a.history.Back()
	return nil
}
