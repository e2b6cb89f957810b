package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/avetrov/userdeck/internal/client/client"
	"github.com/avetrov/userdeck/internal/client/config"
	"github.com/avetrov/userdeck/internal/client/notify"
	"github.com/avetrov/userdeck/internal/client/router"
	"github.com/avetrov/userdeck/internal/client/session"
	"github.com/avetrov/userdeck/internal/client/users"
	"github.com/avetrov/userdeck/internal/client/workflow"
	"github.com/avetrov/userdeck/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the core components together and implements the presentation
// side: it is the session's Navigator (switching the active view) and the
// home of the interactive commands dispatched by the REPL.
type App struct {
	config   *config.Config
	log      logging.Logger
	notifier notify.Notifier

	db         *sql.DB
	gateway    client.Client
	session    *session.Manager
	controller *users.Controller
	edit       *workflow.Edit
	del        *workflow.Delete
	rt         *router.Router

	reader *bufio.Reader
	out    io.Writer

	ctx  context.Context
	view router.Match
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	a := &App{
		config:   cfg,
		log:      log,
		notifier: notify.NewConsole(os.Stdout),
		db:       db,
		rt:       router.New(),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	a.session = session.NewManager(db, a, a.notifier, log)
	a.gateway = client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, a.session, log)
	a.controller = users.NewController(a.gateway, a.notifier, log)
	a.edit = workflow.NewEdit(a.gateway, a.controller, a.notifier, log)
	a.del = workflow.NewDelete(a.gateway, a.controller, a.notifier, log)

	return a, nil
}

// Run resolves the starting session state and enters the command loop.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	defer a.Close()

	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	if a.session.IsAuthenticated() {
		a.Navigate(router.PathUsers)
	}

	fmt.Fprintln(a.out, "userdeck (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

// Close releases the gateway and the local database.
func (a *App) Close() {
	if a.gateway != nil {
		_ = a.gateway.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// Navigate implements session.Navigator. The destination passes through the
// router's auth gate, so a protected path lands on the login view whenever
// the session is unauthenticated.
func (a *App) Navigate(path string) {
	m := a.rt.Destination(path, a.session.IsAuthenticated())
	a.view = m

	switch m.Route.Name {
	case router.ViewLogin:
		fmt.Fprintln(a.out, "Please log in (type 'login').")
	case router.ViewUsers:
		if err := a.controller.LoadPage(a.ctx, a.controller.CurrentPage()); err == nil {
			a.renderList()
		}
	case router.ViewUserEdit:
		a.openEditPage(a.ctx, m.Params["id"])
	case router.ViewNotFound:
		fmt.Fprintf(a.out, "Not found: %s\n", path)
	}
}

// Open navigates to an explicit path, e.g. "open /users/7/edit".
func (a *App) Open(_ context.Context, path string) error {
	a.Navigate(path)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if !a.session.IsAuthenticated() {
		return ""
	}
	email, err := a.session.AccountEmail(a.ctx)
	if err != nil || email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", email)
}
