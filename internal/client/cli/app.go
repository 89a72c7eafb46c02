// Package cli is the terminal surface of the Delta Mobile client: a small
// read-eval-print loop over the session, scan, messaging, labs, and update
// controllers.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/client/config"
	"github.com/nexabag/deltamobile/internal/client/services"
	"github.com/nexabag/deltamobile/internal/client/storage"
	"github.com/nexabag/deltamobile/internal/logging"

	_ "modernc.org/sqlite"
)

// Version is the bundled application version, compared against the
// published descriptor by the update checker. Overridden at build time:
//
//	go build -ldflags "-X github.com/nexabag/deltamobile/internal/client/cli.Version=26.2.0"
var Version = "26.1.0"

// View identifies the active screen. Command dispatch switches on it
// exhaustively; there is no string-tag branching.
type View int

const (
	ViewLogin View = iota
	ViewHome
	ViewInbox
	ViewChat
	ViewProfile
	ViewLabs
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewHome:
		return "home"
	case ViewInbox:
		return "inbox"
	case ViewChat:
		return "chat"
	case ViewProfile:
		return "profile"
	case ViewLabs:
		return "labs"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// App wires the controllers together and holds the per-screen view state.
// All user actions run on the REPL goroutine; only the startup update check
// runs concurrently, and the update service serializes that internally.
type App struct {
	config *config.Config
	log    logging.Logger

	apiClient api.Client
	db        *sql.DB

	sessions      *services.SessionService
	updates       *services.UpdateService
	conversations *services.ConversationService
	scanner       *services.ScanService
	labs          *services.LabsService

	reader *bufio.Reader
	out    io.Writer

	view  View
	inbox []inboxEntry
	chat  *services.Chat
	peer  services.Participant
}

// inboxEntry pairs a fetched conversation with its resolved counterpart for
// the numbered list the user picks from.
type inboxEntry struct {
	conversation api.Conversation
	other        services.Participant
}

// NewApp builds the application from configuration: local database, remote
// client, and the controllers on top of them.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(os.Stderr, slog.LevelInfo)

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	apiClient := api.NewHTTPClient(c.ForumBaseURL, c.VersionDescriptorURL, c.HTTPTimeout)

	return &App{
		config:        c,
		log:           log,
		apiClient:     apiClient,
		db:            db,
		sessions:      services.NewSessionService(apiClient, db, c.ForumBaseURL, log),
		updates:       services.NewUpdateService(apiClient, Version, log),
		conversations: services.NewConversationService(apiClient, log),
		scanner:       services.NewScanService(apiClient, db, log),
		labs:          services.NewLabsService(apiClient, log),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		view:          ViewLogin,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.State() == services.SessionLoggedIn
}

// View returns the active screen.
func (a *App) View() View { return a.view }

func (a *App) getStatus() string {
	s := ""
	if name := a.sessions.Current().Username; name != "" {
		s = name + " "
	}
	s += a.view.String()
	return fmt.Sprintf("(%s)", s)
}

// Run restores the session, kicks off the startup update check, and enters
// the REPL. The session restore completes before the first screen decision.
func (a *App) Run(ctx context.Context) {
	defer a.apiClient.Close()
	defer a.db.Close()

	if a.sessions.Restore(ctx) == services.SessionLoggedIn {
		a.view = ViewHome
	} else {
		a.view = ViewLogin
	}

	// startup check; the profile view triggers further checks, and the
	// update service discards whichever result is superseded
	go a.updates.Check(ctx)

	fmt.Fprintln(a.out, "Delta Mobile, a NexaBAG Studios app (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
