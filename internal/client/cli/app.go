package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/studyhub/studyhub-cli/internal/client/api"
	"github.com/studyhub/studyhub-cli/internal/client/cache"
	"github.com/studyhub/studyhub-cli/internal/client/config"
	"github.com/studyhub/studyhub-cli/internal/client/googleauth"
	"github.com/studyhub/studyhub-cli/internal/client/localdb"
	"github.com/studyhub/studyhub-cli/internal/client/repositories/sessionstore"
	"github.com/studyhub/studyhub-cli/internal/client/services"
	"github.com/studyhub/studyhub-cli/internal/client/session"
	"github.com/studyhub/studyhub-cli/internal/logging"
)

// App wires the services behind the REPL.
type App struct {
	config  *config.Config
	session *session.Manager
	tokens  session.TokenExpiry

	auth        services.AuthService
	documents   services.DocumentsService
	lectures    services.LecturesService
	collections services.CollectionsService
	qa          services.QAService
	saved       services.SavedService
	categories  services.CategoriesService
	contacts    services.ContactsService
	shares      services.SharesService

	reader *bufio.Reader
	log    logging.Logger
}

// NewApp builds the full client: local database, HTTP client, session
// manager, and the services on top of them, then restores any persisted
// session.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	store := sessionstore.NewSQLiteRepository(db)
	queryCache := cache.New()
	bus := session.NewBus()

	apiClient, err := api.New(c.ServerBaseURL, log)
	if err != nil {
		return nil, err
	}

	manager := session.NewManager(apiClient, store, queryCache, bus, log)
	apiClient.BindSession(manager, bus)
	manager.Initialize(ctx)

	flow := &lazyFlow{cfg: c, log: log}

	return &App{
		config:      c,
		session:     manager,
		tokens:      apiClient,
		auth:        services.NewAuthService(flow, apiClient, manager, log),
		documents:   services.NewDocumentsService(apiClient, queryCache),
		lectures:    services.NewLecturesService(apiClient, queryCache),
		collections: services.NewCollectionsService(apiClient, queryCache),
		qa:          services.NewQAService(apiClient, queryCache),
		saved:       services.NewSavedService(apiClient, queryCache),
		categories:  services.NewCategoriesService(apiClient, queryCache),
		contacts:    services.NewContactsService(apiClient),
		shares:      services.NewSharesService(apiClient, queryCache),
		reader:      bufio.NewReader(os.Stdin),
		log:         log,
	}, nil
}

// Run starts the background session refresher and the REPL. It returns
// when the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	refresher := session.NewAutoRefresher(a.session, a.tokens, a.config.RefreshInterval, a.config.RefreshTimeout, a.log)
	go refresher.Run(ctx)

	fmt.Println("StudyHub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil {
		return "(" + u.Email + ")"
	}
	return ""
}

// lazyFlow defers the OIDC discovery round-trip until the first sign-in,
// so starting the app never requires network access. It also reads the
// OAuth settings at first use, after any interactive prompt has filled
// them in.
type lazyFlow struct {
	cfg *config.Config
	log logging.Logger

	mu   sync.Mutex
	flow *googleauth.Flow
}

func (l *lazyFlow) SignIn(ctx context.Context) (string, error) {
	l.mu.Lock()
	if l.flow == nil {
		flow, err := googleauth.New(ctx, &googleauth.Config{
			ClientID:     l.cfg.GoogleClientID,
			ClientSecret: l.cfg.GoogleClientSecret,
			ListenAddr:   l.cfg.OAuthListenAddr,
		}, openBrowser, l.log)
		if err != nil {
			l.mu.Unlock()
			return "", err
		}
		l.flow = flow
	}
	flow := l.flow
	l.mu.Unlock()
	return flow.SignIn(ctx)
}

// openBrowser launches the system browser at url. The URL is printed too
// and a failed launch is not an error, since the user can always open it
// manually (e.g. when working over SSH).
func openBrowser(url string) error {
	fmt.Println("Opening browser for Google sign-in. If nothing happens, open this URL manually:")
	fmt.Println("  " + url)

	switch runtime.GOOS {
	case "darwin":
		_ = exec.Command("open", url).Start()
	case "windows":
		_ = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		_ = exec.Command("xdg-open", url).Start()
	}
	return nil
}
