// Package cli implements the eagl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/eagl/console/internal/app"
	"github.com/eagl/console/pkg/guard"
	"github.com/eagl/console/pkg/session"
	"github.com/spf13/cobra"
)

var (
	// ErrNotLoggedIn is returned when a command needs a session and none is active.
	ErrNotLoggedIn = errors.New("not logged in: run `eagl login` first")

	// ErrInsufficientRole is returned when the session's role can't reach the
	// console page a command belongs to.
	ErrInsufficientRole = errors.New("insufficient role")

	// ErrInvalidID is returned for identifiers that are not a single path segment.
	ErrInvalidID = errors.New("invalid id")
)

// Options carry the process boundary so tests can replace it.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// LoadConfig defaults to app.LoadConfig.
	LoadConfig func() (app.Config, error)

	// Prompt asks for credentials. Nil disables interactive login.
	Prompt Prompter
}

type runner struct {
	opts Options

	output    string
	apiURL    string
	store     string
	storePath string

	app *app.Application
}

// NewRootCommand builds the eagl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = app.LoadConfig
	}

	r := &runner{opts: opts}

	root := &cobra.Command{
		Use:   "eagl",
		Short: "EAGL maintenance console client",
		Long: `eagl signs in to the EAGL API and drives the maintenance console from a
terminal: tenant back-office, support mode, users, billing and more.

Configuration comes from the environment (and an optional .env file):
  EAGL_API_BASE_URL     API base address (default http://127.0.0.1:8000)
  EAGL_RUNTIME_CONFIG   URL or file of the runtime config document
  EAGL_STORE            memory, file or sqlite (default file)
  EAGL_MASTER_KEY_PATH  seal the stored session with this key`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch r.output {
			case formatText, formatJSON, formatYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", r.output)
			}
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if r.app == nil {
				return nil
			}
			return r.app.Close()
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVarP(&r.output, "output", "o", formatText, "output format: text, json or yaml")
	root.PersistentFlags().StringVar(&r.apiURL, "api-url", "", "API base address, overrides EAGL_API_BASE_URL")
	root.PersistentFlags().StringVar(&r.store, "store", "", "session store driver, overrides EAGL_STORE")
	root.PersistentFlags().StringVar(&r.storePath, "store-path", "", "session store location, overrides EAGL_STORE_PATH")

	root.AddCommand(
		r.loginCmd(),
		r.logoutCmd(),
		r.whoamiCmd(),
		r.refreshCmd(),
		r.supportCmd(),
		r.openCmd(),
		r.healthCmd(),
		r.configCmd(),
		r.versionCmd(),
		r.tenantsCmd(),
		r.plansCmd(),
		r.billingCmd(),
		r.ticketsCmd(),
		r.usersCmd(),
		r.logsCmd(),
		r.settingsCmd(),
		r.assetsCmd(),
		r.osCmd(),
	)
	return root
}

// Execute runs eagl with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var prompt Prompter
	if isInteractive() {
		prompt = huhPrompter{}
	}

	root := NewRootCommand(Options{Prompt: prompt})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// application wires the app on first use.
func (r *runner) application(ctx context.Context) (*app.Application, error) {
	if r.app != nil {
		return r.app, nil
	}

	cfg, err := r.opts.LoadConfig()
	if err != nil {
		return nil, err
	}
	if r.apiURL != "" {
		cfg.APIBaseURL = r.apiURL
	}
	if r.store != "" {
		cfg.Store = r.store
		if r.storePath == "" {
			cfg.StorePath = ""
		}
	}
	if r.storePath != "" {
		cfg.StorePath = r.storePath
	}
	if cfg.LogOutput == nil {
		cfg.LogOutput = r.opts.Err
	}
	cfg.Sanitize()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r.app = a
	return a, nil
}

// session restores and revalidates the persisted session.
func (r *runner) session(ctx context.Context) (*app.Application, session.Snapshot, error) {
	a, err := r.application(ctx)
	if err != nil {
		return nil, session.Snapshot{}, err
	}
	return a, a.Start(ctx), nil
}

// gate admits the command when the session can reach page in the console.
func (r *runner) gate(ctx context.Context, page string) (*app.Application, session.Snapshot, error) {
	a, snap, err := r.session(ctx)
	if err != nil {
		return nil, snap, err
	}

	res, err := a.Router.Resolve(snap, page)
	if err != nil {
		return nil, snap, err
	}

	switch {
	case res.Path == page:
		return a, snap, nil
	case res.Path == guard.LoginPath:
		return nil, snap, ErrNotLoggedIn
	default:
		return nil, snap, fmt.Errorf("%w: %s can't open %s", ErrInsufficientRole, snap.Tier(), page)
	}
}

// gateID gates the page prefix/id. id must be one path segment so it can't
// steer the navigation to another page.
func (r *runner) gateID(ctx context.Context, prefix, id string) (*app.Application, session.Snapshot, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, "/\\?#") {
		return nil, session.Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return r.gate(ctx, prefix+"/"+id)
}
