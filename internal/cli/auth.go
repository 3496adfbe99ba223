package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eagl/console/pkg/guard"
	"github.com/eagl/console/pkg/jwtx"
	"github.com/eagl/console/pkg/session"
	"github.com/spf13/cobra"
)

// expiryLeeway absorbs clock skew between this host and the API.
const expiryLeeway = 30 * time.Second

type identity struct {
	ID                   string     `json:"id" yaml:"id"`
	Name                 string     `json:"name" yaml:"name"`
	Email                string     `json:"email" yaml:"email"`
	Role                 string     `json:"role" yaml:"role"`
	Tier                 string     `json:"tier" yaml:"tier"`
	TenantID             string     `json:"tenantId,omitempty" yaml:"tenantId,omitempty"`
	Phase                string     `json:"phase" yaml:"phase"`
	SupportMode          bool       `json:"supportMode" yaml:"supportMode"`
	ImpersonatedTenantID string     `json:"impersonatedTenantId,omitempty" yaml:"impersonatedTenantId,omitempty"`
	ExpiresAt            *time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	Expired              bool       `json:"expired,omitempty" yaml:"expired,omitempty"`

	left time.Duration
}

func identityOf(s session.Snapshot) identity {
	id := identity{
		ID:                   s.User.ID,
		Name:                 s.User.Name,
		Email:                s.User.Email,
		Role:                 string(s.User.Role),
		Tier:                 s.Tier().String(),
		TenantID:             s.User.TenantID,
		Phase:                s.Phase.String(),
		SupportMode:          s.SupportMode,
		ImpersonatedTenantID: s.ImpersonatedTenantID,
	}
	claims, err := jwtx.Inspect(s.Token)
	if err != nil {
		return id
	}
	now := time.Now()
	if left, ok := claims.ExpiresIn(now); ok {
		exp := claims.ExpiresAt.Time
		id.ExpiresAt = &exp
		id.left = left.Round(time.Second)
		id.Expired = errors.Is(claims.ValidateExpiryWithLeeway(now, expiryLeeway), jwtx.ErrExpired)
	}
	return id
}

func (r *runner) writeIdentity(w io.Writer, s session.Snapshot) error {
	id := identityOf(s)
	return r.render(w, id, func(w io.Writer) error {
		if s.SupportMode {
			if _, err := fmt.Fprintln(w, supportBanner(s.ImpersonatedTenantID)); err != nil {
				return err
			}
		}

		expires := ""
		if id.ExpiresAt != nil {
			when := id.ExpiresAt.Local().Format(time.RFC3339)
			if id.Expired {
				expires = when + " (expired)"
			} else {
				expires = fmt.Sprintf("%s (in %s)", when, max(id.left, 0))
			}
		}

		return writeFields(w, []field{
			{"User", fmt.Sprintf("%s <%s>", id.Name, id.Email)},
			{"ID", id.ID},
			{"Role", fmt.Sprintf("%s (%s)", id.Role, id.Tier)},
			{"Tenant", id.TenantID},
			{"Session", id.Phase},
			{"Expires", expires},
		})
	})
}

func (r *runner) loginCmd() *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with e-mail and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if email == "" || password == "" {
				if r.opts.Prompt == nil {
					return errors.New("--email and a password are required when not running interactively")
				}
				var err error
				if email, password, err = r.opts.Prompt.Credentials(email); err != nil {
					return err
				}
			}

			a, err := r.application(ctx)
			if err != nil {
				return err
			}
			if !a.Session.Login(ctx, email, password) {
				return errors.New("login failed: check your e-mail and password")
			}

			return r.writeIdentity(cmd.OutOrStdout(), a.Session.Snapshot())
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&password, "password", "", "account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func (r *runner) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.application(cmd.Context())
			if err != nil {
				return err
			}
			a.Session.Logout()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return err
		},
	}
}

func (r *runner) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, snap, err := r.session(cmd.Context())
			if err != nil {
				return err
			}
			if !snap.IsAuthenticated() {
				return ErrNotLoggedIn
			}
			return r.writeIdentity(cmd.OutOrStdout(), snap)
		},
	}
}

func (r *runner) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Revalidate the stored session against the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, snap, err := r.session(cmd.Context())
			if err != nil {
				return err
			}
			if !snap.IsAuthenticated() {
				return ErrNotLoggedIn
			}

			// Ask the API again even though Start just revalidated.
			snap = a.Session.Refresh(cmd.Context())
			if !snap.IsAuthenticated() {
				return errors.New("session is no longer valid and was cleared")
			}
			return r.writeIdentity(cmd.OutOrStdout(), snap)
		},
	}
}

func (r *runner) supportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "support <tenant-id>",
		Short: "Enter support mode for a tenant",
		Long: `support impersonates a tenant: the API issues a support token scoped to
the tenant and the session switches to it. If the API rejects the token the
session is cleared and you need to log in again, unless soft refresh is on
and the API was unreachable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tenantID := args[0]

			a, _, err := r.gateID(ctx, "/admin/tenants", tenantID)
			if err != nil {
				return err
			}

			imp, err := a.Console.ImpersonateTenant(ctx, tenantID)
			if err != nil {
				return fmt.Errorf("impersonate tenant: %w", err)
			}

			snap := a.Session.ApplySupportToken(ctx, imp.Token, tenantID)
			switch {
			case snap.SupportMode:
				return r.writeIdentity(cmd.OutOrStdout(), snap)
			case snap.IsAuthenticated():
				return errors.New("could not reach the API to confirm the support token; the session is unchanged")
			default:
				return errors.New("support token could not be confirmed; the session was cleared")
			}
		},
	}
}

type navigation struct {
	Requested string            `json:"requested" yaml:"requested"`
	Path      string            `json:"path" yaml:"path"`
	Page      string            `json:"page" yaml:"page"`
	Access    string            `json:"access" yaml:"access"`
	Params    map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	From      string            `json:"from,omitempty" yaml:"from,omitempty"`
	Hops      []string          `json:"hops" yaml:"hops"`
}

func (r *runner) openCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Resolve a console path for the current session",
		Long: `open shows where a console navigation ends up for the current session,
following aliases and guard redirects. A guarded page opened without a session
lands on /login and remembers where it was heading.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, snap, err := r.session(cmd.Context())
			if err != nil {
				return err
			}

			res, err := a.Router.ResolveFrom(snap, args[0], from)
			if err != nil {
				return err
			}

			nav := navigation{
				Requested: args[0],
				Path:      res.Path,
				Page:      res.Route.Page,
				Access:    res.Route.Kind.String(),
				Params:    res.Params,
				From:      res.From,
				Hops:      res.Hops,
			}
			return r.render(cmd.OutOrStdout(), nav, func(w io.Writer) error {
				return writeFields(w, []field{
					{"Page", nav.Page},
					{"Path", nav.Path},
					{"Access", nav.Access},
					{"Via", strings.Join(nav.Hops, " -> ")},
					{"Return to", nav.From},
				})
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "origin path preserved by an earlier redirect to "+guard.LoginPath)
	return cmd
}
