package guard

import "github.com/eagl/console/pkg/session"

const (
	// LoginPath is the login entry point.
	LoginPath = "/login"

	// LandingPath is the default authenticated landing page.
	LandingPath = "/app/painel"
)

// Kind is the access rule attached to a destination.
type Kind int

const (
	// Public destinations are reachable by anyone.
	Public Kind = iota

	// Authenticated destinations need an active session.
	Authenticated

	// Admin destinations need an active session at admin tier or above.
	Admin

	// SuperAdmin destinations need an active session at super admin tier.
	SuperAdmin
)

func (k Kind) String() string {
	switch k {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	case SuperAdmin:
		return "super_admin"
	default:
		return "unknown"
	}
}

// Tier returns the minimum tier the kind admits.
func (k Kind) Tier() session.Tier {
	switch k {
	case Public:
		return session.TierNone
	case Authenticated:
		return session.TierUser
	case Admin:
		return session.TierAdmin
	default:
		return session.TierSuperAdmin
	}
}

// Decision is the outcome of a guard check.
type Decision struct {
	Allow bool

	// Redirect is where to go instead when Allow is false.
	Redirect string

	// From is the originally requested path, set when the redirect goes to
	// the login entry point so the login page can send the user back.
	From string
}

// Denied reports whether the decision sends the caller to the login page.
func (d Decision) Denied() bool { return !d.Allow && d.Redirect == LoginPath }

// Downgraded reports whether the decision sends an authenticated caller to
// the landing page for lack of privilege.
func (d Decision) Downgraded() bool { return !d.Allow && d.Redirect == LandingPath }

// Check evaluates kind against the snapshot for a navigation to requested.
// Insufficient privilege is a silent downgrade to the landing page.
func Check(s session.Snapshot, kind Kind, requested string) Decision {
	if kind == Public {
		return Decision{Allow: true}
	}
	if !s.IsAuthenticated() {
		return Decision{Redirect: LoginPath, From: requested}
	}
	if !s.Tier().AtLeast(kind.Tier()) {
		return Decision{Redirect: LandingPath}
	}
	return Decision{Allow: true}
}
