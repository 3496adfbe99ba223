package session

import "strings"

// Role is the raw role string returned by the API.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"

	// RoleLegacyADM is the pre-tier name for platform administrators.
	RoleLegacyADM Role = "ADM"
)

// Tier is a capability level. Tiers are ordered: a higher tier can do
// everything a lower one can.
type Tier int

const (
	TierNone Tier = iota
	TierUser
	TierAdmin
	TierSuperAdmin
)

func (t Tier) String() string {
	switch t {
	case TierUser:
		return "user"
	case TierAdmin:
		return "admin"
	case TierSuperAdmin:
		return "super_admin"
	default:
		return "none"
	}
}

// AtLeast reports whether t grants the capabilities of min.
func (t Tier) AtLeast(min Tier) bool { return t >= min }

// NormalizeRole maps a raw role, aliases included, onto a Tier. Matching is
// case-insensitive. Unknown roles get the least privileged tier.
func NormalizeRole(r Role) Tier {
	switch strings.ToLower(strings.TrimSpace(string(r))) {
	case "super_admin", "superadmin", "adm":
		return TierSuperAdmin
	case "admin":
		return TierAdmin
	default:
		return TierUser
	}
}

// User is the identity returned by the API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	// TenantID is empty for platform-level administrators.
	TenantID string `json:"tenantId,omitempty"`
}

// Tier is NormalizeRole applied to the user's role.
func (u User) Tier() Tier { return NormalizeRole(u.Role) }

// Phase is the state machine position of a session.
type Phase int

const (
	PhaseAnonymous Phase = iota
	// PhaseRestoring is an optimistic session read from storage that the API
	// has not confirmed yet.
	PhaseRestoring
	// PhaseAuthenticating means a login is in flight and no session exists.
	PhaseAuthenticating
	PhaseAuthenticated
	PhaseSupportMode
)

func (p Phase) String() string {
	switch p {
	case PhaseRestoring:
		return "restoring"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseSupportMode:
		return "support_mode"
	default:
		return "anonymous"
	}
}

// Snapshot is an immutable copy of the session at one instant.
type Snapshot struct {
	User                 *User
	Token                string
	SupportMode          bool
	ImpersonatedTenantID string
	Phase                Phase
}

// IsAuthenticated holds iff both a user and a token are present.
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// Tier returns TierNone for anonymous sessions.
func (s Snapshot) Tier() Tier {
	if !s.IsAuthenticated() {
		return TierNone
	}
	return s.User.Tier()
}
