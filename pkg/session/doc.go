/*
Package session is the single source of truth for who is logged in to the
console and in what capacity.

A Manager owns one session slot: the current user, bearer token and the
support-mode flags a super admin gets while operating inside a tenant. It is
constructed once at startup and handed to everything that needs identity
(the route guard, API consumers, the CLI).

# Lifecycle

Startup is two-phase. Restore reads the persisted record synchronously and,
if one exists, exposes it optimistically in PhaseRestoring. Revalidate then
asks the API (GET /api/auth/me) whether the token is still good; failure
demotes the session to PhaseAnonymous:

	m := session.NewManager(session.NewAPIAuthenticator(client), store)
	done := m.Start(ctx)   // Restore now, Revalidate in the background
	_ = m.Snapshot()       // may be optimistic
	settled := <-done      // authoritative

# Contracts

Login reports success as a bool and never returns an error; on failure the
existing session is left exactly as it was. Refresh never returns an error
either: any failure to validate clears the session (fail-closed). Logout
always clears. Every committed non-empty session is written to Storage and
every transition to anonymous removes the record.

# Roles

Raw roles from the API are mapped onto capability tiers by NormalizeRole.
Authorization decisions compare tiers, never raw role strings.
*/
package session
