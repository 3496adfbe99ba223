// Package guard decides whether a console destination is reachable for the
// current session.
//
// Check is a pure function of a session.Snapshot: it never changes session
// state and keeps no memory of earlier decisions. Router adds the console
// route table on top, following aliases and guard redirects until a page is
// reached.
package guard
