// Package consoleapi wraps the EAGL console endpoints with typed requests and
// responses.
//
// Every call is authenticated with the token currently held by a
// TokenSource, normally the session Manager, so a support token applied to
// the session is picked up by the next call. Create payloads are validated
// before anything is sent.
package consoleapi
