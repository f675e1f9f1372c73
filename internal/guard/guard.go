// Package guard decides per-navigation redirects: protected paths require a
// session, auth paths require the absence of one. The session store is the
// single authority, so server- and client-side evaluation cannot diverge.
package guard

import (
	"strings"

	"github.com/user-console/internal/session"
)

const (
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

var (
	protectedPrefixes = []string{"/dashboard"}
	anonymousPrefixes = []string{"/auth"}
)

// Decision is the outcome of evaluating one navigation. Redirect is empty
// when Allow is true.
type Decision struct {
	Allow    bool
	Redirect string
}

type Guard struct {
	session *session.Session
}

func New(sess *session.Session) *Guard {
	return &Guard{session: sess}
}

// Check evaluates a navigation against the current session.
func (g *Guard) Check(path string) Decision {
	return Decide(path, g.session.Authenticated())
}

// Decide is the pure gate: unauthenticated access to a protected path
// redirects to login, authenticated access to an auth-only path redirects to
// the dashboard, everything else passes.
func Decide(path string, authenticated bool) Decision {
	if !authenticated && hasPrefix(path, protectedPrefixes) {
		return Decision{Redirect: LoginPath}
	}
	if authenticated && hasPrefix(path, anonymousPrefixes) {
		return Decision{Redirect: DashboardPath}
	}
	return Decision{Allow: true}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
