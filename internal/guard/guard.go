// Package guard decides, per navigation, whether a route renders or redirects.
// Evaluate is a pure function of the route flags and the signed-in user, so it
// can be tested over the full boolean table without any UI or network.
package guard

import (
	"context"
	"fmt"

	"github.com/higuga/higuga/internal/model"
)

// Route paths with special handling for signed-in visitors.
const (
	PathLogin    = "/login"
	PathRegister = "/register"
)

// Route describes the screen being navigated to. Private routes require a
// session, admin routes additionally require the admin flag.
type Route struct {
	Path    string
	Private bool
	Admin   bool
}

// Decision is the outcome of a guard evaluation.
type Decision int

const (
	// Render shows the target screen.
	Render Decision = iota
	// RedirectHome sends the visitor to the default route.
	RedirectHome
	// RedirectLogin sends the visitor to the login screen.
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectHome:
		return "redirect-home"
	case RedirectLogin:
		return "redirect-login"
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// Evaluate applies the guard rules in order: non-admins never see admin
// routes; otherwise a route renders when its privacy matches the presence of
// a user; a signed-in visitor is bounced off the auth screens; a guest on a
// private route goes home.
func Evaluate(route Route, user *model.User) Decision {
	if route.Admin && user != nil && !user.IsAdmin {
		return RedirectHome
	}
	if (user != nil) == route.Private {
		return Render
	}
	if user != nil {
		if route.Path == PathLogin || route.Path == PathRegister {
			return RedirectHome
		}
		return Render
	}
	return RedirectHome
}

// SessionChecker is the slice of the session store the guard needs: the
// cached user, the server-side session check and the forced sign-out.
type SessionChecker interface {
	User() *model.User
	SignOut(ctx context.Context) error
}

// TokenValidator re-validates the session against the server and reports the
// server's view of the admin flag.
type TokenValidator interface {
	CheckToken(ctx context.Context) (isAdmin bool, err error)
}

// CheckSession evaluates the route and, when a user is cached, re-validates
// the session against the server. A failed check, or a server admin flag that
// disagrees with the cached one, forces a sign-out and sends the visitor to
// the login screen.
func CheckSession(ctx context.Context, route Route, sess SessionChecker, validator TokenValidator) Decision {
	user := sess.User()
	decision := Evaluate(route, user)
	if user == nil {
		return decision
	}

	isAdmin, err := validator.CheckToken(ctx)
	if err != nil || isAdmin != user.IsAdmin {
		_ = sess.SignOut(ctx)
		return RedirectLogin
	}
	return decision
}
