package studio

import (
	"context"
)

// DecisionKind is the outcome of an access check
type DecisionKind int

const (
	// ShowLoadingPlaceholder means bootstrap has not finished
	ShowLoadingPlaceholder DecisionKind = iota + 1
	// RedirectToLogin means nobody is signed in
	RedirectToLogin
	// RedirectToDefaultArea means the user's role does not match
	RedirectToDefaultArea
	// Render means the view may be shown
	Render
)

func (k DecisionKind) String() string {
	switch k {
	case ShowLoadingPlaceholder:
		return "show_loading_placeholder"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToDefaultArea:
		return "redirect_to_default_area"
	case Render:
		return "render"
	}
	return "unknown"
}

// Decision tells the host what to do with a navigation. Path is set for
// redirects.
type Decision struct {
	Kind DecisionKind
	Path string
}

// Guard decides per navigation what the current user may see
type Guard struct {
	loginPath   string
	defaultPath string
}

// NewGuard creates a guard redirecting to loginPath and defaultPath
func NewGuard(loginPath, defaultPath string) *Guard {
	return &Guard{loginPath: loginPath, defaultPath: defaultPath}
}

// Authorize is a pure function of the session and the required role. A
// role mismatch redirects to the single default area for every role; it is
// never reported as an error.
func (g *Guard) Authorize(s Session, required Role) Decision {
	switch {
	case s.Loading:
		return Decision{Kind: ShowLoadingPlaceholder}
	case s.User == nil:
		return Decision{Kind: RedirectToLogin, Path: g.loginPath}
	case required != NoRoleRequired && s.User.Role != required:
		return Decision{Kind: RedirectToDefaultArea, Path: g.defaultPath}
	}
	return Decision{Kind: Render}
}

// SessionSource publishes session changes
type SessionSource interface {
	Subscribe() (<-chan Session, func())
}

// Watch calls fn with a fresh decision for the current session and again on
// every session change, until ctx is done.
func (g *Guard) Watch(ctx context.Context, source SessionSource, required Role, fn func(Decision)) {
	updates, unsubscribe := source.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-updates:
			if !ok {
				return
			}
			fn(g.Authorize(s, required))
		}
	}
}
