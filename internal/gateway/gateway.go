// Package gateway wraps API calls with transparent session recovery: an
// unauthenticated call triggers one shared refresh and is replayed once.
package gateway

import (
	"context"
	"errors"

	"github.com/eshaffer321/studio-go/internal/refresh"
	"github.com/eshaffer321/studio-go/internal/types"
)

// EffectKind identifies a side effect the host application must apply
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectNavigate
)

// Effect describes what the host should do after a call
type Effect struct {
	Kind EffectKind
	Path string
}

// None is the empty effect
var None = Effect{}

// NavigateTo builds a navigation effect
func NavigateTo(path string) Effect {
	return Effect{Kind: EffectNavigate, Path: path}
}

// IsNavigate reports whether the host must navigate
func (e Effect) IsNavigate() bool {
	return e.Kind == EffectNavigate
}

// Doer issues one call attempt
type Doer interface {
	Do(ctx context.Context, call *types.Call, result interface{}) error
}

// Refresher renews the session. Its errors are expected to be classified
// with types.ErrNoRefreshCredential or types.ErrCredentialRejected where
// applicable.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Options configures a Gateway
type Options struct {
	Doer      Doer
	Refresher Refresher
	State     *refresh.State
	LoginPath string
	Logger    types.Logger

	// Excluded paths never trigger recovery. Defaults to the login,
	// register and refresh endpoints.
	Excluded []string

	// OnRejected runs once per refresh whose credential was rejected, from
	// the refresh itself, so it fires even when every waiting caller has
	// given up.
	OnRejected func()
}

// Gateway is the Session Gateway
type Gateway struct {
	doer      Doer
	refresher Refresher
	state     *refresh.State
	loginPath string
	excluded   map[string]bool
	logger     types.Logger
	onRejected func()
}

// New creates a gateway
func New(opts Options) *Gateway {
	if opts.State == nil {
		opts.State = refresh.NewState()
	}
	if opts.LoginPath == "" {
		opts.LoginPath = types.DefaultLoginPath
	}
	if opts.Excluded == nil {
		opts.Excluded = []string{types.LoginPath, types.RegisterPath, types.RefreshPath}
	}

	excluded := make(map[string]bool, len(opts.Excluded))
	for _, p := range opts.Excluded {
		excluded[p] = true
	}

	return &Gateway{
		doer:      opts.Doer,
		refresher: opts.Refresher,
		state:     opts.State,
		loginPath: opts.LoginPath,
		excluded:   excluded,
		logger:     opts.Logger,
		onRejected: opts.OnRejected,
	}
}

// State exposes the refresh state for diagnostics
func (g *Gateway) State() *refresh.State {
	return g.state
}

// Do issues call. On an authentication failure it joins or starts a refresh
// and, if that succeeds, replays the call exactly once and returns the
// replay's outcome. If the refresh fails the original failure is returned,
// along with a navigation effect when the refresh credential was rejected.
func (g *Gateway) Do(ctx context.Context, call *types.Call, result interface{}) (Effect, error) {
	err := g.doer.Do(ctx, call, result)
	if !g.recoverable(call, err) {
		return None, err
	}

	if g.logger != nil {
		g.logger.Debug("Unauthenticated call, refreshing session", "path", call.Path, "request_id", call.RequestID())
	}

	outcome := g.state.GetOrStart(ctx, g.refresh)
	call.MarkRefreshed()

	if outcome.Err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return None, ctxErr
		}
		return g.refreshFailed(call, outcome), err
	}

	return None, g.doer.Do(ctx, call, result)
}

// refresh runs inside the shared flight
func (g *Gateway) refresh(ctx context.Context) error {
	err := g.refresher.Refresh(ctx)
	if errors.Is(err, types.ErrCredentialRejected) && g.onRejected != nil {
		g.onRejected()
	}
	return err
}

func (g *Gateway) recoverable(call *types.Call, err error) bool {
	if err == nil || !errors.Is(err, types.ErrUnauthenticated) {
		return false
	}
	if g.excluded[call.Path] {
		return false
	}
	// a call is refreshed at most once
	return call.Refreshes() == 0
}

func (g *Gateway) refreshFailed(call *types.Call, outcome *refresh.Outcome) Effect {
	if !errors.Is(outcome.Err, types.ErrCredentialRejected) {
		if g.logger != nil {
			g.logger.Debug("Session not recoverable, no redirect", "path", call.Path, "error", outcome.Err)
		}
		return None
	}
	if call.Silent || !outcome.Claim() {
		return None
	}

	if g.logger != nil {
		g.logger.Info("Session rejected, redirecting to login", "path", call.Path, "login_path", g.loginPath)
	}
	return NavigateTo(g.loginPath)
}
