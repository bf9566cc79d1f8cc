// Package refresh holds the single-flight state shared by every caller that
// needs a renewed session.
package refresh

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

const flightKey = "session-refresh"

// Func performs one refresh round trip
type Func func(ctx context.Context) error

// Outcome is the result observed by every caller that joined one refresh
type Outcome struct {
	Err error

	claimed atomic.Bool
}

// Claim returns true for exactly one caller of a given outcome. It is used to
// emit a side effect once per refresh no matter how many callers shared it.
func (o *Outcome) Claim() bool {
	return o.claimed.CompareAndSwap(false, true)
}

// State guarantees at most one refresh in flight. Callers arriving while a
// refresh runs wait for that refresh instead of starting another.
type State struct {
	group    singleflight.Group
	inFlight atomic.Bool
	started  atomic.Int64
}

// NewState creates an idle refresh state
func NewState() *State {
	return &State{}
}

// GetOrStart joins the in-flight refresh or starts fn. The refresh runs to
// completion even if the caller that started it gives up; a caller whose ctx
// ends stops waiting and gets the context error.
func (s *State) GetOrStart(ctx context.Context, fn Func) *Outcome {
	detached := context.WithoutCancel(ctx)

	ch := s.group.DoChan(flightKey, func() (interface{}, error) {
		s.inFlight.Store(true)
		defer s.inFlight.Store(false)
		s.started.Add(1)

		return &Outcome{Err: run(detached, fn)}, nil
	})

	select {
	case <-ctx.Done():
		return &Outcome{Err: ctx.Err()}
	case res := <-ch:
		return res.Val.(*Outcome)
	}
}

// InFlight reports whether a refresh is currently running
func (s *State) InFlight() bool {
	return s.inFlight.Load()
}

// Started returns how many refresh round trips this state has started
func (s *State) Started() int64 {
	return s.started.Load()
}

// run converts a panicking refresh into an error so the flight always settles
func run(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh panicked: %v", r)
		}
	}()
	return fn(ctx)
}
