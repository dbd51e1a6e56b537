// Package access tracks the authorization state for the live calendar
// source. One Gate is constructed at startup and shared by reference;
// every routing decision in the repository reads it.
package access

import (
	"context"
	"sync"
)

type Status string

func (s Status) String() string {
	return string(s)
}

const (
	StatusUndetermined Status = "undetermined"
	StatusGranted      Status = "granted"
	StatusDenied       Status = "denied"
)

// Authorizer runs the user-facing consent prompt. It is invoked at most
// once per unresolved Gate; concurrent RequestAccess callers share the
// single in-flight prompt.
type Authorizer interface {
	RequestAccess(ctx context.Context) (bool, error)
}

// AuthorizerFunc adapts a function to the Authorizer interface.
type AuthorizerFunc func(ctx context.Context) (bool, error)

func (f AuthorizerFunc) RequestAccess(ctx context.Context) (bool, error) {
	return f(ctx)
}

type Gate struct {
	authorizer Authorizer

	mu       sync.Mutex
	status   Status
	inflight chan struct{}
	lastErr  error
}

// NewGate starts from the given status, typically StatusGranted when a
// stored credential is already usable and StatusUndetermined otherwise.
func NewGate(authorizer Authorizer, initial Status) *Gate {
	if initial == "" {
		initial = StatusUndetermined
	}
	return &Gate{
		authorizer: authorizer,
		status:     initial,
	}
}

// HasFullAccess reports the last known status. It never blocks and never
// prompts.
func (g *Gate) HasFullAccess() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status == StatusGranted
}

// Status returns the cached authorization status.
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// RequestAccess resolves the authorization status, prompting only while
// it is still undetermined. Once granted or denied the cached outcome is
// returned without re-prompting. A prompt failure leaves the status
// undetermined so a later call may try again.
func (g *Gate) RequestAccess(ctx context.Context) (bool, error) {
	g.mu.Lock()
	if g.status != StatusUndetermined {
		granted := g.status == StatusGranted
		g.mu.Unlock()
		return granted, nil
	}
	if ch := g.inflight; ch != nil {
		g.mu.Unlock()
		select {
		case <-ch:
			return g.outcome()
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	ch := make(chan struct{})
	g.inflight = ch
	g.mu.Unlock()

	granted, err := g.authorizer.RequestAccess(ctx)

	g.mu.Lock()
	if err == nil {
		if granted {
			g.status = StatusGranted
		} else {
			g.status = StatusDenied
		}
	}
	g.lastErr = err
	g.inflight = nil
	close(ch)
	g.mu.Unlock()
	return granted, err
}

func (g *Gate) outcome() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == StatusUndetermined {
		return false, g.lastErr
	}
	return g.status == StatusGranted, nil
}
