// Package pipeline holds the per-screen state owners. Each pipeline is
// a single goroutine consuming discrete intents in arrival order and
// publishing an immutable snapshot after every transition. One backend
// call is in flight per pipeline at a time; a mutation intent arriving
// while another is being handled waits in the channel behind it.
package pipeline

// Phase is the coarse screen state: Idle until the first intent,
// Loading around a fetch, Ready in between, Saving/Deleting while a
// mutation is in flight.
type Phase string

func (p Phase) String() string {
	return string(p)
}

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhaseReady    Phase = "ready"
	PhaseSaving   Phase = "saving"
	PhaseDeleting Phase = "deleting"
)

const intentBuffer = 16
