package pipeline

import (
	"context"
	"sync"

	"github.com/caluindar/caluindar/internal/access"
)

// RequestTapped triggers the access prompt from the settings screen.
// Once the gate has resolved, later taps re-read the cached outcome.
type RequestTapped struct{}

type SettingsSnapshot struct {
	Phase   Phase
	Status  access.Status
	Granted bool
	Err     error
}

type Settings struct {
	gate *access.Gate

	intents chan any
	updates chan SettingsSnapshot
	quit    chan struct{}
	done    chan struct{}

	mu   sync.Mutex
	snap SettingsSnapshot
}

func NewSettings(gate *access.Gate) *Settings {
	s := &Settings{
		gate:    gate,
		intents: make(chan any, intentBuffer),
		updates: make(chan SettingsSnapshot, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.snap = SettingsSnapshot{
		Phase:   PhaseReady,
		Status:  gate.Status(),
		Granted: gate.HasFullAccess(),
	}
	go s.run()
	return s
}

func (s *Settings) Send(intent any) {
	select {
	case <-s.quit:
	case s.intents <- intent:
	}
}

func (s *Settings) Snapshot() SettingsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *Settings) Updates() <-chan SettingsSnapshot {
	return s.updates
}

func (s *Settings) Close() {
	close(s.quit)
	<-s.done
}

func (s *Settings) run() {
	defer close(s.done)
	ctx := context.Background()
	for {
		select {
		case <-s.quit:
			return
		case intent := <-s.intents:
			switch intent.(type) {
			case Appear:
				snap := s.Snapshot()
				snap.Status = s.gate.Status()
				snap.Granted = s.gate.HasFullAccess()
				s.publish(snap)
			case RequestTapped:
				s.request(ctx)
			}
		}
	}
}

func (s *Settings) request(ctx context.Context) {
	snap := s.Snapshot()
	snap.Phase = PhaseLoading
	snap.Err = nil
	s.publish(snap)

	granted, err := s.gate.RequestAccess(ctx)

	snap.Phase = PhaseReady
	snap.Status = s.gate.Status()
	snap.Granted = granted
	snap.Err = err
	s.publish(snap)
}

func (s *Settings) publish(snap SettingsSnapshot) {
	select {
	case <-s.quit:
		return
	default:
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	select {
	case s.updates <- snap:
	default:
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- snap:
		default:
		}
	}
}
