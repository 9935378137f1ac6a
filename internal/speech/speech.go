package speech

import (
	"log"
	"sync"

	"shopassist/internal/config"
)

// Dispatcher serializes speech through a single worker and drops
// utterances submitted while one is being spoken.
//
// The drop-on-busy policy is deliberate: for a live camera feed it is
// better to lose an announcement than to build a backlog of stale ones.
// The requests channel is unbuffered, so Announce's non-blocking send
// succeeds only when the worker is parked at the receive, i.e. not
// speaking. Both announcement pipelines share one Dispatcher and race
// for that slot with no priority between them.
type Dispatcher struct {
	engine   Engine
	settings *config.Settings

	requests chan string
	done     chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewDispatcher wires the dispatcher to an engine. The current speech
// rate is read from settings before each synthesis, so rate changes
// apply to the next utterance.
func NewDispatcher(engine Engine, settings *config.Settings) *Dispatcher {
	return &Dispatcher{
		engine:   engine,
		settings: settings,
		requests: make(chan string),
		done:     make(chan struct{}),
	}
}

// Start launches the speech worker. Subsequent calls are no-ops.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		go d.worker()
	})
}

// Announce submits an utterance without blocking. It reports false when
// the utterance was dropped because a previous one is still being
// spoken (or the dispatcher is not running).
func (d *Dispatcher) Announce(text string) bool {
	select {
	case d.requests <- text:
		return true
	default:
		return false
	}
}

// Stop signals the worker to exit. An utterance already being spoken
// finishes; nothing further is accepted.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
	})
}

func (d *Dispatcher) worker() {
	for {
		select {
		case <-d.done:
			return
		case text := <-d.requests:
			if err := d.engine.Speak(text, d.settings.TTSSpeed()); err != nil {
				log.Printf("speech error: %v", err)
			}
		}
	}
}
