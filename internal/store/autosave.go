package store

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kerem6790/financeX/internal/engine"
)

// Autosaver flushes the serialized state to the store after mutations,
// debounced so bursts of edits collapse into one write. The snapshot is
// captured synchronously in the observer (on the mutating goroutine), so
// the background flusher never reads the context itself.
type Autosaver struct {
	st       *Store
	log      *logrus.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending []byte

	dirty chan struct{}
	stop  chan struct{}
	done  chan struct{}
}

// NewAutosaver wires an autosaver to a derivation context. Call Start to
// begin flushing and Stop to flush any pending write and shut down.
func NewAutosaver(ctx *engine.Context, st *Store, log *logrus.Logger, debounce time.Duration) *Autosaver {
	if debounce <= 0 {
		debounce = 400 * time.Millisecond
	}
	a := &Autosaver{
		st:       st,
		log:      log,
		debounce: debounce,
		dirty:    make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	ctx.Subscribe(func(engine.Event) {
		data, err := ctx.MarshalState()
		if err != nil {
			log.WithError(err).Warn("autosave: marshal failed")
			return
		}
		a.mu.Lock()
		a.pending = data
		a.mu.Unlock()

		select {
		case a.dirty <- struct{}{}:
		default:
		}
	})

	return a
}

// Start launches the background flusher.
func (a *Autosaver) Start() {
	go a.run()
}

// Stop flushes any pending state and waits for the flusher to exit.
func (a *Autosaver) Stop() {
	close(a.stop)
	<-a.done
}

func (a *Autosaver) run() {
	defer close(a.done)

	for {
		select {
		case <-a.stop:
			a.flush()
			return
		case <-a.dirty:
			timer := time.NewTimer(a.debounce)
		settle:
			for {
				select {
				case <-a.dirty:
					// keep coalescing while edits arrive
				case <-timer.C:
					break settle
				case <-a.stop:
					timer.Stop()
					a.flush()
					return
				}
			}
			a.flush()
		}
	}
}

func (a *Autosaver) flush() {
	a.mu.Lock()
	data := a.pending
	a.pending = nil
	a.mu.Unlock()

	if data == nil {
		return
	}
	if err := a.st.SaveState(data); err != nil {
		a.log.WithError(err).Error("autosave: write failed")
		return
	}
	a.log.WithField("bytes", len(data)).Debug("autosave: state flushed")
}
