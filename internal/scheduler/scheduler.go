// Package scheduler picks which catalog entry is shown next and drives the
// timed advance of the slideshow.
package scheduler

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matjam/smoothshow/internal/catalog"
)

type State int

const (
	Idle State = iota
	Showing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Showing:
		return "showing"
	default:
		return "unknown"
	}
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Clock schedules one-shot callbacks. Callbacks must be delivered on the
// goroutine that owns the Scheduler.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Renderer shows a single image.
type Renderer interface {
	Render(path string) error
}

// Scheduler owns the slideshow cursor. None of its methods are safe for
// concurrent use; the event loop serialises every call.
type Scheduler struct {
	images   catalog.Catalog
	delay    time.Duration
	renderer Renderer
	clock    Clock
	rng      *rand.Rand

	state State
	index int
	timer Timer
	// gen identifies the armed timer, so a fire queued before a Stop or a
	// manual Advance is dropped.
	gen uint64

	// held is set while a modal prompt is open. A timer firing in that window
	// is recorded in due and delivered by Release.
	held bool
	due  bool
}

type Option func(*Scheduler)

// WithRand replaces the random source used to pick images.
func WithRand(r *rand.Rand) Option {
	return func(s *Scheduler) {
		s.rng = r
	}
}

func New(images catalog.Catalog, delay time.Duration, renderer Renderer, clock Clock, opts ...Option) *Scheduler {
	s := &Scheduler{
		images:   images,
		delay:    delay,
		renderer: renderer,
		clock:    clock,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) State() State {
	return s.state
}

func (s *Scheduler) Index() int {
	return s.index
}

// Current returns the path of the image last picked.
func (s *Scheduler) Current() string {
	if len(s.images) == 0 {
		return ""
	}
	return s.images[s.index]
}

// Start shows the first image and arms the timer. It does nothing unless the
// scheduler is idle.
func (s *Scheduler) Start() {
	if s.state != Idle || len(s.images) == 0 {
		return
	}
	log.Debugf("Starting slideshow: %d images, %v delay", len(s.images), s.delay)

	s.state = Showing
	s.Advance()
}

// Advance picks a new image uniformly at random, shows it and re-arms the
// timer. The previous pick has no influence, so repeats happen.
func (s *Scheduler) Advance() {
	if s.state != Showing {
		return
	}
	s.stopTimer()

	s.index = s.rng.IntN(len(s.images))
	path := s.images[s.index]
	log.Debugf("Next image: %s", path)

	if err := s.renderer.Render(path); err != nil {
		log.Errorf("Failed to show %s: %v", path, err)
	}

	gen := s.gen
	s.timer = s.clock.AfterFunc(s.delay, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	if gen != s.gen || s.state != Showing {
		return
	}
	s.timer = nil
	if s.held {
		s.due = true
		return
	}
	s.Advance()
}

// Hold defers timer fires until Release.
func (s *Scheduler) Hold() {
	s.held = true
}

// Release ends a Hold and delivers a fire that came due in the meantime.
func (s *Scheduler) Release() {
	s.held = false
	if s.due {
		s.due = false
		s.Advance()
	}
}

// Stop cancels the pending timer and returns to Idle.
func (s *Scheduler) Stop() {
	s.stopTimer()
	s.state = Idle
	s.held = false
	s.due = false
}

func (s *Scheduler) stopTimer() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
