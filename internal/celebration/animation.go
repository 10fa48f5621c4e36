// Package celebration plays the goal-reached particle animation as a
// cancellable scheduled task and fans its bursts out to subscribers.
package celebration

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"painel/internal/models"
)

// Defaults for the animation shape.
const (
	DefaultInterval = 250 * time.Millisecond
	DefaultDuration = 3 * time.Second
	MaxParticles    = 50
	StartVelocity   = 30
	Spread          = 360
	Ticks           = 60
)

// Origin is a normalised emission point: 0,0 is the top-left of the view.
type Origin struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Burst is one frame of the animation.
type Burst struct {
	Category      models.Category `json:"category"`
	Sequence      int             `json:"sequence"`
	ParticleCount int             `json:"particle_count"`
	Origins       []Origin        `json:"origins"`
	StartVelocity int             `json:"start_velocity"`
	Spread        int             `json:"spread"`
	Ticks         int             `json:"ticks"`
}

// Options tunes an animation. Zero values fall back to the defaults.
type Options struct {
	Interval time.Duration
	Duration time.Duration
	// Rand returns a number in [0, 1). Defaults to math/rand/v2.
	Rand func() float64
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Rand == nil {
		o.Rand = rand.Float64
	}
	return o
}

// Animation is a running celebration. It ends on its own once the duration
// elapses, or earlier through Stop or its context.
type Animation struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start begins an animation for category, calling emit once per interval
// until the duration elapses. emit runs on the animation's goroutine.
func Start(ctx context.Context, category models.Category, opts Options, emit func(Burst)) *Animation {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	a := &Animation{cancel: cancel, done: make(chan struct{})}

	go a.run(ctx, category, opts, emit)
	return a
}

// Stop cancels the animation and waits for its goroutine to exit.
// It is safe to call more than once.
func (a *Animation) Stop() {
	a.once.Do(a.cancel)
	<-a.done
}

// Done is closed when the animation has finished.
func (a *Animation) Done() <-chan struct{} {
	return a.done
}

func (a *Animation) run(ctx context.Context, category models.Category, opts Options, emit func(Burst)) {
	defer close(a.done)
	defer a.once.Do(a.cancel)

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	end := time.Now().Add(opts.Duration)
	for seq := 1; ; seq++ {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			left := end.Sub(now)
			if left <= 0 {
				return
			}
			emit(newBurst(category, seq, left, opts))
		}
	}
}

func newBurst(category models.Category, seq int, left time.Duration, opts Options) Burst {
	ratio := float64(left) / float64(opts.Duration)
	return Burst{
		Category:      category,
		Sequence:      seq,
		ParticleCount: int(MaxParticles * ratio),
		Origins: []Origin{
			{X: between(opts.Rand, 0.1, 0.3), Y: opts.Rand() - 0.2},
			{X: between(opts.Rand, 0.7, 0.9), Y: opts.Rand() - 0.2},
		},
		StartVelocity: StartVelocity,
		Spread:        Spread,
		Ticks:         Ticks,
	}
}

func between(r func() float64, lo, hi float64) float64 {
	return lo + r()*(hi-lo)
}
