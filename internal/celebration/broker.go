package celebration

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"painel/internal/models"
)

// subscriberBuffer is how many bursts a slow subscriber may lag behind
// before bursts are dropped for it.
const subscriberBuffer = 32

// Broker starts animations and delivers their bursts to every subscriber.
type Broker struct {
	opts Options
	log  *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	closed     bool
	nextID     int
	subs       map[int]chan Burst
	animations map[*Animation]struct{}
	wg         sync.WaitGroup
}

// NewBroker creates a Broker. Close must be called to stop running
// animations.
func NewBroker(opts Options, log *zap.SugaredLogger) *Broker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Broker{
		opts:       opts,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
		subs:       make(map[int]chan Burst),
		animations: make(map[*Animation]struct{}),
	}
}

// Subscribe registers a listener. The returned channel is closed when the
// subscription is cancelled or the broker closes. Call cancel to leave.
func (b *Broker) Subscribe() (bursts <-chan Burst, cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Burst, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Celebrate starts an animation for category. The animation belongs to the
// broker, not to ctx, so it outlives the request that triggered it.
func (b *Broker) Celebrate(_ context.Context, category models.Category) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	b.log.Infow("Goal reached, starting celebration", "category", category, "subscribers", len(b.subs))

	b.wg.Add(1)
	anim := Start(b.ctx, category, b.opts, b.publish)
	b.animations[anim] = struct{}{}
	go func() {
		defer b.wg.Done()
		<-anim.Done()
		b.mu.Lock()
		delete(b.animations, anim)
		b.mu.Unlock()
	}()
}

// Active returns the number of running animations.
func (b *Broker) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.animations)
}

// Close stops every animation, waits for them to exit and closes all
// subscriber channels.
func (b *Broker) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *Broker) publish(burst Burst) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- burst:
		default:
			b.log.Debugw("dropping burst for slow subscriber", "subscriber", id, "category", burst.Category)
		}
	}
}
