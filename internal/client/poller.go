package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// defaultPollInterval is how often a tracked order is re-fetched.
const defaultPollInterval = 30 * time.Second

// Poller keeps a tracked order's status current by periodic re-fetch.
// An immediate fetch happens on Start, then one per interval tick for
// as long as now is before the order's estimated completion time (no
// estimate means poll indefinitely). Each successful fetch replaces the
// record wholesale. Failed polls are logged and swallowed: the last
// record stays on display and the schedule continues.
type Poller struct {
	client    *Client
	reference string
	onUpdate  func(*OrderRecord)
	log       zerolog.Logger

	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	latest   *OrderRecord
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewPoller(c *Client, reference string, onUpdate func(*OrderRecord), log zerolog.Logger) *Poller {
	return &Poller{
		client:    c,
		reference: reference,
		onUpdate:  onUpdate,
		log:       log,
		interval:  defaultPollInterval,
		now:       time.Now,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start fetches once immediately and then polls on the fixed interval
// until the estimated completion time elapses, Stop is called, or ctx
// is cancelled. It returns after scheduling; callers that need to block
// can wait on Done.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.fetch(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stop:
				return
			case <-ticker.C:
				if est := p.estimatedCompletion(); est != nil && !p.now().Before(*est) {
					return
				}
				p.fetch(ctx)
			}
		}
	}()
}

// Stop tears the poll loop down and waits for it to exit. Safe on
// every exit path and safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}

// Done is closed once the poll loop has fully exited, whether by
// cutoff, Stop or context cancellation.
func (p *Poller) Done() <-chan struct{} { return p.done }

// Latest returns the most recently fetched record, nil before the
// first successful fetch.
func (p *Poller) Latest() *OrderRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

func (p *Poller) estimatedCompletion() *time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == nil {
		return nil
	}
	return p.latest.EstimatedCompletionTime
}

func (p *Poller) fetch(ctx context.Context) {
	rec, err := p.client.OrderByReference(ctx, p.reference)
	if err != nil {
		// Best-effort refresh: never surfaced to the user.
		p.log.Warn().Err(err).Str("reference", p.reference).Msg("order poll failed")
		return
	}
	p.mu.Lock()
	p.latest = rec
	p.mu.Unlock()
	if p.onUpdate != nil {
		p.onUpdate(rec)
	}
}
