package usecase

import (
	"sync"
	"time"
)

// callPacer is a minimum-inter-call-interval gate for the external scorer.
// After each call completes the caller records the gap that must elapse
// before the next one; Wait blocks until that moment. Cache hits never
// touch the pacer, so they neither wait nor push the window out.
type callPacer struct {
	mu          sync.Mutex
	nextAllowed time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func newCallPacer() *callPacer {
	return &callPacer{now: time.Now, sleep: time.Sleep}
}

func (p *callPacer) Wait() {
	p.mu.Lock()
	d := p.nextAllowed.Sub(p.now())
	p.mu.Unlock()

	if d > 0 {
		p.sleep(d)
	}
}

func (p *callPacer) Record(gap time.Duration) {
	p.mu.Lock()
	p.nextAllowed = p.now().Add(gap)
	p.mu.Unlock()
}
