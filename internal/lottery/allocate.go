package lottery

import (
    "math/rand"
    "sync"

    "github.com/iliyamo/lecture-lottery/internal/model"
)

// Engine performs the capacity-bounded random selection for one
// session's pending applications.  The random source is injected so
// allocation runs are reproducible in tests; production wiring seeds
// it from the wall clock.
type Engine struct {
    mu  sync.Mutex // rand.Rand is not safe for concurrent use
    rnd *rand.Rand
}

// NewEngine returns an Engine drawing from the given source.
func NewEngine(src rand.Source) *Engine {
    return &Engine{rnd: rand.New(src)}
}

// Allocate partitions pending applications into winners and losers
// for a session with the given capacity.  When demand does not
// exceed capacity every application is confirmed and nothing is
// waitlisted, even if seats remain.  Otherwise a uniform random
// permutation of the pending set decides the order: the first
// capacity entries win, the rest are waitlisted.  Every applicant
// has equal probability of occupying any rank; submission order and
// identity play no part.
//
// The input slice is never mutated.  The shuffle operates on an
// in-memory copy so no I/O happens inside the critical section.
func (e *Engine) Allocate(capacity uint32, pending []model.Application) (confirmed, waitlisted []model.Application) {
    if len(pending) == 0 {
        return nil, nil
    }
    if uint32(len(pending)) <= capacity {
        confirmed = append(confirmed, pending...)
        return confirmed, nil
    }
    shuffled := append([]model.Application(nil), pending...)
    e.mu.Lock()
    // Fisher–Yates over the copy.
    for i := len(shuffled) - 1; i > 0; i-- {
        j := e.rnd.Intn(i + 1)
        shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
    }
    e.mu.Unlock()
    return shuffled[:capacity], shuffled[capacity:]
}
