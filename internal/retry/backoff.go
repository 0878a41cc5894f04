package retry

import (
	"math/rand"
	"time"

	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// storeJitter spreads ping retries by up to 10% either way.
const storeJitter = 0.1

// Backoff is the wait schedule between store pings. The delay doubles from
// Initial and stops growing at Max; zero Max means no ceiling.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration

	// Attempts counts pings after the first one. Negative means no limit.
	Attempts int

	// Jitter is the largest fraction added to or taken from each delay.
	Jitter float64
	// Rand yields values in [0,1). rand.Float64 when nil.
	Rand func() float64
}

// StoreBackoff returns the schedule used while opening a store.
func StoreBackoff() *Backoff {
	return &Backoff{
		Initial:  retailsql.DefaultRetryInitialDelay,
		Max:      retailsql.DefaultRetryMaxDelay,
		Attempts: retailsql.DefaultRetryMaxAttempts,
		Jitter:   storeJitter,
	}
}

// NextDelay returns the wait before retry number attempt, counted from zero.
func (b *Backoff) NextDelay(attempt int) time.Duration {
	d := b.Initial
	for i := 0; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			d = b.Max
			break
		}
	}
	if b.Jitter <= 0 {
		return d
	}
	r := b.Rand
	if r == nil {
		r = rand.Float64
	}
	return d + time.Duration(float64(d)*b.Jitter*(2*r()-1))
}

func (b *Backoff) MaxAttempts() int {
	return b.Attempts
}
