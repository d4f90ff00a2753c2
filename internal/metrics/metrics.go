package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Store aggregates the counters the server exposes on /metrics.
type Store struct {
	Requests        Counter
	OrdersPlaced    Counter
	OrdersShipped   Counter
	StockDeductions Counter
}

func (s *Store) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"requests":         s.Requests.Load(),
		"orders_placed":    s.OrdersPlaced.Load(),
		"orders_shipped":   s.OrdersShipped.Load(),
		"stock_deductions": s.StockDeductions.Load(),
	}
}
