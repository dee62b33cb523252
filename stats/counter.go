// Package stats tracks element throughput of a run.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

type Counter struct {
	start   time.Time
	nodes   int64
	ways    int64
	tags    int64
	skipped int64
}

func NewCounter() *Counter {
	return &Counter{start: time.Now()}
}

func (c *Counter) AddNode() { atomic.AddInt64(&c.nodes, 1) }
func (c *Counter) AddWay() { atomic.AddInt64(&c.ways, 1) }
func (c *Counter) AddTags(n int) { atomic.AddInt64(&c.tags, int64(n)) }
func (c *Counter) AddSkipped() { atomic.AddInt64(&c.skipped, 1) }

func (c *Counter) Nodes() int64 { return atomic.LoadInt64(&c.nodes) }
func (c *Counter) Ways() int64 { return atomic.LoadInt64(&c.ways) }
func (c *Counter) Tags() int64 { return atomic.LoadInt64(&c.tags) }
func (c *Counter) Skipped() int64 { return atomic.LoadInt64(&c.skipped) }

// Elements returns the number of shaped top-level elements.
func (c *Counter) Elements() int64 {
	return c.Nodes() + c.Ways()
}

// Rps returns shaped elements per second since the counter started.
func (c *Counter) Rps() float64 {
	elapsed := time.Since(c.start).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(c.Elements()) / elapsed
}

func (c *Counter) String() string {
	s := fmt.Sprintf("%d nodes, %d ways, %d tags (%.0f elements/s)",
		c.Nodes(), c.Ways(), c.Tags(), c.Rps())
	if skipped := c.Skipped(); skipped > 0 {
		s += fmt.Sprintf(", %d skipped", skipped)
	}
	return s
}
