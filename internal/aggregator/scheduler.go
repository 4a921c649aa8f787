package aggregator

import (
	"time"

	"github.com/quangdm-dev/socialnews-backend/internal/models"
)

// Scheduler decides when the aggregation pass for a freshly opened window
// runs. OnEvent schedules at most once per window (the append reporting
// size 1), so implementations need no per-key bookkeeping.
type Scheduler interface {
	Schedule(key models.AggregationKey, delay time.Duration, fn func())
}

// TimerScheduler runs the pass after the window delay on its own goroutine
type TimerScheduler struct{}

func (TimerScheduler) Schedule(_ models.AggregationKey, delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

// ImmediateScheduler runs the pass synchronously. The window degenerates to
// near zero and bursts will mostly not coalesce; useful for tests and for
// deployments that prefer instant delivery over coalescing.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(_ models.AggregationKey, _ time.Duration, fn func()) {
	fn()
}
