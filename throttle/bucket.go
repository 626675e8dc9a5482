package throttle

import (
	"sync"
	"time"
)

// Bucket is one client's token balance within a group.
type Bucket[K comparable] struct {
	mu          sync.Mutex
	tokens      int
	lastCheck   time.Time
	parentGroup *BucketGroup[K]
}

// refill credits whole elapsed periods. Caller holds mu.
func (b *Bucket[K]) refill(now time.Time) {
	conf := b.parentGroup.conf
	elapsed := now.Sub(b.lastCheck)
	if elapsed < conf.Period {
		return
	}
	times := int(elapsed / conf.Period)
	b.tokens += times * conf.Increment
	if b.tokens > conf.Burst {
		b.tokens = conf.Burst
	}
	b.lastCheck = b.lastCheck.Add(time.Duration(times) * conf.Period)
}

func (b *Bucket[K]) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
