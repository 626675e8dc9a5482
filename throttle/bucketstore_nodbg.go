//go:build !debug

package throttle

import "time"

// Cleanup drops buckets idle longer than the store's retention window.
func (s *BucketStore[K]) Cleanup(now time.Time) {
	for _, g := range s.groups {
		g.buckets.Range(func(id, value any) bool {
			b := value.(*Bucket[K])
			b.mu.Lock()
			last := b.lastCheck
			b.mu.Unlock()
			if now.Sub(last) > s.cleanupOlderThan {
				g.buckets.Delete(id)
			}
			return true
		})
	}
}
