//go:build debug

package throttle

import (
	"log"
	"time"
)

func (s *BucketStore[K]) Cleanup(now time.Time) {
	log.Printf("[DEBUG] cleaning buckets idle longer than %v at %v", s.cleanupOlderThan, now)
	cleanCnt := 0
	for _, g := range s.groups {
		g.buckets.Range(func(id, value any) bool {
			b := value.(*Bucket[K])
			// lock per bucket while checking/removing
			b.mu.Lock()
			last := b.lastCheck
			b.mu.Unlock()
			if now.Sub(last) > s.cleanupOlderThan {
				g.buckets.Delete(id)
				cleanCnt++
			}
			return true // continue iteration
		})
	}
	log.Printf("[DEBUG] cleaned %d expired buckets", cleanCnt)
}
