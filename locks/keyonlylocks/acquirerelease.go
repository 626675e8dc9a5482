// Package keyonlylocks implements try-lock semantics over a sync.Map:
// either every requested key is acquired or none is. Render handlers
// use it to turn away duplicate in-flight jobs instead of queueing.
package keyonlylocks

import "sync"

func AcquireLocks(lockStore *sync.Map, keys []string) ([]string, bool) {
	var acquired []string
	for _, key := range keys {
		if _, loaded := lockStore.LoadOrStore(key, struct{}{}); loaded {
			// roll back what we already hold
			for _, k := range acquired {
				lockStore.Delete(k)
			}
			return nil, false
		}
		acquired = append(acquired, key)
	}
	return acquired, true
}

// ReleaseLocks removes held keys. Call it deferred so a panic in the
// job still releases.
func ReleaseLocks(lockStore *sync.Map, keys []string) {
	for _, key := range keys {
		lockStore.Delete(key)
	}
}
