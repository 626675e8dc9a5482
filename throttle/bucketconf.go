package throttle

import "time"

// BucketConf is the refill policy shared by every bucket in a group.
type BucketConf struct {
	Burst     int           // token cap
	Increment int           // tokens added per Period
	Period    time.Duration
}
