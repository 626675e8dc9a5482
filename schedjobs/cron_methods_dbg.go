//go:build debug

package schedjobs

import (
	"log"
	"time"
)

func (job *CronJob) Matches(now time.Time) bool {
	log.Printf("[DEBUG] matching %s at %v: Minutes=%v Hours=%v DaysOfMonth=%v Weekdays=%v",
		job.ID, now, job.Minutes, job.Hours, job.DaysOfMonth, job.Weekdays)
	if job.Minutes&(1<<now.Minute()) == 0 {
		log.Println("[DEBUG] minute mismatch")
		return false
	}
	if job.Hours&(1<<now.Hour()) == 0 {
		log.Println("[DEBUG] hour mismatch")
		return false
	}
	if job.DaysOfMonth&(1<<(now.Day()-1)) == 0 { // day 1 = bit 0
		log.Println("[DEBUG] day-of-month mismatch")
		return false
	}
	if job.Weekdays&(1<<now.Weekday()) == 0 {
		log.Println("[DEBUG] weekday mismatch")
		return false
	}
	log.Println("[DEBUG] all fields match")
	return true
}
