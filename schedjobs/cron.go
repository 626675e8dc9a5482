package schedjobs

// CronJob fires whenever the current minute matches all four bit
// masks. Bit i of Minutes = minute i, and so on; day-of-month bit 0 is
// day 1.
type CronJob struct {
	ID          string
	Minutes     uint64 // 60 bits
	Hours       uint32 // 24 bits
	DaysOfMonth uint32 // 31 bits
	Weekdays    uint8  // 7 bits, sunday = bit 0
	Task        func() error

	OnAdded    func()
	OnFinished func(error)
}

const (
	AllMinutes     uint64 = 0xFFFFFFFFFFFFFFF
	AllHours       uint32 = 0xFFFFFF
	AllWeekdays    uint8  = 0b01111111
	AllDaysOfMonth uint32 = 0x7FFFFFFF
)

// NewEveryMinEmptyCronJob returns a job matching every minute with no
// Task yet. Assign Task and narrow the masks as needed.
func NewEveryMinEmptyCronJob(jobID string) *CronJob {
	return &CronJob{
		ID:          jobID,
		Minutes:     AllMinutes,
		Hours:       AllHours,
		DaysOfMonth: AllDaysOfMonth,
		Weekdays:    AllWeekdays,
	}
}

func BitsFromMinutes(list []int) uint64 {
	var bits uint64
	for _, v := range list {
		if v >= 0 && v < 60 {
			bits |= 1 << v
		}
	}
	return bits
}

func BitsFromHours(list []int) uint32 {
	var bits uint32
	for _, v := range list {
		if v >= 0 && v < 24 {
			bits |= 1 << v
		}
	}
	return bits
}

func BitsFromWeekdays(list []int) uint8 {
	var bits uint8
	for _, v := range list {
		if v >= 0 && v < 7 {
			bits |= 1 << v
		}
	}
	return bits
}

func BitsFromDaysOfMonth(list []int) uint32 {
	var bits uint32
	for _, v := range list {
		if v >= 1 && v <= 31 {
			bits |= 1 << (v - 1)
		}
	}
	return bits
}
