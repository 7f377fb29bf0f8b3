package instant

import "time"

const secondsPerHour = 3600

// AddHours shifts t by hours without consulting civil-time rules.
// AddHours(AddHours(t, h), -h) equals t for every int32 h, including shifts
// beyond the range of time.Duration.
func AddHours(t time.Time, hours int32) time.Time {
	secs := t.Unix() + int64(hours)*secondsPerHour
	return time.Unix(secs, int64(t.Nanosecond())).In(t.Location())
}
