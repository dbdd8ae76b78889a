package hours

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "2006-01-02 15"
)

// DateHour identifies one UTC hour, the granularity every archived
// table is keyed by.
type DateHour struct {
	Date string
	Hour uint8
}

func (dh DateHour) String() string {
	return fmt.Sprintf("%s %02d", dh.Date, dh.Hour)
}

func (dh DateHour) Add(hours int) DateHour {
	t, err := time.ParseInLocation(hourLayout, dh.String(), time.UTC)
	if err != nil {
		return dh
	}

	t = t.Add(time.Duration(hours) * time.Hour)
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour()),
	}
}

func (dh DateHour) Sub(hours int) DateHour {
	return dh.Add(-hours)
}

func (dh DateHour) Compare(other DateHour) int {
	if dh == other {
		return 0
	}
	if dh.Date < other.Date {
		return -1
	}
	if dh.Date > other.Date {
		return 1
	}
	if dh.Hour < other.Hour {
		return -1
	}
	return 1
}

func (dh DateHour) IsZero() bool {
	return dh.Date == "" && dh.Hour == 0
}

func FromTime(t time.Time) DateHour {
	if t.IsZero() {
		return DateHour{}
	}
	t = t.UTC()
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour()),
	}
}

func FromNow() DateHour {
	return FromTime(time.Now())
}
