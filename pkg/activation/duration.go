package activation

import (
	"fmt"
	"time"
)

// Breakdown is a duration split into calendar-ish components.
type Breakdown struct {
	Days    uint64
	Hours   uint64
	Minutes uint64
	Seconds uint64
}

// Decompose floors d into days, hours mod 24, minutes mod 60 and seconds mod 60.
// Negative durations decompose to zero.
func Decompose(d time.Duration) Breakdown {
	if d < 0 {
		return Breakdown{}
	}

	total := uint64(d / time.Second)

	return Breakdown{
		Days:    total / 86400,
		Hours:   total / 3600 % 24,
		Minutes: total / 60 % 60,
		Seconds: total % 60,
	}
}

func (b Breakdown) String() string {
	return fmt.Sprintf("%d days, %d hours, %d minutes", b.Days, b.Hours, b.Minutes)
}
