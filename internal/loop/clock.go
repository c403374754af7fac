package loop

import "time"

// Clock is the loop's time source. Tests feed synthetic times.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
