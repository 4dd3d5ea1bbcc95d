//go:build !tinygo

package hal

import "time"

// hostClock reads the wall clock; time.Now carries a monotonic reading.
type hostClock struct{}

func (hostClock) Now() time.Time { return time.Now() }
