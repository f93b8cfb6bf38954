//go:build rp2040 || rp2350

package main

import "time"

var bootTime time.Time

// InitClock records the boot instant Millis counts from.
func InitClock() {
	bootTime = time.Now()
}

// Millis returns milliseconds since InitClock. It wraps after about 49 days.
func Millis() uint32 {
	return uint32(time.Since(bootTime).Milliseconds())
}
