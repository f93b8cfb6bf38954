//go:build rp2040 || rp2350

package main

import (
	"time"

	"nunchuk/bus"
	"nunchuk/core"
	"nunchuk/nunchuk"
)

const (
	// powerUpDelay lets the controller finish its own reset after the
	// board powers the bus.
	powerUpDelay = 100 * time.Millisecond

	// pollInterval between frame reads. The controller needs a short gap
	// after the re-arm write before the next frame is ready.
	pollInterval = 10 * time.Millisecond

	// debug enables UART0 diagnostics.
	debug = false
)

func main() {
	InitClock()
	InitUSB()
	if debug {
		InitDebugUART()
		core.SetDebugWriter(DebugPrintln)
		core.SetDebugEnabled(true)
		core.InitAsyncDebug()
	}

	i2c, err := InitI2C()
	if err != nil {
		core.DebugPrintln("i2c: configure failed: " + err.Error())
		for {
			time.Sleep(time.Second)
		}
	}

	dev := nunchuk.New[mode](bus.NewTx(i2c))
	poller := core.NewPoller(dev, usbLink{}, Millis)

	time.Sleep(powerUpDelay)
	poller.Start()

	next := time.Now()
	for {
		poller.Poll()

		next = next.Add(pollInterval)
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		} else {
			// fell behind, do not try to catch up
			next = time.Now()
		}
	}
}
