//go:build (rp2040 || rp2350) && !nunchuk_legacy

package main

import "nunchuk/nunchuk"

// mode is the byte transform the firmware is built for.
// Build with -tags nunchuk_legacy for controllers that need the legacy
// handshake.
type mode = nunchuk.Plain
