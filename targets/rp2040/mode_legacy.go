//go:build (rp2040 || rp2350) && nunchuk_legacy

package main

import "nunchuk/nunchuk"

type mode = nunchuk.Legacy
