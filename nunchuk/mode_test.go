package nunchuk

import "testing"

func TestPlainDecodeIdentity(t *testing.T) {
	for v := 0; v <= 255; v++ {
		if got := (Plain{}).DecodeByte(byte(v)); got != byte(v) {
			t.Errorf("Plain.DecodeByte(%d) = %d", v, got)
		}
	}
}

func TestLegacyDecode(t *testing.T) {
	testCases := []struct {
		in, out byte
	}{
		{0x00, 0x2E},
		{0x17, 0x17},
		{0xFF, 0xFF},
		{0xE8, 0x16}, // wraps: 0xFF + 0x17
		{0x80, 0xAE},
	}

	for _, tc := range testCases {
		if got := (Legacy{}).DecodeByte(tc.in); got != tc.out {
			t.Errorf("Legacy.DecodeByte(0x%02X): expected 0x%02X, got 0x%02X", tc.in, tc.out, got)
		}
	}
}

func TestLegacyDecodeDeterministic(t *testing.T) {
	var m Legacy
	for v := 0; v <= 255; v++ {
		b := byte(v)
		if m.DecodeByte(b) != m.DecodeByte(b) {
			t.Fatalf("DecodeByte(%d) not deterministic", v)
		}
	}
}

func TestLegacyDecodeNotSelfInverse(t *testing.T) {
	var m Legacy
	mismatches := 0
	for v := 0; v <= 255; v++ {
		if m.DecodeByte(m.DecodeByte(byte(v))) != byte(v) {
			mismatches++
		}
	}
	if mismatches == 0 {
		t.Error("Legacy transform should not be its own inverse")
	}
}

func TestLegacyDecodeBijective(t *testing.T) {
	var seen [256]bool
	for v := 0; v <= 255; v++ {
		out := (Legacy{}).DecodeByte(byte(v))
		if seen[out] {
			t.Fatalf("DecodeByte maps two inputs to 0x%02X", out)
		}
		seen[out] = true
	}
}

func TestHandshakes(t *testing.T) {
	if got := (Plain{}).handshake(); len(got) != 2 || got[0] != (register{0xF0, 0x55}) || got[1] != (register{0xFB, 0x00}) {
		t.Errorf("Unexpected plain handshake %v", got)
	}
	if got := (Legacy{}).handshake(); len(got) != 1 || got[0] != (register{0x40, 0x00}) {
		t.Errorf("Unexpected legacy handshake %v", got)
	}
}
