package nunchuk

import (
	"errors"
	"reflect"
	"testing"

	"nunchuk/bus/bustest"
)

// scramble produces the wire byte that Legacy.DecodeByte turns into b.
func scramble(b byte) byte {
	return (b - 0x17) ^ 0x17
}

func TestInitializePlain(t *testing.T) {
	fake := bustest.New()
	New[Plain](fake).Initialize()

	want := []string{
		"clock 400000",
		"write 52 f0 55",
		"write 52 fb 00",
	}
	if !reflect.DeepEqual(fake.Events, want) {
		t.Errorf("Unexpected bus traffic:\nexpected %q\ngot      %q", want, fake.Events)
	}
}

func TestInitializeLegacy(t *testing.T) {
	fake := bustest.New()
	New[Legacy](fake).Initialize()

	want := []string{
		"clock 400000",
		"write 52 40 00",
	}
	if !reflect.DeepEqual(fake.Events, want) {
		t.Errorf("Unexpected bus traffic:\nexpected %q\ngot      %q", want, fake.Events)
	}
}

func TestReadFramePlain(t *testing.T) {
	fake := bustest.New()
	d := New[Plain](fake)
	fake.QueueResponse(130, 120, 255, 0, 128, 0b00010100)

	if !d.ReadFrame() {
		t.Fatal("Expected full frame")
	}

	want := []string{
		"request 52 6",
		"write 52 00",
	}
	if !reflect.DeepEqual(fake.Events, want) {
		t.Errorf("Unexpected bus traffic:\nexpected %q\ngot      %q", want, fake.Events)
	}

	if d.JoystickX() != 2 || d.JoystickY() != -8 {
		t.Errorf("Joystick: got (%d,%d)", d.JoystickX(), d.JoystickY())
	}
	if d.AccelX() != 509 || d.AccelY() != -511 || d.AccelZ() != 0 {
		t.Errorf("Accel: got (%d,%d,%d)", d.AccelX(), d.AccelY(), d.AccelZ())
	}
	if !d.ButtonC() || !d.ButtonZ() {
		t.Error("Expected both buttons pressed")
	}
	if d.Pitch() != d.Frame().Pitch() || d.Roll() != d.Frame().Roll() || d.JoystickAngle() != d.Frame().JoystickAngle() {
		t.Error("Device angles disagree with frame angles")
	}
}

func TestReadFrameLegacy(t *testing.T) {
	fake := bustest.New()
	d := New[Legacy](fake)

	frame := Frame{130, 120, 255, 0, 128, 0b00010100}
	var wire [FrameSize]byte
	for i, b := range frame {
		wire[i] = scramble(b)
	}
	fake.QueueResponse(wire[:]...)

	if !d.ReadFrame() {
		t.Fatal("Expected full frame")
	}
	if d.Frame() != frame {
		t.Errorf("Expected % x, got % x", frame, d.Frame())
	}
}

func TestReadFrameModeMismatch(t *testing.T) {
	// Plain decoding of scrambled bytes yields plausible but wrong values
	fake := bustest.New()
	d := New[Plain](fake)
	fake.QueueResponse(scramble(130), scramble(120), scramble(255), scramble(0), scramble(128), scramble(0b00010100))

	if !d.ReadFrame() {
		t.Fatal("Expected full frame")
	}
	if d.JoystickX() == 2 && d.JoystickY() == -8 {
		t.Error("Mismatched mode should not decode correctly")
	}
}

func TestReadFrameShort(t *testing.T) {
	fake := bustest.New()
	d := New[Plain](fake)

	fake.QueueResponse(1, 2, 3, 4, 5, 6)
	if !d.ReadFrame() {
		t.Fatal("Expected first frame to succeed")
	}

	fake.QueueResponse(10, 20, 30)
	if d.ReadFrame() {
		t.Fatal("Expected short frame to fail")
	}

	want := Frame{10, 20, 30, 4, 5, 6}
	if d.Frame() != want {
		t.Errorf("Expected partial update % x, got % x", want, d.Frame())
	}

	// re-arm is still sent after a short read
	last := fake.Events[len(fake.Events)-1]
	if last != "write 52 00" {
		t.Errorf("Expected re-arm after short read, got %q", last)
	}
}

func TestReadFrameNoDevice(t *testing.T) {
	fake := bustest.New()
	d := New[Plain](fake)

	if d.ReadFrame() {
		t.Fatal("Expected failure with nothing on the bus")
	}
	if d.Frame() != (Frame{}) {
		t.Errorf("Expected untouched zero frame, got % x", d.Frame())
	}
}

func TestReadFrameIgnoresExtraBytes(t *testing.T) {
	fake := bustest.New()
	d := New[Plain](fake)
	fake.QueueResponse(1, 2, 3, 4, 5, 6, 7, 8)

	if !d.ReadFrame() {
		t.Fatal("Expected full frame")
	}
	if d.Frame() != (Frame{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Unexpected frame % x", d.Frame())
	}
}

func TestStaleFrameAfterFailure(t *testing.T) {
	fake := bustest.New()
	d := New[Plain](fake)

	fake.QueueResponse(200, 50, 128, 128, 128, 0x03)
	d.ReadFrame()
	before := d.Sample()

	if d.ReadFrame() {
		t.Fatal("Expected failure")
	}
	if d.Sample() != before {
		t.Errorf("Stale readings changed: %+v -> %+v", before, d.Sample())
	}
}

func TestIdentify(t *testing.T) {
	fake := bustest.New()
	d := New[Plain](fake)
	fake.QueueResponse(0x00, 0x00, 0xA4, 0x20, 0x00, 0x00)

	id, ok := d.Identify()
	if !ok {
		t.Fatal("Expected full identifier")
	}
	if !id.IsNunchuk() {
		t.Errorf("Expected nunchuk signature, got % x", id)
	}

	want := []string{
		"write 52 fa",
		"request 52 6",
		"write 52 00",
	}
	if !reflect.DeepEqual(fake.Events, want) {
		t.Errorf("Unexpected bus traffic:\nexpected %q\ngot      %q", want, fake.Events)
	}
	if d.Frame() != (Frame{}) {
		t.Error("Identify must not touch the frame buffer")
	}
}

func TestIdentifyLegacy(t *testing.T) {
	fake := bustest.New()
	d := New[Legacy](fake)
	fake.QueueResponse(scramble(0xFF), scramble(0x00), scramble(0xA4), scramble(0x20), scramble(0x00), scramble(0x00))

	id, ok := d.Identify()
	if !ok || !id.IsNunchuk() {
		t.Errorf("Expected nunchuk, got % x ok=%v", id, ok)
	}
}

func TestIdentifyOther(t *testing.T) {
	testCases := []ID{
		{0x00, 0x00, 0xA4, 0x20, 0x01, 0x01}, // classic controller
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
	}
	for _, id := range testCases {
		if id.IsNunchuk() {
			t.Errorf("% x should not identify as nunchuk", id)
		}
	}

	fake := bustest.New()
	fake.QueueResponse(0x00, 0x00, 0xA4)
	if _, ok := New[Plain](fake).Identify(); ok {
		t.Error("Expected short identifier to fail")
	}
}

func TestModeName(t *testing.T) {
	if got := New[Plain](bustest.New()).Mode(); got != "plain" {
		t.Errorf("Expected plain, got %s", got)
	}
	if got := New[Legacy](bustest.New()).Mode(); got != "legacy" {
		t.Errorf("Expected legacy, got %s", got)
	}
}

func TestLastErrorFromBus(t *testing.T) {
	fake := bustest.New()
	d := New[Plain](fake)

	if err := d.LastError(); err != nil {
		t.Fatalf("Expected nil, got %v", err)
	}

	busErr := errors.New("arbitration lost")
	fake.Err = busErr
	d.ReadFrame()
	if err := d.LastError(); !errors.Is(err, busErr) {
		t.Errorf("Expected %v, got %v", busErr, err)
	}
	if err := d.LastError(); err != nil {
		t.Errorf("LastError should clear, got %v", err)
	}
}

// plainBus hides LastError so the device sees a bus without error records.
type plainBus struct{ *bustest.Fake }

func (plainBus) LastError() {}

func TestLastErrorWithoutRecorder(t *testing.T) {
	fake := bustest.New()
	fake.Err = errors.New("ignored")
	d := New[Plain](plainBus{fake})

	if err := d.LastError(); err != nil {
		t.Errorf("Expected nil for a bus without error records, got %v", err)
	}
}
