// Package tui draws a live terminal view of the controller.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nunchuk/host/monitor"
	"nunchuk/nunchuk"
	"nunchuk/protocol"
)

// Source is the state the view reads on every tick.
type Source interface {
	Latest() (monitor.Reading, bool)
	Identity() (protocol.Identify, bool)
	Stats() monitor.Stats
	Ready() bool
}

// Refresh is the redraw interval.
const Refresh = 50 * time.Millisecond

// barWidth is the number of cells used for each axis bar.
const barWidth = 21

type tickMsg time.Time

// Model is the bubbletea model.
type Model struct {
	src     Source
	degrees bool

	reading    monitor.Reading
	haveSample bool
	identity   protocol.Identify
	identified bool
	stats      monitor.Stats
	ready      bool
}

// New creates a model. degrees renders angles in degrees.
func New(src Source, degrees bool) Model {
	return Model{src: src, degrees: degrees}
}

func tick() tea.Cmd {
	return tea.Tick(Refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "d":
			m.degrees = !m.degrees
		}
	case tickMsg:
		m = m.refresh()
		return m, tick()
	}
	return m, nil
}

func (m Model) refresh() Model {
	m.reading, m.haveSample = m.src.Latest()
	m.identity, m.identified = m.src.Identity()
	m.stats = m.src.Stats()
	m.ready = m.src.Ready()
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("nunchuk monitor\n\n")
	if m.identified {
		fmt.Fprintf(&b, "device  %s mode, id % x", m.identity.Mode, m.identity.ID[:])
		if !m.identity.ID.IsNunchuk() {
			b.WriteString(" (not a nunchuk)")
		}
		b.WriteByte('\n')
	} else {
		b.WriteString("device  waiting for identify\n")
	}

	if !m.haveSample {
		b.WriteString("\nno samples yet\n")
		b.WriteString(m.footer())
		return b.String()
	}

	s := m.reading.Frame.Sample()
	state := "live"
	switch {
	case !m.ready:
		state = "stale"
	case !m.reading.OK:
		state = "short read"
	}
	fmt.Fprintf(&b, "clock   %d ms (%s)\n\n", m.reading.Clock, state)

	fmt.Fprintf(&b, "joy x   %5d %s\n", s.JoystickX, bar(int(s.JoystickX), 128))
	fmt.Fprintf(&b, "joy y   %5d %s\n", s.JoystickY, bar(int(s.JoystickY), 128))
	fmt.Fprintf(&b, "acc x   %5d %s\n", s.AccelX, bar(int(s.AccelX), 512))
	fmt.Fprintf(&b, "acc y   %5d %s\n", s.AccelY, bar(int(s.AccelY), 512))
	fmt.Fprintf(&b, "acc z   %5d %s\n", s.AccelZ, bar(int(s.AccelZ), 512))
	b.WriteByte('\n')

	unit := "rad"
	pitch, roll, joy := s.Pitch, s.Roll, s.JoystickAngle
	if m.degrees {
		unit = "deg"
		pitch, roll, joy = nunchuk.Degrees(pitch), nunchuk.Degrees(roll), nunchuk.Degrees(joy)
	}
	fmt.Fprintf(&b, "pitch   %8.2f %s\n", pitch, unit)
	fmt.Fprintf(&b, "roll    %8.2f %s\n", roll, unit)
	fmt.Fprintf(&b, "stick   %8.2f %s\n", joy, unit)
	fmt.Fprintf(&b, "buttons C[%s] Z[%s]\n", mark(s.ButtonC), mark(s.ButtonZ))

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) footer() string {
	return fmt.Sprintf("\nok %d  short %d  errors %d  lost %d\nq quit, d toggle degrees\n",
		m.stats.FramesOK, m.stats.FramesShort, m.stats.Errors, m.stats.Lost)
}

// bar renders v in [-limit, limit) as a centered marker.
func bar(v, limit int) string {
	pos := (v + limit) * barWidth / (2 * limit)
	if pos < 0 {
		pos = 0
	}
	if pos >= barWidth {
		pos = barWidth - 1
	}
	cells := []byte(strings.Repeat("-", barWidth))
	cells[barWidth/2] = '|'
	cells[pos] = '#'
	return "[" + string(cells) + "]"
}

func mark(pressed bool) string {
	if pressed {
		return "x"
	}
	return " "
}

// NewProgram creates the terminal program. The caller runs it and may stop
// it early with Quit.
func NewProgram(src Source, degrees bool, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(New(src, degrees), opts...)
}
