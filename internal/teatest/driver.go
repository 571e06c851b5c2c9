// Package teatest drives bubbletea models synchronously in tests.
//
// Driver calls Update directly and runs every returned Cmd to completion
// before the next input, so list views backed by in-memory SQLite settle
// deterministically after each key press. Cmds that block (cursor blink
// timers from huh's text inputs) are dropped after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// MaxDrainDepth bounds Cmd chains so a model that keeps scheduling work
// cannot hang a test.
const MaxDrainDepth = 100

// cmdTimeout separates real work (database reads, message factories) from
// timer Cmds, which block for hundreds of milliseconds.
const cmdTimeout = 50 * time.Millisecond

// Driver is a synchronous harness for one tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Seen holds every message the driver fed to Update, in order,
	// including those produced by Cmds.
	Seen []tea.Msg

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool
}

type Option func(*Driver)

// New creates a Driver. Call DrainInit to run the model's Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send feeds msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.drain(d.update(msg), 0)
}

func (d *Driver) Resize(w, h int) {
	d.T.Helper()
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) Press(t tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: t})
}

func (d *Driver) PressEnter()    { d.T.Helper(); d.Press(tea.KeyEnter) }
func (d *Driver) PressEsc()      { d.T.Helper(); d.Press(tea.KeyEsc) }
func (d *Driver) PressUp()       { d.T.Helper(); d.Press(tea.KeyUp) }
func (d *Driver) PressDown()     { d.T.Helper(); d.Press(tea.KeyDown) }
func (d *Driver) PressLeft()     { d.T.Helper(); d.Press(tea.KeyLeft) }
func (d *Driver) PressRight()    { d.T.Helper(); d.Press(tea.KeyRight) }
func (d *Driver) PressPageDown() { d.T.Helper(); d.Press(tea.KeyPgDown) }
func (d *Driver) PressPageUp()   { d.T.Helper(); d.Press(tea.KeyPgUp) }

// PressDownN moves the cursor down n screen lines.
func (d *Driver) PressDownN(n int) {
	d.T.Helper()
	for range n {
		d.PressDown()
	}
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

// Lines returns the rendered view without ANSI styling, one entry per
// screen line, with trailing spaces trimmed.
func (d *Driver) Lines() []string {
	plain := ansi.Strip(d.View())
	lines := strings.Split(strings.TrimRight(plain, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// Contains reports whether any rendered line contains sub.
func (d *Driver) Contains(sub string) bool {
	for _, l := range d.Lines() {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

// SeenCount returns how many seen messages have the same dynamic type as
// sample.
func (d *Driver) SeenCount(sample tea.Msg) int {
	want := fmt.Sprintf("%T", sample)
	n := 0
	for _, m := range d.Seen {
		if fmt.Sprintf("%T", m) == want {
			n++
		}
	}
	return n
}

func (d *Driver) update(msg tea.Msg) tea.Cmd {
	d.Seen = append(d.Seen, msg)
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	return cmd
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: Cmd chain deeper than %d, stopping", MaxDrainDepth)
		return
	}

	msg := runCmd(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.update(msg)
		return
	}
	if isBlink(msg) {
		return
	}
	d.drain(d.update(msg), depth+1)
}

// runCmd runs cmd, giving up after cmdTimeout.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages of bubbles/cursor,
// which would otherwise chain into more timer Cmds.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
