package story

import (
	"context"

	"github.com/looplab/fsm"
)

// Dialogue box states.
const (
	BoxHidden  = "hidden"
	BoxShowing = "showing"
)

const (
	eventShow = "show"
	eventHide = "hide"
)

// DialogueBox steps through a resolved chain one line at a time. Continue
// advances and hides the box after the last line; Dismiss hides it at once.
type DialogueBox struct {
	machine *fsm.FSM
	lines   []Line
	index   int
}

// NewDialogueBox returns a hidden box.
func NewDialogueBox() *DialogueBox {
	b := &DialogueBox{}
	b.machine = fsm.NewFSM(
		BoxHidden,
		fsm.Events{
			{Name: eventShow, Src: []string{BoxHidden}, Dst: BoxShowing},
			{Name: eventHide, Src: []string{BoxShowing}, Dst: BoxHidden},
		},
		fsm.Callbacks{
			"enter_" + BoxHidden: func(_ context.Context, _ *fsm.Event) {
				b.lines = nil
				b.index = 0
			},
		},
	)
	return b
}

// State returns BoxHidden or BoxShowing.
func (b *DialogueBox) State() string {
	return b.machine.Current()
}

// Visible reports whether a line is on screen.
func (b *DialogueBox) Visible() bool {
	return b.machine.Is(BoxShowing)
}

// Show displays the first line of a new sequence, replacing whatever was on
// screen. An empty sequence hides the box.
func (b *DialogueBox) Show(ctx context.Context, lines []Line) error {
	if len(lines) == 0 {
		return b.Dismiss(ctx)
	}
	if b.Visible() {
		b.lines = lines
		b.index = 0
		return nil
	}
	if err := b.machine.Event(ctx, eventShow); err != nil {
		return err
	}
	b.lines = lines
	b.index = 0
	return nil
}

// Continue moves to the next line, hiding the box after the last one. It is
// a no-op while hidden.
func (b *DialogueBox) Continue(ctx context.Context) error {
	if !b.Visible() {
		return nil
	}
	if b.index+1 < len(b.lines) {
		b.index++
		return nil
	}
	return b.machine.Event(ctx, eventHide)
}

// Dismiss hides the box.
func (b *DialogueBox) Dismiss(ctx context.Context) error {
	if !b.Visible() {
		return nil
	}
	return b.machine.Event(ctx, eventHide)
}

// Current returns the line on screen.
func (b *DialogueBox) Current() (Line, bool) {
	if !b.Visible() || b.index >= len(b.lines) {
		return Line{}, false
	}
	return b.lines[b.index], true
}

// Progress returns the 1-based position of the current line and the length
// of the sequence; both are 0 while hidden.
func (b *DialogueBox) Progress() (position, total int) {
	if !b.Visible() {
		return 0, 0
	}
	return b.index + 1, len(b.lines)
}
