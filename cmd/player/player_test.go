package main

import (
	"context"
	"strings"
	"testing"

	"CastleWardrobe/internal/catalog"
	"CastleWardrobe/internal/game"

	"github.com/gdamore/tcell/v2"
)

func newTestPlayer(t *testing.T) (*Player, tcell.SimulationScreen) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(80, 24)
	t.Cleanup(ss.Fini)

	store := catalog.NewStore(
		[]catalog.Scene{
			{ID: "castle", Name: "Castle", Unlocked: true},
			{ID: "garden", Name: "Garden", Unlocked: true},
		},
		[]catalog.Character{
			{
				ID: "aurora", Name: "Aurora", Sprite: "aurora.png", DefaultOutfit: "gown",
				Position: map[string]catalog.Position{"castle": {X: 10, Y: 20}},
			},
		},
		[]catalog.DialogueEntry{
			{ID: "a1", Scene: "castle", Character: "aurora", Text: "Good evening.", Next: "a2"},
			{ID: "a2", Scene: "castle", Character: "aurora", Text: "Shall we dance?"},
		},
		[]catalog.Outfit{
			{ID: "cloak", Character: "aurora", Category: "winter", Name: "Velvet Cloak", Image: "cloak.png"},
		},
		nil,
	)
	sess := game.NewSession("local", game.NewContent(store))
	return NewPlayer(ss, sess), ss
}

// screenText returns the screen contents, one line per row.
func screenText(ss tcell.SimulationScreen) string {
	w, h := ss.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := ss.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func press(p *Player, r rune) bool {
	return p.HandleKey(context.Background(), tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Action
		slot int
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionPrevScene, 0},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), ActionNextScene, 0},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionDismiss, 0},
		{tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), ActionClickCharacter, 2},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionContinue, 0},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), ActionToggleWardrobe, 0},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit, 0},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionNone, 0},
	}
	for _, tc := range cases {
		got, slot := keyToAction(tc.ev)
		if got != tc.want || slot != tc.slot {
			t.Errorf("keyToAction(%v) = %v/%d, want %v/%d", tc.ev.Name(), got, slot, tc.want, tc.slot)
		}
	}
}

func TestDrawScene(t *testing.T) {
	p, ss := newTestPlayer(t)
	p.Draw()
	text := screenText(ss)
	for _, want := range []string{"Castle Wardrobe | Castle", "[Castle]", "1) Aurora", "outfit:gown"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q:\n%s", want, text)
		}
	}
}

func TestDialogueKeys(t *testing.T) {
	p, ss := newTestPlayer(t)

	press(p, '1')
	p.Draw()
	if text := screenText(ss); !strings.Contains(text, "Aurora: Good evening.") {
		t.Fatalf("expected first line on screen:\n%s", text)
	}

	press(p, ' ')
	p.Draw()
	if text := screenText(ss); !strings.Contains(text, "Shall we dance?") {
		t.Fatalf("expected second line on screen:\n%s", text)
	}

	press(p, ' ')
	if p.sess.View().Dialogue != nil {
		t.Error("dialogue should close after the last line")
	}

	press(p, '5')
	if p.status == "" {
		t.Error("expected a status message for an empty slot")
	}
}

func TestWardrobeKeys(t *testing.T) {
	p, ss := newTestPlayer(t)

	press(p, 'w')
	press(p, 'o')
	p.Draw()
	text := screenText(ss)
	if !strings.Contains(text, "Wardrobe: Aurora") || !strings.Contains(text, "> Velvet Cloak") {
		t.Fatalf("expected wardrobe with cloak selected:\n%s", text)
	}

	press(p, 'a')
	if got := p.sess.Outfit("aurora"); got != "cloak" {
		t.Fatalf("expected cloak after apply, got %q", got)
	}
	press(p, 'r')
	if got := p.sess.Outfit("aurora"); got != "gown" {
		t.Fatalf("expected default gown after remove, got %q", got)
	}

	p.HandleKey(context.Background(), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if p.sess.View().Wardrobe != nil {
		t.Error("escape should close the wardrobe")
	}
	if press(p, 'q') {
		t.Error("q should quit")
	}
}

func TestDrawTextTruncates(t *testing.T) {
	p, ss := newTestPlayer(t)
	ss.SetSize(10, 3)
	end := p.drawText(0, 0, "a very long status line", styleText)
	if end > 10 {
		t.Errorf("drawText wrote past the screen edge: %d", end)
	}
}
