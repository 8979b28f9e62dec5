package main

import (
	"context"
	"fmt"
	"strings"

	"CastleWardrobe/internal/game"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorPlum).Bold(true)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleActive   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleDialogue = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorIndianRed)
)

// Player drives a session from a terminal.
type Player struct {
	screen tcell.Screen
	sess   *game.Session
	status string
}

func NewPlayer(screen tcell.Screen, sess *game.Session) *Player {
	return &Player{screen: screen, sess: sess}
}

// Run polls events until the player quits or the screen is finalized.
func (p *Player) Run(ctx context.Context) {
	for {
		p.Draw()
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			if !p.HandleKey(ctx, ev) {
				return
			}
		}
	}
}

// HandleKey applies one key press. It returns false when the player quits.
func (p *Player) HandleKey(ctx context.Context, ev *tcell.EventKey) bool {
	action, slot := keyToAction(ev)
	if action == ActionQuit {
		return false
	}
	p.status = ""
	if err := p.apply(ctx, action, slot); err != nil {
		p.status = err.Error()
	}
	return true
}

func (p *Player) apply(ctx context.Context, action Action, slot int) error {
	v := p.sess.View()
	switch action {
	case ActionPrevScene:
		if !p.sess.PreviousScene(ctx) {
			p.status = "already at the first scene"
		}
	case ActionNextScene:
		if !p.sess.NextScene(ctx) {
			p.status = "already at the last scene"
		}
	case ActionClickCharacter:
		if slot >= len(v.Characters) {
			return fmt.Errorf("no character in slot %d", slot+1)
		}
		return p.sess.ClickCharacter(ctx, v.Characters[slot].ID)
	case ActionContinue:
		return p.sess.ContinueDialogue(ctx)
	case ActionDismiss:
		return p.sess.DismissOverlay(ctx)
	case ActionToggleWardrobe:
		if v.Wardrobe != nil {
			p.sess.CloseWardrobe()
			return nil
		}
		return p.sess.OpenWardrobe("")
	case ActionNextCategory:
		if v.Wardrobe == nil || len(v.Wardrobe.Categories) == 0 {
			return nil
		}
		cats := v.Wardrobe.Categories
		next := cats[(activeIndex(cats)+1)%len(cats)]
		return p.sess.SelectCategory(next.ID)
	case ActionNextOutfit:
		if v.Wardrobe == nil || len(v.Wardrobe.Outfits) == 0 {
			return nil
		}
		outfits := v.Wardrobe.Outfits
		idx := -1
		for i, o := range outfits {
			if o.Selected {
				idx = i
			}
		}
		_, err := p.sess.ToggleOutfit(outfits[(idx+1)%len(outfits)].ID)
		return err
	case ActionPrevWardrobeCharacter, ActionNextWardrobeCharacter:
		if v.Wardrobe == nil || len(v.Wardrobe.Characters) == 0 {
			return nil
		}
		chars := v.Wardrobe.Characters
		idx := 0
		for i, c := range chars {
			if c.Active {
				idx = i
			}
		}
		step := 1
		if action == ActionPrevWardrobeCharacter {
			step = len(chars) - 1
		}
		return p.sess.SelectWardrobeCharacter(chars[(idx+step)%len(chars)].ID)
	case ActionApply:
		return p.sess.ApplySelectedOutfit()
	case ActionRemove:
		return p.sess.RemoveOutfit()
	}
	return nil
}

func activeIndex(cats []game.CategoryView) int {
	for i, c := range cats {
		if c.Active {
			return i
		}
	}
	return 0
}

/* ------------------------------- Drawing ------------------------------- */

// Draw renders the current view.
func (p *Player) Draw() {
	p.screen.Clear()
	v := p.sess.View()
	y := 0

	title := "Castle Wardrobe"
	if v.Scene != nil {
		title += " | " + v.Scene.Name
	}
	p.drawText(0, y, title, styleTitle)
	y += 2

	x := 0
	for _, tab := range v.Scenes {
		style, label := styleDim, " "+tab.Name+" "
		if tab.Active {
			style, label = styleActive, "["+tab.Name+"]"
		}
		x = p.drawText(x, y, label, style) + 1
	}
	y++
	p.drawText(0, y, navHint(v), styleDim)
	y += 2

	if v.Scene == nil {
		p.drawText(0, y, "No scenes available.", styleError)
		y++
	}
	for i, c := range v.Characters {
		line := fmt.Sprintf("%d) %s  outfit:%s  sprite:%s  (%.0f,%.0f x%.2g)", i+1, c.Name, c.Outfit, c.Sprite, c.X, c.Y, c.Scale)
		p.drawText(2, y, line, styleText)
		y++
	}
	for _, a := range v.Animals {
		p.drawText(2, y, fmt.Sprintf("~ %s  (%.0f,%.0f)  sound:%s", a.ID, a.X, a.Y, a.Sound), styleDim)
		y++
	}
	y++

	if d := v.Dialogue; d != nil {
		p.drawText(0, y, fmt.Sprintf("%s: %s", d.Speaker, d.Text), styleDialogue)
		y++
		p.drawText(2, y, fmt.Sprintf("(%d/%d) space: continue  esc: close", d.Position, d.Total), styleDim)
		y += 2
	}

	if w := v.Wardrobe; w != nil {
		y = p.drawWardrobe(y, w)
	}

	_, h := p.screen.Size()
	if p.status != "" {
		p.drawText(0, h-2, p.status, styleError)
	}
	p.drawText(0, h-1, "arrows: scenes  1-9: talk  w: wardrobe  q: quit", styleDim)
	p.screen.Show()
}

func (p *Player) drawWardrobe(y int, w *game.WardrobeView) int {
	name := w.Character
	for _, c := range w.Characters {
		if c.Active {
			name = c.Name
		}
	}
	p.drawText(0, y, "Wardrobe: "+name+"  (up/down: character)", styleTitle)
	y++

	x := 2
	for _, c := range w.Categories {
		style := styleDim
		if c.Active {
			style = styleActive
		}
		x = p.drawText(x, y, c.Label, style) + 2
	}
	y++

	if len(w.Outfits) == 0 {
		p.drawText(2, y, "No outfits available", styleDim)
		y++
	}
	for _, o := range w.Outfits {
		marker := "  "
		if o.Selected {
			marker = "> "
		}
		label := marker + o.Name
		if o.Worn {
			label += " (worn)"
		}
		style := styleText
		if o.Selected {
			style = styleActive
		}
		p.drawText(2, y, label, style)
		y++
	}

	var hints []string
	if w.CanApply {
		hints = append(hints, "a: apply")
	}
	if w.CanRemove {
		hints = append(hints, "r: remove")
	}
	hints = append(hints, "tab: category", "o: outfit", "w: close")
	p.drawText(2, y, strings.Join(hints, "  "), styleDim)
	return y + 2
}

func navHint(v game.View) string {
	prev, next := "  ", "  "
	if v.CanPrevious {
		prev = "<-"
	}
	if v.CanNext {
		next = "->"
	}
	return prev + " scenes " + next
}

// drawText writes text clipped to the screen width and returns the column
// after the last cell written.
func (p *Player) drawText(x, y int, text string, style tcell.Style) int {
	width, _ := p.screen.Size()
	if x >= width {
		return x
	}
	text = runewidth.Truncate(text, width-x, "…")
	col := x
	for _, ch := range text {
		p.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
	return col
}
