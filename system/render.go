package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

var (
	arenaColor  = color.RGBA{R: 0x1b, G: 0x1d, B: 0x26, A: 0xff}
	borderColor = colornames.Slategray
)

// Draw renders the arena, both players and the HUD. In debug mode hitboxes
// and the playfield margins are outlined.
func (s *Session) Draw(screen *ebiten.Image, debug bool) {
	f := s.Frame
	f.Screen = screen
	defer func() { f.Screen = nil }()

	screen.Fill(arenaColor)
	vector.StrokeRect(screen, 1, 1, float32(f.Width)-2, float32(f.Height)-2, 2, borderColor, false)

	for _, p := range s.Players {
		e := p.Entity
		vector.DrawFilledRect(screen, float32(e.Position.X), float32(e.Position.Y), float32(e.Width), float32(e.Height), p.Color, false)
		if debug {
			hb := e.Hitbox()
			vector.StrokeRect(screen, float32(hb.X), float32(hb.Y), float32(hb.Width), float32(hb.Height), 1, colornames.Yellow, false)
		}
		e.Render(f)
	}

	for i, p := range s.Players {
		hud := fmt.Sprintf("P%d  lives %d  hp %d", i+1, p.Entity.LivesLeft, p.Entity.Health.Current)
		x := 10
		if i == 1 {
			x = int(f.Width) - 10 - 7*len(hud)
		}
		ebitenutil.DebugPrintAt(screen, hud, x, 10)
	}

	if debug {
		once, repeats := s.Executor.Pending()
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("FPS %.1f  calls %d/%d  session %s", ebiten.ActualFPS(), once, repeats, s.ID),
			10, int(f.Height)-20)
	}

	if s.Over && s.Winner != nil {
		msg := fmt.Sprintf("Player %d wins - press Enter", s.Winner.Index+1)
		ebitenutil.DebugPrintAt(screen, msg, int(f.Width)/2-7*len(msg)/2, int(f.Height)/2)
	}
}
