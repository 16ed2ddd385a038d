package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arena/assets"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/input"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/script"
	"github.com/milk9111/arena/sound"
	"github.com/milk9111/arena/system"
	"github.com/milk9111/arena/ui"
	"go.uber.org/zap"
)

// Config is the command line selection of a game.
type Config struct {
	Arena    string
	Controls [2]string
	Debug    bool
	Watch    bool
	Mute     bool
}

type Game struct {
	cfg     Config
	log     *zap.Logger
	arena   *prefabs.ArenaSpec
	session *system.Session

	paused  *ebitenui.UI
	volumes *volumeLabels
	rematch *ui.Button
	watcher *prefabs.Watcher
	quit    bool
}

func NewGame(cfg Config, log *zap.Logger) (*Game, error) {
	arena, err := prefabs.LoadArenaSpec(cfg.Arena)
	if err != nil {
		return nil, err
	}
	arena.Controls = overrideControls(arena.Controls, cfg.Controls)

	player, err := prefabs.LoadPlayerSpec(arena.Player)
	if err != nil {
		return nil, err
	}

	var intro *script.Timeline
	if arena.Intro != "" {
		intro, err = script.Load(arena.Intro, scriptVars(arena, player))
		if err != nil {
			// a broken intro should not keep the match from starting
			log.Warn("game: intro not loaded", zap.String("script", arena.Intro), zap.Error(err))
		}
	}

	var backend sound.Backend
	if !cfg.Mute {
		backend = sound.NewEbitenBackend(sound.DefaultSampleRate, assets.Files)
	}

	session, err := system.NewSession(system.Options{
		Arena:  arena,
		Player: player,
		Intro:  intro,
		Source: input.NewEbitenSource(),
		Sounds: sound.NewEngine(backend, log.Named("sound")),
		Log:    log,
	})
	if err != nil {
		return nil, err
	}
	if err := session.Start(context.Background()); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		log:     log,
		arena:   arena,
		session: session,
	}
	w, h := g.WindowSize()
	g.rematch = ui.NewButton(float64(w)/2-80, float64(h)/2+30, 160, 40, "Rematch", session.Sounds)
	g.paused, g.volumes = NewPauseUI(g)

	if cfg.Watch {
		dirs := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")}
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Warn("game: hot reload disabled", zap.Strings("dirs", dirs), zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

func overrideControls(controls []string, flags [2]string) []string {
	out := make([]string, 2)
	copy(out, controls)
	for i, name := range flags {
		if name != "" {
			out[i] = name
		}
	}
	return out
}

func scriptVars(arena *prefabs.ArenaSpec, player *prefabs.PlayerSpec) script.Vars {
	lives := player.Lives
	if lives <= 0 {
		lives = system.DefaultLives
	}
	return script.Vars{Tutorial: arena.Tutorial, Lives: lives}
}

func (g *Game) Title() string {
	if g.arena.Window.Title != "" {
		return g.arena.Window.Title
	}
	return "arena"
}

func (g *Game) WindowSize() (int, int) {
	w, h := g.arena.Window.Width, g.arena.Window.Height
	if w <= 0 || h <= 0 {
		return common.BaseWidth, common.BaseHeight
	}
	return w, h
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reload()

	s := g.session
	s.Update()
	in := s.Input

	if !s.Over && in.IsKeyPressed(ebiten.KeyEscape) {
		g.setPaused(!s.Paused)
	}
	if s.Paused {
		g.paused.Update()
		return nil
	}

	if s.Over {
		mx, my := in.CursorPosition()
		g.rematch.Update(float64(mx), float64(my))
		if g.rematch.IsClicked(in) || in.IsKeyPressed(ebiten.KeyEnter) {
			g.restart()
		}
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	s := g.session
	if s.Paused == paused {
		return
	}
	s.Paused = paused
	if paused {
		s.Sounds.PauseMusic()
		g.volumes.refresh(s.Sounds)
	} else {
		s.Sounds.ResumeMusic()
	}
}

func (g *Game) restart() {
	g.session.Restart()
}

func (g *Game) changeVolume(music bool, delta float64) {
	sounds := g.session.Sounds
	if music {
		sounds.SetMusicVolume(sounds.MusicVolume() + delta)
	} else {
		sounds.SetSFXVolume(sounds.SFXVolume() + delta)
	}
	g.volumes.refresh(sounds)
}

// reload applies prefab and script edits picked up by the watcher. Tuning
// and volumes apply at once; the intro applies from the next restart.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			g.log.Warn("game: watch error", zap.Error(err))
		}
	default:
	}

	for _, change := range g.watcher.Drain() {
		name := change.Name()
		switch {
		case change.Kind == prefabs.ChangeSpec && sameName(name, g.arena.Player, "player.yaml"):
			spec, err := prefabs.LoadPlayerSpec(g.arena.Player)
			if err != nil {
				g.log.Warn("game: player reload failed", zap.String("file", name), zap.Error(err))
				continue
			}
			g.session.ApplyPlayerSpec(spec)
			g.log.Info("game: player reloaded", zap.String("file", name))

		case change.Kind == prefabs.ChangeSpec && sameName(name, g.cfg.Arena, ""):
			spec, err := prefabs.LoadArenaSpec(g.cfg.Arena)
			if err != nil {
				g.log.Warn("game: arena reload failed", zap.String("file", name), zap.Error(err))
				continue
			}
			g.arena.Audio = spec.Audio
			g.session.ApplyAudio(spec.Audio)
			g.volumes.refresh(g.session.Sounds)
			g.log.Info("game: arena audio reloaded", zap.String("file", name))

		case change.Kind == prefabs.ChangeScript && sameName(name, g.arena.Intro, ""):
			player, _ := prefabs.LoadPlayerSpec(g.arena.Player)
			if player == nil {
				player = &prefabs.PlayerSpec{}
			}
			tl, err := script.Load(g.arena.Intro, scriptVars(g.arena, player))
			if err != nil {
				g.log.Warn("game: intro reload failed", zap.String("file", name), zap.Error(err))
				continue
			}
			g.session.SetIntro(tl)
			g.log.Info("game: intro reloaded", zap.String("file", name), zap.Int("cues", len(tl.Cues)))
		}
	}
}

// sameName compares a changed file name with a prefab reference that may
// omit its extension.
func sameName(file, ref, fallback string) bool {
	if ref == "" {
		ref = fallback
	}
	if ref == "" {
		return false
	}
	ref = filepath.Base(ref)
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	return strings.EqualFold(file, ref) || strings.EqualFold(stem, ref)
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.session
	s.Draw(screen, g.cfg.Debug)

	if s.Over {
		g.rematch.Draw(screen)
	}
	if s.Paused {
		g.paused.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("game: close watcher", zap.Error(err))
		}
	}
	g.session.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := g.WindowSize()
	return float64(w), float64(h)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic(fmt.Sprintf("game: use LayoutF, not Layout(%d, %d)", outsideWidth, outsideHeight))
}
