package system

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/control"
	"github.com/milk9111/arena/executor"
	"github.com/milk9111/arena/input"
	"github.com/milk9111/arena/logging"
	"github.com/milk9111/arena/obj"
	"github.com/milk9111/arena/prefabs"
	"github.com/milk9111/arena/script"
	"github.com/milk9111/arena/sound"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	JoystickControl = "joystick"

	GuardNotPaused = "not_paused"
	GuardBothAlive = "both_alive"
	GuardTutorial  = "tutorial"

	DefaultLives  = 3
	endFadeFrames = 90
)

var playerColors = [2]color.Color{colornames.Royalblue, colornames.Tomato}

// Player binds an entity to its control layout and spawn point.
type Player struct {
	Index    int
	Entity   *obj.Controllable
	Scheme   control.Scheme
	Joystick int
	Spawn    cp.Vector
	Color    color.Color

	cooling bool
}

func (p *Player) respawn() {
	p.Entity.Position = p.Spawn
	p.Entity.Velocity = cp.Vector{}
	p.cooling = false
}

// Options wires a session to its collaborators. Sounds, Clock and Log may
// be nil.
type Options struct {
	Arena  *prefabs.ArenaSpec
	Player *prefabs.PlayerSpec
	Intro  *script.Timeline
	Source input.Source
	Sounds *sound.Engine
	Clock  executor.Clock
	Log    *zap.Logger
}

// Session owns the per-match state: devices, deferred calls, sounds and
// the two players. It replaces process-wide singletons; restart a match
// with Restart rather than building a new session.
type Session struct {
	ID string

	Input    *input.State
	Mapper   *control.Mapper
	Executor *executor.Executor
	Sounds   *sound.Engine
	Frame    *obj.Frame
	Players  [2]*Player

	Paused bool
	Over   bool
	Winner *Player

	arena  *prefabs.ArenaSpec
	player *prefabs.PlayerSpec
	intro  *script.Timeline

	clock  executor.Clock
	log    *zap.Logger
	active *Scheduler
	idle   *Scheduler

	introHandles []executor.Handle
	// devicesReady is set once joysticks were enumerated from inside the
	// game loop.
	devicesReady bool
}

var ErrNoArena = errors.New("system: session needs an arena")

func NewSession(opts Options) (*Session, error) {
	if opts.Arena == nil {
		return nil, ErrNoArena
	}
	if err := opts.Arena.Validate(); err != nil {
		return nil, err
	}
	log := logging.OrNop(opts.Log)
	clock := opts.Clock
	if clock == nil {
		clock = executor.NewMonotonicClock()
	}
	sounds := opts.Sounds
	if sounds == nil {
		sounds = sound.NewEngine(nil, log)
	}
	playerSpec := opts.Player
	if playerSpec == nil {
		playerSpec = &prefabs.PlayerSpec{}
	}

	in := input.NewState(opts.Source)
	s := &Session{
		Input:    in,
		Mapper:   control.NewMapper(in),
		Executor: executor.New(clock),
		Sounds:   sounds,
		Frame:    obj.NewFrame(float64(opts.Arena.Window.Width), float64(opts.Arena.Window.Height)),
		arena:    opts.Arena,
		player:   playerSpec,
		intro:    opts.Intro,
		clock:    clock,
		log:      log,
		active:   NewScheduler(InputSystem{}, ControlSystem{}, MovementSystem{}, CombatSystem{}, ExecutorSystem{}, SoundSystem{}),
		idle:     NewScheduler(InputSystem{}, SoundSystem{}),
	}
	s.Frame.Tutorial = opts.Arena.Tutorial

	joysticks := 0
	for i := range s.Players {
		p, err := s.newPlayer(i, &joysticks)
		if err != nil {
			return nil, err
		}
		s.Players[i] = p
	}
	s.Frame.PlayerOne = s.Players[0].Entity
	s.Frame.PlayerTwo = s.Players[1].Entity
	return s, nil
}

func (s *Session) newPlayer(i int, joysticks *int) (*Player, error) {
	fallback := [2]control.Scheme{control.KeyboardPlayerOne, control.KeyboardPlayerTwo}[i]
	p := &Player{
		Index:    i,
		Scheme:   fallback,
		Joystick: -1,
		Spawn:    cp.Vector{X: s.arena.Spawns[i].X, Y: s.arena.Spawns[i].Y},
		Color:    playerColors[i],
	}

	name := s.arena.Control(i)
	if strings.EqualFold(strings.TrimSpace(name), JoystickControl) {
		// The keyboard layout stays as the fallback when the pad is missing.
		p.Joystick = *joysticks
		*joysticks++
	} else if name != "" {
		scheme, err := control.SchemeByName(name)
		if err != nil {
			return nil, fmt.Errorf("system: player %d: %w", i+1, err)
		}
		p.Scheme = scheme
	}

	p.Entity = obj.NewControllable(p.Spawn, true, s.lives(), s.entityConfig())
	p.Entity.Health.OnDamage = func(*obj.Health, int) {
		s.Sounds.Play(SoundHit, 0)
	}
	p.Entity.Health.OnDeath = func(*obj.Health) {
		s.log.Info("session: player down", zap.Int("player", i+1), zap.Int("lives", p.Entity.LivesLeft))
	}
	return p, nil
}

func (s *Session) lives() int {
	if s.player.Lives <= 0 {
		return DefaultLives
	}
	return s.player.Lives
}

func (s *Session) entityConfig() obj.Config {
	spec := s.player
	return obj.Config{
		Width:        spec.Width,
		Height:       spec.Height,
		Speed:        spec.Speed,
		MaxSpeed:     spec.MaxSpeed,
		Acceleration: spec.Acceleration,
		Friction:     spec.Friction,
		Health:       spec.Health,
	}
}

// Start loads the arena's sounds and music, arms the executor and
// schedules the intro. Devices are enumerated by the first Update, since
// ebiten only lists gamepads once its loop runs.
func (s *Session) Start(ctx context.Context) error {
	s.ID = uuid.NewString()
	s.log = s.log.With(zap.String("session", s.ID))

	entries := make([]sound.Entry, 0, len(s.arena.Sounds))
	for _, spec := range s.arena.Sounds {
		entries = append(entries, sound.Entry{Name: spec.Name, Path: spec.Path})
	}
	if err := s.Sounds.LoadAll(ctx, entries); err != nil {
		return fmt.Errorf("system: start: %w", err)
	}
	s.ApplyAudio(s.arena.Audio)
	if s.arena.Audio.Track != "" {
		if err := s.Sounds.LoadMusic(s.arena.Audio.Track); err == nil {
			_ = s.Sounds.PlayMusic(s.arena.Audio.TrackLoops)
		}
	}

	s.Executor.Init()
	s.tick()
	s.scheduleIntro()
	s.log.Info("session: started",
		zap.String("arena", s.arena.Name),
		zap.Int("sounds", len(entries)),
	)
	return nil
}

// Restart clears deferred calls, sounds and input edges, then puts both
// players back on their spawn points with full lives.
func (s *Session) Restart() {
	s.Executor.Reset()
	s.Sounds.Reset()
	s.Input.Reset()

	s.ID = uuid.NewString()
	s.Paused = false
	s.Over = false
	s.Winner = nil
	for _, p := range s.Players {
		p.Entity.LivesLeft = s.lives()
		p.Entity.Health.Restore()
		p.respawn()
	}

	if s.Sounds.MusicTrack() != "" {
		_ = s.Sounds.PlayMusic(s.arena.Audio.TrackLoops)
	}
	s.tick()
	s.scheduleIntro()
	s.log.Info("session: restarted", zap.String("next", s.ID))
}

func (s *Session) Close() {
	s.Executor.Reset()
	s.Sounds.Close()
}

func (s *Session) scheduleIntro() {
	s.introHandles = nil
	if s.intro == nil {
		return
	}
	handles, err := s.intro.Schedule(s.Executor, s.Sounds, s.guards())
	if err != nil {
		s.log.Warn("session: intro not scheduled", zap.String("script", s.intro.Name), zap.Error(err))
		return
	}
	for i, h := range handles {
		if !s.intro.Cues[i].Repeats() {
			s.introHandles = append(s.introHandles, h)
		}
	}
}

// SkipIntro cancels the one-shot intro cues still pending. Repeating cues
// keep running.
func (s *Session) SkipIntro() {
	if len(s.introHandles) == 0 {
		return
	}
	cancelled := 0
	for _, h := range s.introHandles {
		if s.Executor.Cancel(h) {
			cancelled++
		}
	}
	s.introHandles = nil
	s.Sounds.Stop(SoundCountdown)
	s.log.Debug("session: intro skipped", zap.Int("cancelled", cancelled))
}

// SetIntro replaces the intro timeline used from the next Restart.
func (s *Session) SetIntro(tl *script.Timeline) {
	s.intro = tl
}

func (s *Session) guards() script.Guards {
	return script.Guards{
		GuardNotPaused: func() bool { return !s.Paused },
		GuardBothAlive: func() bool {
			return s.Players[0].Entity.Health.IsAlive() && s.Players[1].Entity.Health.IsAlive()
		},
		GuardTutorial: func() bool { return s.Frame.Tutorial },
	}
}

// Update advances the match by one frame. The first call enumerates
// devices. While paused or after the match ends only input and sound keep
// running.
func (s *Session) Update() {
	if !s.devicesReady {
		s.Input.Init()
		s.devicesReady = true
		s.log.Info("session: devices enumerated", zap.Int("joysticks", s.Input.JoystickCount()))
	}
	s.tick()
	if s.Paused || s.Over {
		s.idle.Update(s)
		return
	}
	s.active.Update(s)
}

func (s *Session) tick() {
	now := s.clock.Now()
	prev := s.Frame.CurrentTime
	s.Frame.Reset(prev, now, now-prev)
}

func (s *Session) finish(winner *Player) {
	s.Over = true
	s.Winner = winner
	s.Executor.Reset()
	s.introHandles = nil
	s.Sounds.FadeOutMusic(endFadeFrames)
	if winner != nil {
		s.log.Info("session: match over", zap.Int("winner", winner.Index+1))
	}
}

func (s *Session) opponent(p *Player) *Player {
	switch p {
	case s.Players[0]:
		return s.Players[1]
	case s.Players[1]:
		return s.Players[0]
	}
	return nil
}

// ApplyPlayerSpec retunes both players in place: size, movement and
// maximum health. A new lives count applies from the next Restart.
func (s *Session) ApplyPlayerSpec(spec *prefabs.PlayerSpec) {
	if spec == nil {
		return
	}
	s.player = spec
	cfg := s.entityConfig()
	maxHealth := cfg.Health
	if maxHealth <= 0 {
		maxHealth = obj.MaxHealth
	}
	for _, p := range s.Players {
		p.Entity.ApplyConfig(cfg)
		p.Entity.Health.SetMax(maxHealth)
	}
}

// ApplyAudio sets both volume buses.
func (s *Session) ApplyAudio(audio prefabs.AudioSpec) {
	s.Sounds.SetSFXVolume(audio.SFXVolume)
	s.Sounds.SetMusicVolume(audio.MusicVolume)
}

func (s *Session) Arena() *prefabs.ArenaSpec {
	return s.arena
}
