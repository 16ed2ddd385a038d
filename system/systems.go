package system

import (
	"time"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/obj"
	"go.uber.org/zap"
)

const (
	FireCooldown = 250 * time.Millisecond
	ShotDamage   = 10
	ShotReach    = 480.0
	shotStep     = 12.0
	shotSize     = 4.0

	SoundFire      = "Laser"
	SoundHit       = "Hit"
	SoundCountdown = "Countdown"
)

// InputSystem snapshots every device. It runs first.
type InputSystem struct{}

func (InputSystem) Update(s *Session) {
	s.Input.Update()
}

// ControlSystem turns each player's bindings into movement, aim and shots.
type ControlSystem struct{}

func (ControlSystem) Update(s *Session) {
	for _, p := range s.Players {
		move, aim := s.Mapper.Velocity(&p.Scheme, p.Joystick)
		p.Entity.Move(move.X, move.Y)
		switch {
		case !s.Mapper.UsesJoystick(p.Joystick):
			p.Entity.Steer(aim, false)
		case s.Mapper.Aiming(p.Joystick):
			p.Entity.Steer(aim, true)
		default:
			// centred stick keeps the heading
			p.Entity.Steer(0, false)
		}

		if s.Mapper.Skip(&p.Scheme, p.Joystick) {
			s.SkipIntro()
		}
		if s.Mapper.Fire(&p.Scheme, p.Joystick) {
			s.fire(p)
		}
	}
}

// MovementSystem integrates both players and resolves edges and the
// player-player collision.
type MovementSystem struct{}

func (MovementSystem) Update(s *Session) {
	f := s.Frame
	for _, p := range s.Players {
		p.Entity.Update(f)
		p.Entity.CheckEdges(f.Width, f.Height)
	}
	s.Players[0].Entity.CheckOtherPlayerEdges(s.Players[1].Entity)
}

// CombatSystem spends lives of dead players and ends the match when one
// runs out.
type CombatSystem struct{}

func (CombatSystem) Update(s *Session) {
	for _, p := range s.Players {
		if p.Entity.Health.IsAlive() {
			continue
		}
		if p.Entity.LoseLife() {
			p.respawn()
			s.log.Info("session: life lost", zap.Int("player", p.Index+1), zap.Int("lives", p.Entity.LivesLeft))
			continue
		}
		s.finish(s.opponent(p))
		return
	}
}

// ExecutorSystem fires due deferred calls.
type ExecutorSystem struct{}

func (ExecutorSystem) Update(s *Session) {
	s.Executor.Update()
}

// SoundSystem steps music fades and prunes finished channels.
type SoundSystem struct{}

func (SoundSystem) Update(s *Session) {
	s.Sounds.Update()
}

// fire plays the shot sound and damages the opponent if the aim line
// crosses its hitbox. Further shots wait for FireCooldown.
func (s *Session) fire(p *Player) {
	if p.cooling {
		return
	}
	p.cooling = true
	s.Executor.Wait(FireCooldown, func() { p.cooling = false }, nil)
	s.Sounds.Play(SoundFire, 0)

	target := s.opponent(p)
	if target == nil || !shotHits(p.Entity, target.Entity) {
		return
	}
	// the health hook plays the hit sound
	target.Entity.Health.ApplyDamage(ShotDamage)
}

// shotHits walks the aim line from the shooter's center in small boxes.
func shotHits(from, to *obj.Controllable) bool {
	aim, ok := obj.ComponentOf[*obj.AimIndicator](from, obj.KindAimIndicator)
	if !ok {
		return false
	}
	dx, dy := aim.Direction()
	center := from.Center()
	for d := 0.0; d <= ShotReach; d += shotStep {
		x := center.X + dx*d
		y := center.Y + dy*d
		if to.CheckIntersection(common.NewRect(x-shotSize/2, y-shotSize/2, shotSize, shotSize)) {
			return true
		}
	}
	return false
}
