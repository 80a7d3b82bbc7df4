package sim

import (
	"time"

	"github.com/tomz197/chaos-survival/internal/loop/config"
)

// Flash is the transient background cue the renderer shows after an event.
type Flash int

const (
	FlashNone   Flash = iota
	FlashDamage       // Player took damage
	FlashHeal         // Health power-up picked up
	FlashPickup       // Any other power-up picked up
)

// Color returns the background color name for the cue.
func (f Flash) Color() string {
	switch f {
	case FlashDamage:
		return "darkred"
	case FlashHeal:
		return "green"
	case FlashPickup:
		return "yellow"
	default:
		return "black"
	}
}

func (f Flash) String() string {
	if f == FlashNone {
		return "none"
	}
	return f.Color()
}

// EffectKind names a timed effect.
type EffectKind int

const (
	EffectShield EffectKind = iota
	EffectSpeed
	EffectBulletSpeed
	EffectFlash
)

// Effect is a deadline on the simulation clock after which an effect is reverted.
type Effect struct {
	Kind      EffectKind
	ExpiresAt time.Duration
}

// setEffect starts or restarts an effect. At most one record per kind exists;
// re-triggering moves the deadline instead of stacking timers.
func (s *State) setEffect(kind EffectKind, expiresAt time.Duration) {
	for i := range s.effects {
		if s.effects[i].Kind == kind {
			s.effects[i].ExpiresAt = expiresAt
			return
		}
	}
	s.effects = append(s.effects, Effect{Kind: kind, ExpiresAt: expiresAt})
}

// EffectRemaining returns how long an effect still runs, or 0 if inactive.
func (s *State) EffectRemaining(kind EffectKind) time.Duration {
	for _, e := range s.effects {
		if e.Kind == kind && e.ExpiresAt > s.Now {
			return e.ExpiresAt - s.Now
		}
	}
	return 0
}

// Effects returns a copy of the pending effect records.
func (s *State) Effects() []Effect {
	return append([]Effect(nil), s.effects...)
}

// expireEffects reverts every effect whose deadline has been reached.
func (s *State) expireEffects(t config.Tuning) {
	s.effects = removeIf(s.effects, func(e Effect) bool {
		if s.Now < e.ExpiresAt {
			return false
		}
		s.revert(e.Kind, t)
		return true
	})
}

func (s *State) revert(kind EffectKind, t config.Tuning) {
	switch kind {
	case EffectShield:
		s.Player.ShieldActive = false
	case EffectSpeed:
		s.Player.Speed = s.Player.BaseSpeed
	case EffectBulletSpeed:
		s.Player.BulletSpeed = t.BulletSpeed
	case EffectFlash:
		s.Flash = FlashNone
	}
}

// cancelEffects drops all pending records without reverting them.
// Used when a session ends so its final state stays inspectable.
func (s *State) cancelEffects() {
	s.effects = nil
}

// flash shows a cue for the configured flash duration.
func (s *State) flash(f Flash, t config.Tuning) {
	s.Flash = f
	s.setEffect(EffectFlash, s.Now+t.FlashDuration)
}
