package sim

import (
	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/object"
	"github.com/tomz197/chaos-survival/internal/physics"
)

// resolveBulletHits checks every live (bullet, enemy) pair in insertion order.
// A hit on an unshielded enemy damages it, scores, and stops the bullet.
// The stopped bullet is not removed; it stays inert until pruned and keeps
// damaging whatever still overlaps it on later ticks.
func resolveBulletHits(s *State, t config.Tuning) {
	p := s.Player
	dead := false

	for _, b := range p.Bullets {
		for _, e := range s.Enemies {
			if e.Health <= 0 || e.Shielded {
				continue
			}
			if !physics.Overlaps(b.Rect, e.Rect) {
				continue
			}

			p.Score += t.HitScore
			b.Stop()
			if e.Hit(t.BulletDamage) {
				p.Score += t.KillScore
				dead = true
			}
		}
	}

	if dead {
		s.Enemies = removeIf(s.Enemies, func(e *object.Enemy) bool { return e.Health <= 0 })
	}
}

// resolveEnemyContacts removes every enemy touching the player. Each
// contact hurts the player unless the shield is up.
func resolveEnemyContacts(s *State, t config.Tuning) {
	s.Enemies = removeIf(s.Enemies, func(e *object.Enemy) bool {
		if !physics.Overlaps(s.Player.Rect, e.Rect) {
			return false
		}
		hurtPlayer(s, t)
		return true
	})
}

// collectPowerUps applies and removes every power-up touching the player.
func collectPowerUps(s *State, t config.Tuning) {
	s.PowerUps = removeIf(s.PowerUps, func(pu *object.PowerUp) bool {
		if !physics.Overlaps(s.Player.Rect, pu.Rect) {
			return false
		}
		applyPowerUp(s, pu.Kind, t)
		return true
	})
}

// hurtPlayer applies contact damage and the damage cue unless shielded.
func hurtPlayer(s *State, t config.Tuning) {
	if s.Player.ShieldActive {
		return
	}
	s.Player.Damage(t.ContactDamage)
	s.flash(FlashDamage, t)
}

// applyPowerUp applies a pickup. Timed buffs restart their window on re-pickup.
func applyPowerUp(s *State, kind object.PowerUpKind, t config.Tuning) {
	p := s.Player
	until := s.Now + t.BuffDuration

	switch kind {
	case object.PowerUpHealth:
		p.Heal(t.HealAmount, t.MaxHealth)
		s.flash(FlashHeal, t)
		return
	case object.PowerUpShield:
		p.ShieldActive = true
		s.setEffect(EffectShield, until)
	case object.PowerUpSpeed:
		p.Speed += t.SpeedBoost
		s.setEffect(EffectSpeed, until)
	case object.PowerUpBullet:
		p.BulletSpeed += t.BulletBoost
		s.setEffect(EffectBulletSpeed, until)
	}
	s.flash(FlashPickup, t)
}
