package sim

import (
	"github.com/tomz197/chaos-survival/internal/input"
	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/object"
	"github.com/tomz197/chaos-survival/internal/physics"
)

// fireDirection maps a held key to a compass direction.
type fireDirection struct {
	key    input.Key
	dx, dy float64
}

var fireDirections = []fireDirection{
	{input.KeyW, 0, -1},
	{input.KeyA, -1, 0},
	{input.KeyS, 0, 1},
	{input.KeyD, 1, 0},
	{input.KeyQ, -1, -1},
	{input.KeyE, 1, -1},
	{input.KeyZ, -1, 1},
	{input.KeyC, 1, 1},
}

// Step advances every entity by one tick. The phase order is fixed:
// movement, shooting, player bullets, bullet hits, enemies, enemy contact,
// enemy bullets, power-ups. The loss check is left to the caller.
func Step(s *State, keys input.KeyChecker, t config.Tuning) {
	if keys == nil {
		keys = input.NoKeys
	}

	movePlayer(s, keys)
	shoot(s, keys, t)
	advancePlayerBullets(s)
	resolveBulletHits(s, t)
	moveEnemies(s, t)
	resolveEnemyContacts(s, t)
	advanceEnemyBullets(s, t)
	collectPowerUps(s, t)
}

func movePlayer(s *State, keys input.KeyChecker) {
	s.Player.Move(
		keys.IsKeyDown(input.KeyArrowLeft),
		keys.IsKeyDown(input.KeyArrowRight),
		keys.IsKeyDown(input.KeyArrowUp),
		keys.IsKeyDown(input.KeyArrowDown),
		s.Screen,
	)
}

// shoot opens a fire window once the cooldown has passed. Every held
// direction fires one bullet; the window closes even if nothing was held.
func shoot(s *State, keys input.KeyChecker, t config.Tuning) {
	p := s.Player
	if object.Elapsed(s.Now, p.LastShot) <= t.ShotCooldown {
		return
	}

	cx, cy := p.Center()
	for _, dir := range fireDirections {
		if !keys.IsKeyDown(dir.key) {
			continue
		}
		ux, uy := physics.Normalize(dir.dx, dir.dy)
		s.AddPlayerBullet(object.NewBullet(cx, cy, t.BulletSize, ux*p.BulletSpeed, uy*p.BulletSpeed))
	}
	p.LastShot = s.Now
}

// advancePlayerBullets moves player bullets and prunes those whose
// top-left corner left the screen.
func advancePlayerBullets(s *State) {
	s.Player.Bullets = removeIf(s.Player.Bullets, func(b *object.Bullet) bool {
		b.Advance()
		return !s.Screen.Contains(b.X, b.Y)
	})
}

// moveEnemies steers every enemy toward the player and lets it fire
// along its heading once its cooldown has passed.
func moveEnemies(s *State, t config.Tuning) {
	px, py := s.Player.X, s.Player.Y
	for _, e := range s.Enemies {
		hx, hy := e.Chase(px, py)

		if object.Elapsed(s.Now, e.LastShot) > t.EnemyFireCooldown {
			cx, cy := e.Center()
			s.AddEnemyBullet(object.NewBullet(cx, cy, t.BulletSize, hx*t.EnemyBulletSpeed, hy*t.EnemyBulletSpeed))
			e.LastShot = s.Now
		}
	}
}

// advanceEnemyBullets moves enemy bullets. A bullet touching the player is
// consumed; one whose top-left left the screen is pruned.
func advanceEnemyBullets(s *State, t config.Tuning) {
	s.EnemyBullets = removeIf(s.EnemyBullets, func(b *object.Bullet) bool {
		b.Advance()
		if physics.Overlaps(b.Rect, s.Player.Rect) {
			hurtPlayer(s, t)
			return true
		}
		return !s.Screen.Contains(b.X, b.Y)
	})
}
