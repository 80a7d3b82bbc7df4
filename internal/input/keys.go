package input

// Key names a physical key the simulation can ask about.
// Letter keys use their lowercase character.
type Key string

// Movement keys.
const (
	KeyArrowLeft  Key = "arrowleft"
	KeyArrowRight Key = "arrowright"
	KeyArrowUp    Key = "arrowup"
	KeyArrowDown  Key = "arrowdown"
)

// Shooting keys, one per compass direction.
const (
	KeyW Key = "w" // N
	KeyA Key = "a" // W
	KeyS Key = "s" // S
	KeyD Key = "d" // E
	KeyQ Key = "q" // NW
	KeyE Key = "e" // NE
	KeyZ Key = "z" // SW
	KeyC Key = "c" // SE
)

// KeyChecker reports whether a key is currently held down.
// Front-ends implement it; the simulation only ever reads through it.
type KeyChecker interface {
	IsKeyDown(k Key) bool
}

// KeySet is a KeyChecker backed by a fixed set of held keys.
type KeySet map[Key]bool

// IsKeyDown implements KeyChecker.
func (s KeySet) IsKeyDown(k Key) bool {
	return s[k]
}

// NoKeys is a KeyChecker with nothing held.
var NoKeys KeyChecker = KeySet(nil)
