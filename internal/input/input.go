// Package input turns a raw terminal byte stream into held-key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses and auto-repeat, so a held key shows up as a
// stream of repeats; the window has to bridge the gap between two repeats.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's one-shot input events.
type Input struct {
	Quit    bool
	Enter   bool
	Space   bool
	Pause   bool
	Restart bool
	Number  int
	Pressed []Key
}

// Any reports whether the frame carried any input at all.
func (i Input) Any() bool {
	return len(i.Pressed) > 0 || i.Quit || i.Enter || i.Space || i.Pause || i.Restart || i.Number >= 0
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	held    map[Key]time.Time
	now     func() time.Time
	pending []byte // Unfinished escape sequence carried into the next frame
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		held: make(map[Key]time.Time),
		now:  time.Now,
	}
}

// ReadInput drains all available bytes from the stream (non-blocking),
// refreshes held-key timestamps and returns this frame's events.
// An escape sequence cut off at the end of the drain is kept for the next
// frame; a lone ESC only quits once a frame passes with nothing after it.
// A closed stream reports Quit.
func (s *Stream) ReadInput() Input {
	buf := s.pending
	s.pending = nil
	fresh := 0
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}

	now := s.now()
	inp := Input{Number: -1, Quit: closed}
	events, rest := parseBytes(buf, fresh == 0 || closed)
	if len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	for _, ev := range events {
		switch ev.kind {
		case eventKey:
			s.held[ev.key] = now
			inp.Pressed = append(inp.Pressed, ev.key)
		case eventQuit:
			inp.Quit = true
		case eventEnter:
			inp.Enter = true
		case eventSpace:
			inp.Space = true
		case eventPause:
			inp.Pause = true
		case eventRestart:
			inp.Restart = true
		case eventNumber:
			inp.Number = ev.number
		}
	}
	return inp
}

// IsKeyDown implements KeyChecker. A key is down if it was seen within the hold window.
func (s *Stream) IsKeyDown(k Key) bool {
	last, ok := s.held[k]
	if !ok {
		return false
	}
	return s.now().Sub(last) < keyHoldDuration
}

// ResetKeys forgets all held keys, e.g. when a new run starts.
func (s *Stream) ResetKeys() {
	clear(s.held)
}

type eventKind int

const (
	eventKey eventKind = iota
	eventQuit
	eventEnter
	eventSpace
	eventPause
	eventRestart
	eventNumber
)

type event struct {
	kind   eventKind
	key    Key
	number int
}

// parseBytes decodes terminal bytes into events.
// Arrow keys arrive as CSI (ESC [ ... A..D) or SS3 (ESC O A..D) sequences;
// other CSI sequences are skipped whole. A sequence cut off at the end of buf
// is returned as rest unless final is set, in which case a lone ESC quits.
func parseBytes(buf []byte, final bool) (events []event, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n, k, complete := scanEscape(buf[i:])
			if !complete {
				if !final {
					return events, buf[i:]
				}
				if n == 1 {
					events = append(events, event{kind: eventQuit})
				}
				i += n - 1
				continue
			}
			if n == 1 {
				events = append(events, event{kind: eventQuit})
				continue
			}
			if k != "" {
				events = append(events, event{kind: eventKey, key: k})
			}
			i += n - 1
			continue
		}

		switch b {
		case 0x03: // Ctrl+C
			events = append(events, event{kind: eventQuit})
		case '\n', '\r':
			events = append(events, event{kind: eventEnter})
		case ' ':
			events = append(events, event{kind: eventSpace})
		case 'p', 'P':
			events = append(events, event{kind: eventPause})
		case 'r', 'R':
			events = append(events, event{kind: eventRestart})
		case 'w', 'a', 's', 'd', 'q', 'e', 'z', 'c':
			events = append(events, event{kind: eventKey, key: Key(string(rune(b)))})
		case 'W', 'A', 'S', 'D', 'Q', 'E', 'Z', 'C':
			// Caps Lock must not disable shooting.
			events = append(events, event{kind: eventKey, key: Key(string(rune(b + 'a' - 'A')))})
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			events = append(events, event{kind: eventNumber, number: int(b - '0')})
		}
	}
	return events, nil
}

// arrowKeys maps the final byte of a cursor sequence to its key.
var arrowKeys = map[byte]Key{
	'A': KeyArrowUp,
	'B': KeyArrowDown,
	'C': KeyArrowRight,
	'D': KeyArrowLeft,
}

// scanEscape measures the escape sequence at the start of seq, which begins
// with ESC. It returns the bytes it spans, the arrow key it encodes (if any)
// and whether it is complete. An ESC followed by anything other than '[' or
// 'O' is a lone ESC of length 1.
func scanEscape(seq []byte) (n int, k Key, complete bool) {
	if len(seq) == 1 {
		return 1, "", false
	}

	switch seq[1] {
	case 'O':
		if len(seq) < 3 {
			return 2, "", false
		}
		return 3, arrowKeys[seq[2]], true
	case '[':
		// Parameter and intermediate bytes run up to a final byte in 0x40..0x7e.
		for j := 2; j < len(seq); j++ {
			c := seq[j]
			if c >= 0x40 && c <= 0x7e {
				return j + 1, arrowKeys[c], true
			}
			if c < 0x20 || c > 0x3f {
				// Malformed; drop what we scanned.
				return j, "", true
			}
		}
		return len(seq), "", false
	default:
		return 1, "", true
	}
}
