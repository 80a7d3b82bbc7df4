package draw

import (
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize keeps each write inside one typical network packet.
const maxChunkSize = 1400

// Frame collects one frame of terminal output (canvas cells, HUD text,
// overlays) and sends it in packet-sized writes. Positions passed to the
// text methods are 1-based and relative to the render area; the centering
// offset is added here.
type Frame struct {
	out    io.Writer
	buf    []byte
	offCol int
	offRow int
}

// NewFrame creates a Frame that flushes to w.
func NewFrame(w io.Writer, offsetCol, offsetRow int) *Frame {
	return &Frame{
		out:    w,
		buf:    make([]byte, 0, 16*1024),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area, e.g. after a resize.
func (f *Frame) SetOffset(offsetCol, offsetRow int) {
	f.offCol = offsetCol
	f.offRow = offsetRow
}

// Write implements io.Writer so Canvas.Render can draw into the frame.
func (f *Frame) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	return len(p), nil
}

var _ io.Writer = (*Frame)(nil)

// ClearScreen queues a full terminal clear.
func (f *Frame) ClearScreen() {
	f.buf = append(f.buf, "\033[H\033[2J"...)
}

func (f *Frame) moveTo(col, row int) {
	f.buf = append(f.buf, "\033["...)
	f.buf = strconv.AppendInt(f.buf, int64(row+f.offRow), 10)
	f.buf = append(f.buf, ';')
	f.buf = strconv.AppendInt(f.buf, int64(col+f.offCol), 10)
	f.buf = append(f.buf, 'H')
}

// Text writes s at (col, row) in the terminal's default colors.
func (f *Frame) Text(col, row int, s string) {
	f.moveTo(col, row)
	f.buf = append(f.buf, s...)
}

// Colored writes s at (col, row) in the fg color.
func (f *Frame) Colored(col, row int, fg Color, s string) {
	f.Badge(col, row, fg, ColorNone, s)
}

// Badge writes s at (col, row) in fg on bg. ColorNone leaves a side unset.
func (f *Frame) Badge(col, row int, fg, bg Color, s string) {
	f.moveTo(col, row)
	if fg != ColorNone {
		f.buf = append(f.buf, fg.Fg()...)
	}
	if bg != ColorNone {
		f.buf = append(f.buf, bg.Bg()...)
	}
	f.buf = append(f.buf, s...)
	f.buf = append(f.buf, ColorReset...)
}

// Len returns the number of queued bytes.
func (f *Frame) Len() int {
	return len(f.buf)
}

// Flush sends the queued bytes and empties the frame. Each underlying Write
// carries at most maxChunkSize bytes and ends on a rune boundary.
func (f *Frame) Flush() error {
	data := f.buf
	f.buf = f.buf[:0]

	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		for n < len(data) && n > 0 && !utf8.RuneStart(data[n]) {
			n--
		}
		if _, err := f.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc asks the terminal behind os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedTermSize returns a TermSizeFunc that always reports width×height.
func FixedTermSize(width, height int) TermSizeFunc {
	return func() (int, int, error) { return width, height, nil }
}
