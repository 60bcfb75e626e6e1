package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// Common paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Ticket builds an ESC/POS byte stream for thermal printers.
type Ticket struct {
	buf   bytes.Buffer
	width int
}

// NewTicket creates a ticket for paper that fits charWidth characters
// per line. Non-positive widths default to 58mm paper.
func NewTicket(charWidth int) *Ticket {
	if charWidth <= 0 {
		charWidth = Width58mm
	}
	t := &Ticket{width: charWidth}
	t.buf.Write([]byte{ESC, '@'})
	return t
}

// Width returns the line width in characters
func (t *Ticket) Width() int {
	return t.width
}

// LineFeed sends a line feed.
func (t *Ticket) LineFeed() *Ticket {
	t.buf.WriteByte(LF)
	return t
}

// FeedLines sends n line feeds.
func (t *Ticket) FeedLines(n int) *Ticket {
	for i := 0; i < n; i++ {
		t.buf.WriteByte(LF)
	}
	return t
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (t *Ticket) SetAlign(align int) *Ticket {
	t.buf.Write([]byte{ESC, 'a', byte(align)})
	return t
}

// SetBold enables or disables bold text.
func (t *Ticket) SetBold(on bool) *Ticket {
	b := byte(0)
	if on {
		b = 1
	}
	t.buf.Write([]byte{ESC, 'E', b})
	return t
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (t *Ticket) SetFontSize(size byte) *Ticket {
	t.buf.Write([]byte{GS, '!', size})
	return t
}

// Text writes s followed by a line feed, wrapping at the ticket width.
func (t *Ticket) Text(s string) *Ticket {
	for _, line := range wrap(s, t.width) {
		t.buf.WriteString(line)
		t.buf.WriteByte(LF)
	}
	return t
}

// TextF writes a formatted line of text followed by a line feed.
func (t *Ticket) TextF(format string, args ...interface{}) *Ticket {
	return t.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width separator line.
func (t *Ticket) Separator(char byte) *Ticket {
	t.buf.WriteString(strings.Repeat(string(char), t.width))
	t.buf.WriteByte(LF)
	return t
}

// KeyValue prints key on the left and value flush right on one line.
// The key is shortened when both do not fit.
func (t *Ticket) KeyValue(key, value string) *Ticket {
	t.buf.WriteString(t.columns(key, value))
	t.buf.WriteByte(LF)
	return t
}

// ItemLine prints "qty x name" with the total flush right.
// Example: "2x Widget              $20.00"
func (t *Ticket) ItemLine(qty, name, total string) *Ticket {
	return t.KeyValue(qty+"x "+name, total)
}

// Cut sends the paper cut command (full cut).
func (t *Ticket) Cut() *Ticket {
	t.buf.Write([]byte{GS, 'V', 0x00})
	return t
}

// PartialCut sends the partial cut command.
func (t *Ticket) PartialCut() *Ticket {
	t.buf.Write([]byte{GS, 'V', 0x01})
	return t
}

// Bytes returns the accumulated ESC/POS byte stream.
func (t *Ticket) Bytes() []byte {
	return t.buf.Bytes()
}

func (t *Ticket) columns(left, right string) string {
	room := t.width - len([]rune(right)) - 1
	if room < 1 {
		return right
	}
	l := []rune(left)
	if len(l) > room {
		l = l[:room]
	}
	return string(l) + strings.Repeat(" ", t.width-len(l)-len([]rune(right))) + right
}

// wrap splits s on spaces into lines of at most width runes. Words longer
// than width are hard-broken.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur []rune
	for _, w := range words {
		word := []rune(w)
		for len(word) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, word...)
		case len(cur)+1+len(word) <= width:
			cur = append(cur, ' ')
			cur = append(cur, word...)
		default:
			lines = append(lines, string(cur))
			cur = append([]rune(nil), word...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
