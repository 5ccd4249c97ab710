// Package input turns raw terminal bytes into per-frame key presses.
package input

import (
	"bufio"
)

const ctrlC = 0x03

// Frame holds the key presses seen since the previous frame.
// Presses are counted so that fast typing between frames is not lost.
type Frame struct {
	Left    int
	Right   int
	Fire    int
	Confirm int
	Quit    bool
	Pressed []byte
}

// Any reports whether any byte arrived this frame.
func (f Frame) Any() bool {
	return len(f.Pressed) > 0 || f.Quit
}

// Stream delivers input bytes from a reader goroutine via a channel.
type Stream struct {
	ch     chan byte
	closed bool // Set by the consumer once the channel is drained and closed
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error, including EOF.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadFrame drains every available byte without blocking and parses it.
// A closed stream reports Quit on every call.
func ReadFrame(s *Stream) Frame {
	var buf []byte
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	f := Parse(buf)
	if s.closed {
		f.Quit = true
	}
	return f
}

// Parse decodes a batch of terminal bytes. Arrow keys arrive as
// ESC [ C / ESC [ D, or ESC O C / ESC O D in application cursor mode.
func Parse(buf []byte) Frame {
	f := Frame{Pressed: buf}
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			switch buf[i+2] {
			case 'C':
				f.Right++
			case 'D':
				f.Left++
			}
			i += 2
			continue
		}

		switch b {
		case 'a', 'A', 'h', 'H':
			f.Left++
		case 'd', 'D', 'l', 'L':
			f.Right++
		case ' ':
			f.Fire++
			f.Confirm++
		case '\r', '\n':
			f.Confirm++
		case 'q', 'Q', ctrlC:
			f.Quit = true
		}
	}
	return f
}
