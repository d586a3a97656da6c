// Package input turns a raw terminal byte stream into per-tick key state.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, never releases.
const keyHoldDuration = 30 * time.Millisecond

// Input is one tick's sample. Left, Right and Fire are held state;
// Confirm and Quit are discrete events seen during this tick only.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Confirm bool
	Quit    bool
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch        chan byte
	done      chan struct{}
	closeOnce sync.Once
	state     keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits on a read error or after Close.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
}

// Close stops delivery. A reader goroutine blocked on a full buffer exits;
// one blocked in a read exits when that read returns.
func Close(s *Stream) {
	s.closeOnce.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream (non-blocking).
// A closed stream (EOF on the terminal) reads as Quit.
func ReadInput(s *Stream) Input {
	var buf []byte
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
		default:
			break drain
		}
	}

	in := parse(&s.state, buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// Reset forgets held keys so a confirm press does not leak into the next screen.
func Reset(s *Stream) {
	s.state = keyState{}
}

// parse applies buf to the held-key timestamps and builds the tick's Input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A': // Up arrow
				state.fire = now
				i += 2
				continue
			case 'C': // Right arrow
				state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				state.left = now
				i += 2
				continue
			case 'B': // Down arrow, unused
				i += 2
				continue
			}
		}

		applyByte(state, &in, b, now)
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Fire = now.Sub(state.fire) < keyHoldDuration
	return in
}

// applyByte updates held-key timestamps and discrete events for a single byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.fire = now
	case ' ':
		state.fire = now
		in.Confirm = true
	case '\n', '\r':
		in.Confirm = true
	}
}
