// Package input turns a raw terminal byte stream into per-tick input snapshots.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key counts as held after its last byte.
// Terminal auto-repeat is the only signal for a held key, so this has to bridge
// the gap between repeats.
const keyHoldDuration = 120 * time.Millisecond

// Input is one tick's input snapshot.
type Input struct {
	Quit  bool // Leave the game
	Left  bool // Held
	Right bool // Held
	Fire  bool // Edge: fire key pressed since the previous snapshot
	Start bool // Edge: start/restart key pressed since the previous snapshot

	Pressed []byte // Raw bytes consumed for this snapshot
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks held keys between reads.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error (EOF on disconnect).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
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

// ReadInput drains all available bytes from the stream without blocking
// and builds the snapshot for the current tick.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
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

	in := parse(buf, &s.state, now)
	if s.closed {
		in.Quit = true
	}
	return in
}

// parse interprets buf as the bytes received since the previous snapshot.
// Held keys are tracked in state so they survive ticks without new bytes.
func parse(buf []byte, state *keyState, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'a', 'A', 'h', 'H':
			state.left = now
		case 'd', 'D', 'l', 'L':
			state.right = now
		case ' ':
			in.Fire = true
		case '\n', '\r':
			in.Start = true
		}
	}

	in.Left = !state.left.IsZero() && now.Sub(state.left) < keyHoldDuration
	in.Right = !state.right.IsZero() && now.Sub(state.right) < keyHoldDuration
	return in
}

// ResetKeyInput forgets held keys, so a key held through a restart does not
// leak into the new session.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}
