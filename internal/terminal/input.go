package terminal

import (
	"bufio"
	"context"
	"io"
)

// Key is a decoded keyboard command
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyActivate
	KeyRestart
	KeyQuit
)

// ReadKeys decodes keys from r until ctx is done or r fails, sending each
// command on the returned channel. The channel is closed when reading stops.
func ReadKeys(ctx context.Context, r io.Reader) <-chan Key {
	keys := make(chan Key)
	go func() {
		defer close(keys)
		br := bufio.NewReader(r)
		for {
			k, err := decodeKey(br)
			if err != nil {
				return
			}
			if k == KeyNone {
				continue
			}
			select {
			case keys <- k:
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}

func decodeKey(br *bufio.Reader) (Key, error) {
	b, err := br.ReadByte()
	if err != nil {
		return KeyNone, err
	}

	switch b {
	case 'q', 'Q', 3, 4: // Ctrl-C, Ctrl-D
		return KeyQuit, nil
	case 'r', 'R':
		return KeyRestart, nil
	case ' ', '\r', '\n':
		return KeyActivate, nil
	case 'k', 'w':
		return KeyUp, nil
	case 'j', 's':
		return KeyDown, nil
	case 'h', 'a':
		return KeyLeft, nil
	case 'l', 'd':
		return KeyRight, nil
	case 0x1b:
		return decodeEscape(br)
	}
	return KeyNone, nil
}

// decodeEscape reads the rest of an arrow key sequence: ESC [ A..D or ESC O A..D.
// It blocks for the next byte, so a sequence split across reads still decodes.
// A byte that does not continue a sequence is left for the next key.
func decodeEscape(br *bufio.Reader) (Key, error) {
	b, err := br.ReadByte()
	if err != nil {
		return KeyNone, err
	}
	if b != '[' && b != 'O' {
		if err := br.UnreadByte(); err != nil {
			return KeyNone, err
		}
		return KeyNone, nil
	}
	b, err = br.ReadByte()
	if err != nil {
		return KeyNone, err
	}
	switch b {
	case 'A':
		return KeyUp, nil
	case 'B':
		return KeyDown, nil
	case 'C':
		return KeyRight, nil
	case 'D':
		return KeyLeft, nil
	}
	return KeyNone, nil
}
