package vm

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalChannel is the interactive Input/Output pair used when both
// stdin and stdout are attached to a real terminal. It puts the terminal
// into raw mode so IN delivers a single keypress without waiting for
// Enter, and so the terminal driver never substitutes a newline for true
// end-of-stream (§9's open question: only a closed stream yields the
// 0xFFFFFFFF sentinel).
//
// Unlike the teacher's async stdin reader, TerminalChannel does its read
// synchronously on the calling goroutine: the Execution Engine already
// blocks on IN by design (spec §5), so there is nothing for a background
// reader to buy us, and a background goroutine reading ahead of the VM
// would make bytes vanish if the program halts before consuming them.
type TerminalChannel struct {
	in       *os.File
	out      *os.File
	fd       int
	oldState *term.State
	raw      bool
}

// NewTerminalChannel puts in into raw mode; it returns an error if in is
// not a terminal (out is not checked). Call Restore when the machine halts
// or errors, or on program exit, so a crashed program never leaves the
// caller's shell in raw mode.
func NewTerminalChannel(in, out *os.File) (*TerminalChannel, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	return &TerminalChannel{in: in, out: out, fd: fd, oldState: oldState, raw: true}, nil
}

// Restore returns the terminal to its original mode. Safe to call more
// than once.
func (c *TerminalChannel) Restore() error {
	if !c.raw {
		return nil
	}
	c.raw = false
	return term.Restore(c.fd, c.oldState)
}

// ReadByte reads exactly one raw byte from the terminal. Only a true
// stream close (e.g. the pty going away) is reported as io.EOF; a
// keypress of Ctrl-D on an unmodified raw terminal arrives as the literal
// byte 0x04, not EOF, since raw mode disables the line discipline that
// would otherwise interpret it.
func (c *TerminalChannel) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := c.in.Read(buf[:])
	if n == 1 {
		return buf[0], nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return 0, err
}

// WriteByte writes one raw byte to the terminal.
func (c *TerminalChannel) WriteByte(b byte) error {
	_, err := c.out.Write([]byte{b})
	return err
}
