package vm

import (
	"fmt"
	"io"
)

// Machine is the singleton, process-lifetime VM state: the eight 32-bit
// registers, the program counter, the running flag, and the Array Table
// that backs both code and data. The Machine is the sole mutator of
// registers, pc, and running; the Array Table is the sole mutator of
// array contents and the identifier space.
type Machine struct {
	registers [8]uint32
	pc        uint32
	running   bool

	arrays *arrayTable

	in  Input
	out Output

	trace    io.Writer // non-nil enables per-instruction tracing to this writer
	maxSteps uint64    // 0 means unlimited
}

// NewMachine constructs a Machine with all registers zeroed and the code
// array (id 0) initialized from scroll, a byte stream of length 4*N. It
// returns a LoadError if len(scroll) is not a multiple of 4.
func NewMachine(scroll []byte, in Input, out Output) (*Machine, error) {
	m := &Machine{
		arrays:  newArrayTable(),
		in:      in,
		out:     out,
		running: true,
	}

	if err := m.arrays.loadProgram(scroll); err != nil {
		return nil, err
	}

	return m, nil
}

// SetTrace enables per-instruction diagnostic tracing to w. Tracing only
// ever writes to w, never to the program's own Output — it cannot pause,
// step, or otherwise alter execution, so it is diagnostics, not a
// debugger.
func (m *Machine) SetTrace(w io.Writer) {
	m.trace = w
}

// SetMaxSteps caps the number of fetch-decode-execute cycles Run will
// perform before giving up with ErrOutOfBoundsCode-free exhaustion. A
// value of 0 (the default) means unlimited, which is always correct for
// an ordinary invocation — it exists only to bound runaway programs under
// test.
func (m *Machine) SetMaxSteps(n uint64) {
	m.maxSteps = n
}

// Running reports whether the machine has not yet halted.
func (m *Machine) Running() bool {
	return m.running
}

// Registers returns a copy of the eight general-purpose registers, for
// tests and tracing; callers cannot mutate machine state through it.
func (m *Machine) Registers() [8]uint32 {
	return m.registers
}

// Run drives the fetch-decode-execute cycle until HALT or a fatal program
// error. It returns nil on an orderly HALT, the *MachineError that stopped
// execution on a program error (failed IN/OUT included, as IOError), and a
// plain error when the cap set by SetMaxSteps is reached.
func (m *Machine) Run() error {
	var steps uint64
	for m.running {
		if m.maxSteps != 0 && steps >= m.maxSteps {
			return fmt.Errorf("exceeded max step count %d", m.maxSteps)
		}
		if err := m.step(); err != nil {
			m.running = false
			return err
		}
		steps++
	}
	return nil
}

// step performs one fetch-decode-execute cycle: read the word at pc,
// advance pc, decode it, and dispatch to the operator.
func (m *Machine) step() error {
	pc := m.pc

	word, err := m.arrays.codeWord(pc)
	if err != nil {
		return err
	}
	m.pc++

	instr := Decode(word)

	if m.trace != nil {
		fmt.Fprintf(m.trace, "pc=%d %s a=%d b=%d c=%d val=%d\n", pc, instr.Op, instr.A, instr.B, instr.C, instr.Val)
	}

	return m.execute(pc, instr)
}
