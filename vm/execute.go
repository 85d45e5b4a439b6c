package vm

import (
	"errors"
	"io"
)

// execute dispatches a single decoded instruction. pc is the address the
// instruction was fetched from (already incremented past in m.pc),
// reported in any error this instruction raises.
//
// Dispatch is a dense switch on the operator byte rather than a keyed
// lookup table (the source's dispatch style) so that an operator value
// outside 0..13 falls through to a single default arm instead of a
// failed map lookup.
func (m *Machine) execute(pc uint32, instr Instruction) error {
	switch instr.Op {
	case OpCmov:
		if m.registers[instr.C] != 0 {
			m.registers[instr.A] = m.registers[instr.B]
		}

	case OpAget:
		v, err := m.arrays.read(m.registers[instr.B], m.registers[instr.C], pc)
		if err != nil {
			return err
		}
		m.registers[instr.A] = v

	case OpAset:
		if err := m.arrays.write(m.registers[instr.A], m.registers[instr.B], m.registers[instr.C], pc); err != nil {
			return err
		}

	case OpAdd:
		m.registers[instr.A] = m.registers[instr.B] + m.registers[instr.C]

	case OpMul:
		m.registers[instr.A] = m.registers[instr.B] * m.registers[instr.C]

	case OpDiv:
		if m.registers[instr.C] == 0 {
			return newError(ErrDivideByZero, pc, "")
		}
		m.registers[instr.A] = m.registers[instr.B] / m.registers[instr.C]

	case OpNand:
		m.registers[instr.A] = ^(m.registers[instr.B] & m.registers[instr.C])

	case OpHalt:
		m.running = false

	case OpAlloc:
		m.registers[instr.B] = m.arrays.allocate(m.registers[instr.C])

	case OpFree:
		if err := m.arrays.abandon(m.registers[instr.C], pc); err != nil {
			return err
		}

	case OpOut:
		v := m.registers[instr.C]
		if v > 255 {
			return newError(ErrBadOutput, pc, "value exceeds a single byte")
		}
		if err := m.out.WriteByte(byte(v)); err != nil {
			return newError(ErrIO, pc, err.Error())
		}

	case OpIn:
		b, err := m.in.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				m.registers[instr.C] = 0xFFFFFFFF
				return nil
			}
			return newError(ErrIO, pc, err.Error())
		}
		m.registers[instr.C] = uint32(b)

	case OpLoadProgram:
		if err := m.arrays.replaceCodeWithCopyOf(m.registers[instr.B], pc); err != nil {
			return err
		}
		m.pc = m.registers[instr.C]

	case OpOrthography:
		m.registers[instr.A] = instr.Val

	default:
		return newError(ErrUnknownOperator, pc, instr.Op.String())
	}

	return nil
}
