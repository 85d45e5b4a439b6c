package vm

// Operator identifies one of the 14 operations a decoded word can encode.
// Values 14 and 15 name no operation but can appear in the top 4 bits of
// an arbitrary code word; Decode passes them through unchanged and
// execute reports ErrUnknownOperator.
type Operator byte

const (
	OpCmov        Operator = 0
	OpAget        Operator = 1
	OpAset        Operator = 2
	OpAdd         Operator = 3
	OpMul         Operator = 4
	OpDiv         Operator = 5
	OpNand        Operator = 6
	OpHalt        Operator = 7
	OpAlloc       Operator = 8
	OpFree        Operator = 9
	OpOut         Operator = 10
	OpIn          Operator = 11
	OpLoadProgram Operator = 12
	OpOrthography Operator = 13
)

var operatorNames = map[Operator]string{
	OpCmov:        "CMOV",
	OpAget:        "AGET",
	OpAset:        "ASET",
	OpAdd:         "ADD",
	OpMul:         "MUL",
	OpDiv:         "DIV",
	OpNand:        "NAND",
	OpHalt:        "HLT",
	OpAlloc:       "ALLOC",
	OpFree:        "FREE",
	OpOut:         "OUT",
	OpIn:          "IN",
	OpLoadProgram: "LOADPROGRAM",
	OpOrthography: "ORTHO",
}

// String renders the mnemonic for an operator, or "?unknown?" for any
// value outside 0..13.
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "?unknown?"
}

// Instruction is the decoded form of one 32-bit code word: the operator
// plus either three register selectors (A, B, C) or, for ORTHO, a register
// selector and a 25-bit immediate.
type Instruction struct {
	Op  Operator
	A   uint8
	B   uint8
	C   uint8
	Val uint32
}

// Decode is a pure function from a 32-bit code word to its decoded
// instruction. It never fails: an operator value of 14 or higher is
// decoded faithfully (with A/B/C fields per the non-ORTHO layout) and
// rejected later, at execute time, as ErrUnknownOperator.
func Decode(word uint32) Instruction {
	op := Operator((word >> 28) & 0xF)

	if op == OpOrthography {
		return Instruction{
			Op:  op,
			A:   uint8((word >> 25) & 0x7),
			Val: word & 0x01FFFFFF,
		}
	}

	return Instruction{
		Op: op,
		A:  uint8((word >> 6) & 0x7),
		B:  uint8((word >> 3) & 0x7),
		C:  uint8(word & 0x7),
	}
}
