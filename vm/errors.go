package vm

import "fmt"

// ErrorKind classifies the fatal program errors a running machine can hit.
// Every kind here is terminal: once raised, the machine's running flag is
// false and execution never resumes.
type ErrorKind int

const (
	_ ErrorKind = iota
	ErrLoad
	ErrOutOfBoundsCode
	ErrOutOfBoundsArray
	ErrFreeOfZero
	ErrUseAfterFree
	ErrDivideByZero
	ErrBadOutput
	ErrUnknownOperator
	ErrIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrLoad:
		return "LoadError"
	case ErrOutOfBoundsCode:
		return "OutOfBoundsCode"
	case ErrOutOfBoundsArray:
		return "OutOfBoundsArray"
	case ErrFreeOfZero:
		return "FreeOfZero"
	case ErrUseAfterFree:
		return "UseAfterFree"
	case ErrDivideByZero:
		return "DivideByZero"
	case ErrBadOutput:
		return "BadOutput"
	case ErrUnknownOperator:
		return "UnknownOperator"
	case ErrIO:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// MachineError is a fatal program error: the kind of failure, the pc of the
// instruction that caused it, and an optional human-readable detail.
type MachineError struct {
	Kind   ErrorKind
	PC     uint32
	Detail string
}

func (e *MachineError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at pc=%d", e.Kind, e.PC)
	}
	return fmt.Sprintf("%s at pc=%d: %s", e.Kind, e.PC, e.Detail)
}

func newError(kind ErrorKind, pc uint32, detail string) *MachineError {
	return &MachineError{Kind: kind, PC: pc, Detail: detail}
}
