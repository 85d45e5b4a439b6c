package vm

import "testing"

func TestArrayTableAllocateZeroFilled(t *testing.T) {
	at := newArrayTable()
	id := at.allocate(4)
	assert(t, id != 0, "allocate returned reserved id 0")

	for i := uint32(0); i < 4; i++ {
		v, err := at.read(id, i, 0)
		assert(t, err == nil, "read: %v", err)
		assert(t, v == 0, "element %d not zero: %d", i, v)
	}
}

func TestArrayTableAllocateUniqueness(t *testing.T) {
	at := newArrayTable()
	seen := map[uint32]bool{codeID: true}
	for i := 0; i < 10; i++ {
		id := at.allocate(1)
		assert(t, id != 0, "allocate returned 0")
		assert(t, !seen[id], "id %d reused while still live", id)
		seen[id] = true
	}
}

func TestArrayTableFreeAndReuse(t *testing.T) {
	at := newArrayTable()
	a := at.allocate(1)
	err := at.abandon(a, 0)
	assert(t, err == nil, "abandon: %v", err)

	b := at.allocate(1)
	assert(t, b == a, "freed id %d was not recycled, got %d", a, b)
}

func TestArrayTableFreeOfZeroIsAnError(t *testing.T) {
	at := newArrayTable()
	err := at.abandon(codeID, 7)
	me, ok := err.(*MachineError)
	assert(t, ok, "expected *MachineError, got %v", err)
	assert(t, me.Kind == ErrFreeOfZero, "kind: got %v", me.Kind)
	assert(t, me.PC == 7, "pc: got %d", me.PC)
}

func TestArrayTableUseAfterFree(t *testing.T) {
	at := newArrayTable()
	a := at.allocate(4)
	assert(t, at.abandon(a, 0) == nil, "abandon failed")

	_, err := at.read(a, 0, 3)
	me, ok := err.(*MachineError)
	assert(t, ok, "expected *MachineError, got %v", err)
	assert(t, me.Kind == ErrUseAfterFree, "kind: got %v", me.Kind)
}

func TestArrayTableOutOfBounds(t *testing.T) {
	at := newArrayTable()
	id := at.allocate(2)

	_, err := at.read(id, 2, 1)
	me, ok := err.(*MachineError)
	assert(t, ok, "expected *MachineError, got %v", err)
	assert(t, me.Kind == ErrOutOfBoundsArray, "kind: got %v", me.Kind)
}

func TestArrayTableReplaceCodeWithCopyOf(t *testing.T) {
	at := newArrayTable()
	at.arrays[codeID] = []uint32{1, 2, 3}

	src := at.allocate(2)
	assert(t, at.write(src, 0, 0xAAAAAAAA, 0) == nil, "write failed")
	assert(t, at.write(src, 1, 0xBBBBBBBB, 0) == nil, "write failed")

	assert(t, at.replaceCodeWithCopyOf(src, 0) == nil, "replace failed")
	assert(t, at.codeLen() == 2, "code length: got %d", at.codeLen())

	word, err := at.codeWord(0)
	assert(t, err == nil, "codeWord: %v", err)
	assert(t, word == 0xAAAAAAAA, "code[0]: got %#x", word)

	// The source array is a copy's origin, not an alias: mutating it after
	// the fact must not affect the code array it was copied into.
	assert(t, at.write(src, 0, 0xDEADBEEF, 0) == nil, "write failed")
	word, _ = at.codeWord(0)
	assert(t, word == 0xAAAAAAAA, "copy aliased source after mutation: got %#x", word)

	// The source array remains allocated under its original identifier.
	_, err = at.read(src, 0, 0)
	assert(t, err == nil, "source array was not still allocated: %v", err)
}

func TestArrayTableReplaceCodeWithCopyOfZeroIsNoOp(t *testing.T) {
	at := newArrayTable()
	at.arrays[codeID] = []uint32{9, 8, 7}

	assert(t, at.replaceCodeWithCopyOf(codeID, 0) == nil, "replace failed")
	word, _ := at.codeWord(1)
	assert(t, word == 8, "code array changed on replace with id 0: got %d", word)
}
