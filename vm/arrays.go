package vm

// codeID is the identifier that always denotes the code array. It is
// present for the entire lifetime of a Machine, is never returned by
// allocate, and is rejected by abandon with ErrFreeOfZero.
const codeID uint32 = 0

// arrayTable owns every mutable data array a Machine can touch, including
// the code array at id 0. It hands out identifiers from a monotonically
// increasing counter, backed by a free list of abandoned ids so recycled
// ids are handed out in O(1) (spec's REDESIGN FLAGS: no linear scan for
// the lowest unused id).
type arrayTable struct {
	arrays   map[uint32][]uint32
	freeList []uint32
	nextID   uint32
}

func newArrayTable() *arrayTable {
	return &arrayTable{
		arrays: map[uint32][]uint32{
			codeID: {},
		},
		nextID: 1,
	}
}

// loadProgram initializes the code array (id 0) from a byte stream of
// length 4*N, interpreting each 4-byte group as a big-endian u32. Returns
// ErrLoad if the length isn't a multiple of 4.
func (t *arrayTable) loadProgram(data []byte) error {
	if len(data)%4 != 0 {
		return newError(ErrLoad, 0, "scroll length is not a multiple of 4 bytes")
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		off := i * 4
		words[i] = uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
	}
	t.arrays[codeID] = words
	return nil
}

// allocate creates a new zero-filled array of the requested length and
// returns a non-zero identifier not currently in use.
func (t *arrayTable) allocate(size uint32) uint32 {
	var id uint32
	if n := len(t.freeList); n > 0 {
		id = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
	} else {
		id = t.nextID
		t.nextID++
	}

	t.arrays[id] = make([]uint32, size)
	return id
}

// abandon frees the array at id. Abandoning id 0 or an id that isn't
// currently allocated is a program error, detected and reported to the
// caller (the Execution Engine) by pc.
func (t *arrayTable) abandon(id uint32, pc uint32) error {
	if id == codeID {
		return newError(ErrFreeOfZero, pc, "")
	}
	if _, ok := t.arrays[id]; !ok {
		return newError(ErrUseAfterFree, pc, "free of unallocated array")
	}

	delete(t.arrays, id)
	t.freeList = append(t.freeList, id)
	return nil
}

func (t *arrayTable) get(id uint32, pc uint32) ([]uint32, error) {
	arr, ok := t.arrays[id]
	if !ok {
		return nil, newError(ErrUseAfterFree, pc, "use of unallocated array")
	}
	return arr, nil
}

// read returns arrays[id][offset].
func (t *arrayTable) read(id, offset uint32, pc uint32) (uint32, error) {
	arr, err := t.get(id, pc)
	if err != nil {
		return 0, err
	}
	if offset >= uint32(len(arr)) {
		return 0, newError(ErrOutOfBoundsArray, pc, "read offset out of range")
	}
	return arr[offset], nil
}

// write sets arrays[id][offset] = value.
func (t *arrayTable) write(id, offset, value uint32, pc uint32) error {
	arr, err := t.get(id, pc)
	if err != nil {
		return err
	}
	if offset >= uint32(len(arr)) {
		return newError(ErrOutOfBoundsArray, pc, "write offset out of range")
	}
	arr[offset] = value
	return nil
}

// replaceCodeWithCopyOf overwrites the code array's contents with a fresh
// copy of the array at id. If id is 0, this is a no-op: the code array is
// already itself. The source array, if non-zero, remains allocated under
// its original identifier — this is a copy, never an alias.
func (t *arrayTable) replaceCodeWithCopyOf(id uint32, pc uint32) error {
	if id == codeID {
		return nil
	}

	src, err := t.get(id, pc)
	if err != nil {
		return err
	}

	dup := make([]uint32, len(src))
	copy(dup, src)
	t.arrays[codeID] = dup
	return nil
}

// codeWord reads a word from the code array at offset pc, reporting
// OutOfBoundsCode (not OutOfBoundsArray) since this is the fetch step of
// the fetch-decode-execute cycle, not an AGET/ASET.
func (t *arrayTable) codeWord(pc uint32) (uint32, error) {
	code := t.arrays[codeID]
	if pc >= uint32(len(code)) {
		return 0, newError(ErrOutOfBoundsCode, pc, "pc outside code array")
	}
	return code[pc], nil
}

func (t *arrayTable) codeLen() uint32 {
	return uint32(len(t.arrays[codeID]))
}
