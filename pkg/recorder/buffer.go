package recorder

// bufferPair manages the two append planes of a recording session. Exactly
// one plane is active at a time; the other is either idle or owned by the
// writer task during a flush. Neither side ever touches the other's plane.
type bufferPair struct {
	planes [2][]byte
	active int
	used   int
}

// newBufferPair allocates both planes at the given capacity. Capacity must
// be positive; the constructor in Config enforces this.
func newBufferPair(capacity int) *bufferPair {
	return &bufferPair{
		planes: [2][]byte{
			make([]byte, capacity),
			make([]byte, capacity),
		},
	}
}

// appendByte appends one byte to the active plane. When the append fills the
// plane exactly, it returns the full plane and true, swaps the active plane
// and resets the used count; the caller must hand the returned slice to the
// writer task before appending enough bytes to fill the other plane.
func (bp *bufferPair) appendByte(b byte) ([]byte, bool) {
	plane := bp.planes[bp.active]
	plane[bp.used] = b
	bp.used++

	if bp.used < len(plane) {
		return nil, false
	}

	bp.active ^= 1
	bp.used = 0
	return plane, true
}

// remainder returns the used prefix of the active plane. Length may be zero.
func (bp *bufferPair) remainder() []byte {
	return bp.planes[bp.active][:bp.used]
}

// len returns the number of bytes currently held in the active plane.
func (bp *bufferPair) len() int { return bp.used }
