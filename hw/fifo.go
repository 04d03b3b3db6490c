package hw

// Command tags carried through the FIFO. Geometry register writes are
// decoupled from pipeline execution by queueing here first.
const (
	cmdVertex  = 0x01 // packed vertex position fragment
	cmdTexture = 0x02 // texture sub-command in the top 8 bits
	cmdColor   = 0x03 // packed RGBA color fragment
	cmdNormal  = 0x04 // normal fragment (queued, not consumed)
	cmdRender  = 0x10 // start scene render
)

// Texture sub-command types (top 8 bits of a cmdTexture data word).
const (
	texSubAddr   = 0x01 // texture base address (low 24 bits)
	texSubUV     = 0x02 // packed 12-bit u/v coordinates
	texSubFormat = 0x03 // texture format word
)

const fifoCapacity = 4096

type fifoEntry struct {
	cmd  uint32
	data uint32
}

// cmdFIFO is a bounded ring of (command, data) pairs. Overflow and
// underflow are status conditions surfaced by the device, not errors:
// push reports failure and the caller sets the FIFO-full status bit.
type cmdFIFO struct {
	entries [fifoCapacity]fifoEntry
	rd, wr  int
	count   int
}

// push appends an entry. It reports false, dropping the entry, when the
// ring is full.
func (f *cmdFIFO) push(cmd, data uint32) bool {
	if f.count >= fifoCapacity {
		return false
	}
	f.entries[f.wr] = fifoEntry{cmd: cmd, data: data}
	f.wr = (f.wr + 1) % fifoCapacity
	f.count++
	return true
}

// pop removes and returns the oldest entry.
func (f *cmdFIFO) pop() (fifoEntry, bool) {
	if f.count == 0 {
		return fifoEntry{}, false
	}
	e := f.entries[f.rd]
	f.rd = (f.rd + 1) % fifoCapacity
	f.count--
	return e, true
}

func (f *cmdFIFO) len() int    { return f.count }
func (f *cmdFIFO) empty() bool { return f.count == 0 }
func (f *cmdFIFO) full() bool  { return f.count >= fifoCapacity }

func (f *cmdFIFO) reset() {
	f.rd, f.wr, f.count = 0, 0, 0
}
