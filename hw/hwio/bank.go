package hwio

import (
	"neon250/emu/log"
)

// NumWords is the number of 32-bit registers held by a Bank. Each bank
// spans a 4KiB window of the register aperture.
const NumWords = 1024

// WriteFn handles a side-effecting register write. It receives the old
// stored word and the value being written, and is responsible for storing
// the value itself (or not, for write-1-to-clear style registers).
type WriteFn func(old, val uint32)

// ReadFn refreshes a register value on read. It receives the stored word
// and returns the value to expose to the bus.
type ReadFn func(val uint32) uint32

// Bank is a flat file of NumWords 32-bit registers. Most words are plain
// storage; specific word offsets can be given a write handler, a read
// hook, or both. This keeps the decode a table lookup instead of a switch
// with fallthrough stores.
type Bank struct {
	Name  string
	words [NumWords]uint32

	wcb map[uint16]WriteFn
	rcb map[uint16]ReadFn
}

func NewBank(name string) *Bank {
	return &Bank{
		Name: name,
		wcb:  make(map[uint16]WriteFn),
		rcb:  make(map[uint16]ReadFn),
	}
}

// MapWriteFn installs cb as the write handler for the register at the
// given byte offset within the bank.
func (b *Bank) MapWriteFn(off uint16, cb WriteFn) {
	b.wcb[off/4] = cb
}

// MapReadFn installs cb as the read hook for the register at the given
// byte offset within the bank.
func (b *Bank) MapReadFn(off uint16, cb ReadFn) {
	b.rcb[off/4] = cb
}

// Write32 stores val at the given byte offset, invoking the write handler
// instead of the plain store when one is mapped. The offset must be
// word-aligned and within the bank (the Table guarantees both).
func (b *Bank) Write32(off uint16, val uint32) {
	idx := off / 4
	if cb, ok := b.wcb[idx]; ok {
		cb(b.words[idx], val)
		return
	}
	b.words[idx] = val
}

// Read32 returns the word at the given byte offset, refreshed through the
// read hook when one is mapped.
func (b *Bank) Read32(off uint16) uint32 {
	idx := off / 4
	if cb, ok := b.rcb[idx]; ok {
		b.words[idx] = cb(b.words[idx])
	}
	return b.words[idx]
}

// Word gives direct access to a register by byte offset, bypassing hooks.
// Used by device code updating its own status registers.
func (b *Bank) Word(off uint16) uint32 {
	return b.words[off/4]
}

// SetWord stores a register by byte offset, bypassing hooks.
func (b *Bank) SetWord(off uint16, val uint32) {
	b.words[off/4] = val
}

// SetBits ors mask into the register at the given byte offset.
func (b *Bank) SetBits(off uint16, mask uint32) {
	b.words[off/4] |= mask
}

// ClearBits clears mask from the register at the given byte offset.
func (b *Bank) ClearBits(off uint16, mask uint32) {
	b.words[off/4] &^= mask
}

// Zero clears the whole file. Handlers stay mapped: a partial subsystem
// reset wipes values, not wiring.
func (b *Bank) Zero() {
	log.ModHwIo.DebugZ("zeroing register file").String("bank", b.Name).End()
	for i := range b.words {
		b.words[i] = 0
	}
}
