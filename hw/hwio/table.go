package hwio

import (
	"neon250/emu/log"
)

// NumBanks is the number of bank slots a Table decodes: bits 12-15 of the
// register address select the bank.
const NumBanks = 16

// Table decodes a flat register aperture into banks of 1024 32-bit words.
// Bank = (addr >> 12) & 0xF, word = addr & 0xFFF. Accesses must be
// word-aligned; misaligned or unmapped accesses never fault, they are
// logged and absorbed the way the real chip tolerates driver misbehavior.
type Table struct {
	Name  string
	banks [NumBanks]*Bank
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

// MapBank installs bank at the given slot.
func (t *Table) MapBank(num int, bank *Bank) {
	log.ModHwIo.DebugZ("mapping register bank").
		String("bus", t.Name).
		String("bank", bank.Name).
		Int("slot", num).
		End()
	t.banks[num] = bank
}

// Bank returns the bank mapped at the given slot, or nil.
func (t *Table) Bank(num int) *Bank {
	return t.banks[num]
}

func (t *Table) decode(addr uint32) (*Bank, uint16) {
	return t.banks[(addr>>12)&0xF], uint16(addr & 0xFFF)
}

// Write32 decodes addr and forwards the write to the selected bank.
func (t *Table) Write32(addr uint32, val uint32) {
	if addr&3 != 0 {
		log.ModHwIo.ErrorZ("unaligned register write").
			String("bus", t.Name).
			Hex32("addr", addr).
			Hex32("val", val).
			End()
		return
	}
	bank, off := t.decode(addr)
	if bank == nil {
		log.ModHwIo.ErrorZ("write to unmapped register bank").
			String("bus", t.Name).
			Hex32("addr", addr).
			Hex32("val", val).
			End()
		return
	}
	bank.Write32(off, val)
}

// Read32 decodes addr and forwards the read to the selected bank.
// Misaligned or unmapped reads return all-ones, like a floating bus.
func (t *Table) Read32(addr uint32) uint32 {
	if addr&3 != 0 {
		log.ModHwIo.ErrorZ("unaligned register read").
			String("bus", t.Name).
			Hex32("addr", addr).
			End()
		return 0xFFFFFFFF
	}
	bank, off := t.decode(addr)
	if bank == nil {
		log.ModHwIo.ErrorZ("read from unmapped register bank").
			String("bus", t.Name).
			Hex32("addr", addr).
			End()
		return 0xFFFFFFFF
	}
	return bank.Read32(off)
}
