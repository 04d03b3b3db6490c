package hwio_test

import (
	"testing"

	"neon250/hw/hwio"
)

type testBus struct {
	t   testing.TB
	Bus *hwio.Table

	ctrl *hwio.Bank
	data *hwio.Bank

	lastOld uint32
	lastVal uint32
	reads   int
}

func newTestBus(tb testing.TB) *testBus {
	bus := &testBus{
		t:    tb,
		Bus:  hwio.NewTable("test"),
		ctrl: hwio.NewBank("ctrl"),
		data: hwio.NewBank("data"),
	}
	bus.Bus.MapBank(0, bus.ctrl)
	bus.Bus.MapBank(3, bus.data)

	// 0x008: write handler stores the low half only.
	bus.ctrl.MapWriteFn(0x008, func(old, val uint32) {
		bus.lastOld, bus.lastVal = old, val
		bus.ctrl.SetWord(0x008, val&0xFFFF)
	})
	// 0x00C: read hook counts accesses and flips bit 31.
	bus.ctrl.MapReadFn(0x00C, func(val uint32) uint32 {
		bus.reads++
		return val | 1<<31
	})
	return bus
}

func (bus *testBus) wantRead32(addr uint32, want uint32) {
	bus.t.Helper()

	if got := bus.Bus.Read32(addr); got != want {
		bus.t.Errorf("Read32(%06X) = %08X, want %08X", addr, got, want)
	}
}

func TestTablePlainStore(t *testing.T) {
	bus := newTestBus(t)

	bus.wantRead32(0x3000, 0)
	bus.Bus.Write32(0x3000, 0xDEADBEEF)
	bus.wantRead32(0x3000, 0xDEADBEEF)

	// Banks decode independently.
	bus.wantRead32(0x0000, 0)
	bus.Bus.Write32(0x0FFC, 0x12345678)
	bus.wantRead32(0x0FFC, 0x12345678)
	bus.wantRead32(0x3FFC, 0)
}

func TestTableWriteHandler(t *testing.T) {
	bus := newTestBus(t)

	bus.Bus.Write32(0x0008, 0xAABBCCDD)
	if bus.lastVal != 0xAABBCCDD {
		t.Errorf("write handler got val %08X, want AABBCCDD", bus.lastVal)
	}
	bus.wantRead32(0x0008, 0x0000CCDD)

	bus.Bus.Write32(0x0008, 0x11112222)
	if bus.lastOld != 0x0000CCDD {
		t.Errorf("write handler got old %08X, want 0000CCDD", bus.lastOld)
	}
}

func TestTableReadHook(t *testing.T) {
	bus := newTestBus(t)

	bus.ctrl.SetWord(0x00C, 0x55)
	bus.wantRead32(0x000C, 0x80000055)
	bus.wantRead32(0x000C, 0x80000055)
	if bus.reads != 2 {
		t.Errorf("read hook called %d times, want 2", bus.reads)
	}
}

func TestTableUnaligned(t *testing.T) {
	bus := newTestBus(t)

	bus.Bus.Write32(0x3000, 0x01020304)
	bus.Bus.Write32(0x3001, 0xFFFFFFFF) // dropped
	bus.wantRead32(0x3000, 0x01020304)
	bus.wantRead32(0x3002, 0xFFFFFFFF) // unaligned read: all-ones
}

func TestTableUnmapped(t *testing.T) {
	bus := newTestBus(t)

	bus.Bus.Write32(0x8000, 0x42) // no bank at slot 8
	bus.wantRead32(0x8000, 0xFFFFFFFF)
}

func TestBankZero(t *testing.T) {
	bus := newTestBus(t)

	bus.Bus.Write32(0x3010, 7)
	bus.Bus.Write32(0x3FF8, 9)
	bus.data.Zero()
	bus.wantRead32(0x3010, 0)
	bus.wantRead32(0x3FF8, 0)

	// Handlers survive a Zero.
	bus.ctrl.Zero()
	bus.Bus.Write32(0x0008, 0xAABBCCDD)
	bus.wantRead32(0x0008, 0x0000CCDD)
}

func TestBankBits(t *testing.T) {
	bank := hwio.NewBank("b")

	bank.SetBits(0x10, 0b1010)
	if got := bank.Word(0x10); got != 0b1010 {
		t.Errorf("Word = %04b, want 1010", got)
	}
	bank.ClearBits(0x10, 0b0010)
	if got := bank.Word(0x10); got != 0b1000 {
		t.Errorf("Word = %04b, want 1000", got)
	}
}
