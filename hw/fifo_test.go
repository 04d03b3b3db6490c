package hw

import "testing"

func TestFIFOPushPop(t *testing.T) {
	var f cmdFIFO

	if !f.empty() {
		t.Fatalf("new FIFO not empty")
	}
	f.push(cmdVertex, 0x111)
	f.push(cmdColor, 0x222)

	if f.len() != 2 {
		t.Fatalf("len = %d, want 2", f.len())
	}
	e, ok := f.pop()
	if !ok || e.cmd != cmdVertex || e.data != 0x111 {
		t.Errorf("pop = %+v/%t, want vertex 0x111", e, ok)
	}
	e, ok = f.pop()
	if !ok || e.cmd != cmdColor || e.data != 0x222 {
		t.Errorf("pop = %+v/%t, want color 0x222", e, ok)
	}
	if _, ok := f.pop(); ok {
		t.Errorf("pop on empty FIFO succeeded")
	}
}

func TestFIFOWrapAround(t *testing.T) {
	var f cmdFIFO

	// Cycle more entries than the capacity through a non-empty ring so
	// the indices wrap.
	f.push(cmdVertex, 0)
	for i := 1; i <= fifoCapacity+16; i++ {
		f.push(cmdVertex, uint32(i))
		e, _ := f.pop()
		if e.data != uint32(i-1) {
			t.Fatalf("pop #%d = %d, want %d", i, e.data, i-1)
		}
	}
}

func TestFIFOFull(t *testing.T) {
	var f cmdFIFO

	for i := 0; i < fifoCapacity; i++ {
		if !f.push(cmdVertex, uint32(i)) {
			t.Fatalf("push #%d refused below capacity", i)
		}
	}
	if !f.full() {
		t.Fatalf("full() = false at capacity")
	}
	if f.push(cmdVertex, 0xFFFF) {
		t.Errorf("push above capacity accepted")
	}
	if f.len() != fifoCapacity {
		t.Errorf("len = %d, want %d", f.len(), fifoCapacity)
	}

	// Order is preserved across the overflow.
	e, _ := f.pop()
	if e.data != 0 {
		t.Errorf("head = %d, want 0", e.data)
	}
}

func TestFIFOReset(t *testing.T) {
	var f cmdFIFO

	f.push(cmdVertex, 1)
	f.push(cmdRender, 0)
	f.reset()

	if !f.empty() || f.len() != 0 {
		t.Errorf("FIFO not empty after reset")
	}
	if _, ok := f.pop(); ok {
		t.Errorf("pop after reset succeeded")
	}
}
