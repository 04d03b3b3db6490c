package emu

import (
	"bytes"
	"testing"

	"neon250/hw"
	"neon250/hw/hwdefs"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Video.Width = 64
	cfg.Video.Height = 64
	cfg.Video.Bpp = 32
	cfg.Emulation.VRAMSize = 64 * 64 * 4
	return cfg
}

// streak of stream events drawing one red triangle and rendering it.
func triangleScene() []Event {
	reg := func(bank int, off uint32) uint32 { return uint32(bank)<<12 | off }
	vtx := func(x, y, z uint32) uint32 { return x | y<<10 | z<<20 }

	return []Event{
		{Op: OpWrite, Addr: reg(hwdefs.BankPoly, hwdefs.PolyColor), Val: 0xFF0000FF},
		{Op: OpWrite, Addr: reg(hwdefs.BankPoly, hwdefs.PolyVertex), Val: vtx(0, 0, 2048)},
		{Op: OpWrite, Addr: reg(hwdefs.BankPoly, hwdefs.PolyVertex), Val: vtx(1008, 0, 2048)},
		{Op: OpWrite, Addr: reg(hwdefs.BankPoly, hwdefs.PolyVertex), Val: vtx(0, 1008, 2048)},
		{Op: OpWrite, Addr: reg(hwdefs.BankRender, hwdefs.RenderControl),
			Val: hwdefs.RenderStart | hwdefs.RenderEnable},
		{Op: OpAdvance, Us: 500},
	}
}

func TestEmulatorReplay(t *testing.T) {
	e := New(testConfig())

	for _, ev := range triangleScene() {
		if err := e.Step(ev); err != nil {
			t.Fatalf("Step(%+v): %v", ev, err)
		}
	}

	if e.Frames() != 1 {
		t.Errorf("frames = %d, want 1", e.Frames())
	}
	disp := e.GPU.Display()
	off := (4*disp.Stride + 4) * 4
	if disp.VRAM[off+2] != 0xFF { // red channel of ARGB little-endian
		t.Errorf("pixel (4,4) red channel = %02x, want FF", disp.VRAM[off+2])
	}
}

func TestEmulatorTrace(t *testing.T) {
	cfg := testConfig()
	var buf bytes.Buffer
	cfg.TraceOut = nopCloser{&buf}

	e := New(cfg)
	e.WriteReg(0x1010, 0xFF0000FF)
	_ = e.ReadReg(uint32(hwdefs.BankCore)<<12 | hwdefs.CoreID)

	evs, err := LoadStream(&buf)
	if err != nil {
		t.Fatalf("LoadStream: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("trace length = %d, want 2", len(evs))
	}
	if evs[0].Op != OpWrite || evs[0].Addr != 0x1010 {
		t.Errorf("trace[0] = %+v", evs[0])
	}
	if evs[1].Op != OpRead || evs[1].Val != hwdefs.ChipID {
		t.Errorf("trace[1] = %+v, want ID read", evs[1])
	}
}

func TestEmulatorFrameSink(t *testing.T) {
	e := New(testConfig())

	var got []hw.DisplayInfo
	e.SetOutput(&sinkOutput{frames: &got})

	for _, ev := range triangleScene() {
		if err := e.Step(ev); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if len(got) != 1 {
		t.Errorf("output received %d frames, want 1", len(got))
	}
}

func TestConfigCheck(t *testing.T) {
	var cfg Config
	cfg.Video.Bpp = 15 // invalid
	cfg.Check()

	def := DefaultConfig()
	if cfg.Video.Width != def.Video.Width || cfg.Video.Bpp != def.Video.Bpp {
		t.Errorf("Check() = %+v, want defaults applied", cfg.Video)
	}
	if cfg.Emulation.VRAMSize != def.Emulation.VRAMSize {
		t.Errorf("vram size = %d, want %d", cfg.Emulation.VRAMSize, def.Emulation.VRAMSize)
	}
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

type sinkOutput struct {
	frames *[]hw.DisplayInfo
}

func (s *sinkOutput) Frame(disp hw.DisplayInfo) { *s.frames = append(*s.frames, disp) }
func (s *sinkOutput) Poll() bool                { return true }
func (s *sinkOutput) Close()                    {}
