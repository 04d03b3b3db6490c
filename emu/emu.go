package emu

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"neon250/emu/log"
	"neon250/hw"
)

// Output receives completed frames. The SDL window implements it; tests
// plug in a sink.
type Output interface {
	// Frame presents the framebuffer described by disp.
	Frame(disp hw.DisplayInfo)
	// Poll processes host events and reports false when the user asked
	// to quit.
	Poll() bool
	Close()
}

// Emulator drives a Neon 250 core from a command stream: register
// accesses and clock advances in, frames and a register trace out.
type Emulator struct {
	GPU *hw.PVR
	cfg Config

	tracer *Tracer
	out    Output

	frames  atomic.Int64
	irqs    atomic.Int64
	stopped atomic.Bool
}

// New powers up the device with the given configuration.
func New(cfg Config) *Emulator {
	cfg.Check()

	e := &Emulator{cfg: cfg}
	if cfg.TraceOut != nil {
		e.tracer = NewTracer(cfg.TraceOut)
	}

	e.GPU = hw.New(cfg.HWConfig(), hw.NewClock())
	e.GPU.UpdateDisplay(hw.DisplayInfo{
		Width:  cfg.Video.Width,
		Height: cfg.Video.Height,
		Stride: cfg.Video.Width,
		Bpp:    cfg.Video.Bpp,
		VRAM:   make([]byte, cfg.Emulation.VRAMSize),
	})

	e.GPU.FrameChanged = func() {
		e.frames.Add(1)
		if e.out != nil {
			e.out.Frame(e.GPU.Display())
		}
	}
	e.GPU.IRQ = func() {
		e.irqs.Add(1)
		e.trace(Event{Op: OpIRQ})
	}
	return e
}

// SetOutput plugs a frame sink in. Must be called before Run.
func (e *Emulator) SetOutput(out Output) {
	e.out = out
}

func (e *Emulator) trace(ev Event) {
	if e.tracer == nil {
		return
	}
	ev.T = usOf(e.GPU.Clock().Now())
	e.tracer.Record(ev)
}

// WriteReg stores into the register aperture, recording the access.
func (e *Emulator) WriteReg(addr, val uint32) {
	e.trace(Event{Op: OpWrite, Addr: addr, Val: val})
	e.GPU.Write32(addr, val)
}

// ReadReg loads from the register aperture, recording value read.
func (e *Emulator) ReadReg(addr uint32) uint32 {
	val := e.GPU.Read32(addr)
	e.trace(Event{Op: OpRead, Addr: addr, Val: val})
	return val
}

// Advance moves the virtual clock forward, firing due completions.
func (e *Emulator) Advance(d time.Duration) {
	e.trace(Event{Op: OpAdvance, Us: usOf(d)})
	e.GPU.Clock().Advance(d)
}

// Step executes one stream event.
func (e *Emulator) Step(ev Event) error {
	switch ev.Op {
	case OpWrite:
		e.WriteReg(ev.Addr, ev.Val)
	case OpRead:
		e.ReadReg(ev.Addr)
	case OpAdvance:
		e.Advance(time.Duration(ev.Us) * time.Microsecond)
	case OpVBlank:
		e.GPU.NotifyVBlank()
	case OpIRQ, OpFrame:
		// Trace-only markers, nothing to replay.
	default:
		return fmt.Errorf("unknown stream op %q", ev.Op)
	}
	return nil
}

// Frames reports the number of completed scene renders.
func (e *Emulator) Frames() int64 {
	return e.frames.Load()
}

// IRQs reports the number of interrupt edges delivered to the host.
func (e *Emulator) IRQs() int64 {
	return e.irqs.Load()
}

// Stop makes Run return after the current event.
func (e *Emulator) Stop() {
	e.stopped.Store(true)
}

// RunStream replays a command stream file through the device. Stop()
// interrupts the replay between events.
func (e *Emulator) RunStream(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer f.Close()

	start := time.Now()
	n := 0
	err = ReadStream(f, func(ev Event) error {
		if e.stopped.Load() {
			return io.EOF
		}
		n++
		return e.Step(ev)
	})
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return err
	}

	log.ModEmu.InfoZ("stream replayed").
		Int("events", n).
		Int("frames", int(e.Frames())).
		Duration("took", time.Since(start)).
		End()

	if e.cfg.TraceOut != nil {
		return e.cfg.TraceOut.Close()
	}
	return nil
}
