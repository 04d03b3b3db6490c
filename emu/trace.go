package emu

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/go-faster/jx"
)

// Event ops. Streams and traces share the encoding: a trace written by
// one run can be replayed by another.
const (
	OpWrite   = "w"   // register write: addr, val
	OpRead    = "r"   // register read: addr (val filled in traces)
	OpAdvance = "adv" // advance the virtual clock: us
	OpVBlank  = "vbl" // vertical blanking edge
	OpIRQ     = "irq" // interrupt line raised (trace only)
	OpFrame   = "frm" // frame completed (trace only)
)

// Event is one step of a device session, JSON-encoded one per line.
type Event struct {
	Op   string
	Addr uint32
	Val  uint32
	Us   int64 // OpAdvance duration, microseconds
	T    int64 // virtual timestamp, microseconds (traces only)
}

func (ev Event) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("op", func(e *jx.Encoder) { e.Str(ev.Op) })
		switch ev.Op {
		case OpWrite:
			e.Field("addr", func(e *jx.Encoder) { e.UInt32(ev.Addr) })
			e.Field("val", func(e *jx.Encoder) { e.UInt32(ev.Val) })
		case OpRead:
			e.Field("addr", func(e *jx.Encoder) { e.UInt32(ev.Addr) })
			e.Field("val", func(e *jx.Encoder) { e.UInt32(ev.Val) })
		case OpAdvance:
			e.Field("us", func(e *jx.Encoder) { e.Int64(ev.Us) })
		}
		if ev.T != 0 {
			e.Field("t", func(e *jx.Encoder) { e.Int64(ev.T) })
		}
	})
}

func decodeEvent(data []byte) (Event, error) {
	var ev Event
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "op":
			ev.Op, err = d.Str()
		case "addr":
			ev.Addr, err = d.UInt32()
		case "val":
			ev.Val, err = d.UInt32()
		case "us":
			ev.Us, err = d.Int64()
		case "t":
			ev.T, err = d.Int64()
		default:
			return d.Skip()
		}
		return err
	})
	return ev, err
}

// Tracer appends events to a writer, one JSON object per line. A nil
// Tracer is valid and records nothing.
type Tracer struct {
	w   io.Writer
	enc jx.Encoder
}

func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

func (t *Tracer) Record(ev Event) {
	if t == nil {
		return
	}
	t.enc.Reset()
	ev.encode(&t.enc)

	buf := append(t.enc.Bytes(), '\n')
	if _, err := t.w.Write(buf); err != nil {
		// Best effort: a broken trace sink must not stop the device.
		return
	}
}

// ReadStream decodes a command stream, calling fn for each event in
// order. Blank lines are skipped.
func ReadStream(r io.Reader, fn func(Event) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		ev, err := decodeEvent(raw)
		if err != nil {
			return fmt.Errorf("stream line %d: %w", line, err)
		}
		if err := fn(ev); err != nil {
			return fmt.Errorf("stream line %d: %w", line, err)
		}
	}
	return sc.Err()
}

// LoadStream decodes a whole command stream into memory.
func LoadStream(r io.Reader) ([]Event, error) {
	var evs []Event
	err := ReadStream(r, func(ev Event) error {
		evs = append(evs, ev)
		return nil
	})
	return evs, err
}

func usOf(d time.Duration) int64 {
	return int64(d / time.Microsecond)
}
