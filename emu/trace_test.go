package emu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTraceRoundtrip(t *testing.T) {
	events := []Event{
		{Op: OpWrite, Addr: 0x1008, Val: 0xDEADBEEF},
		{Op: OpRead, Addr: 0x000C, Val: 0x40},
		{Op: OpAdvance, Us: 200},
		{Op: OpVBlank},
		{Op: OpIRQ, T: 200},
		{Op: OpFrame, T: 400},
	}

	var buf bytes.Buffer
	tr := NewTracer(&buf)
	for _, ev := range events {
		tr.Record(ev)
	}

	got, err := LoadStream(&buf)
	if err != nil {
		t.Fatalf("LoadStream: %v", err)
	}
	if diff := cmp.Diff(events, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestReadStreamSkipsBlankLines(t *testing.T) {
	in := `{"op":"w","addr":8,"val":1}

{"op":"adv","us":10}
`
	evs, err := LoadStream(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadStream: %v", err)
	}
	want := []Event{
		{Op: OpWrite, Addr: 8, Val: 1},
		{Op: OpAdvance, Us: 10},
	}
	if diff := cmp.Diff(want, evs); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestReadStreamBadLine(t *testing.T) {
	in := `{"op":"w","addr":8,"val":1}
{"op":`
	if _, err := LoadStream(strings.NewReader(in)); err == nil {
		t.Errorf("malformed stream accepted")
	}
}

func TestNilTracer(t *testing.T) {
	var tr *Tracer
	tr.Record(Event{Op: OpWrite}) // must not panic
}
