package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neon250/emu"
)

const demoStream = `{"op":"w","addr":4112,"val":8}
{"op":"w","addr":4104,"val":32}
{"op":"w","addr":4104,"val":1008}
{"op":"w","addr":4104,"val":1032192}
{"op":"w","addr":12288,"val":3}
{"op":"adv","us":500}
`

func TestReplayStreamEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.stream")
	tcheck(t, os.WriteFile(path, []byte(demoStream), 0644))

	cfg := emu.DefaultConfig()
	cfg.Video.Width = 64
	cfg.Video.Height = 64
	cfg.Video.Bpp = 32
	cfg.Emulation.VRAMSize = 64 * 64 * 4

	e := emu.New(cfg)
	tcheckf(t, e.RunStream(path), "replay of %s failed", path)

	if e.Frames() != 1 {
		t.Errorf("frames = %d, want 1", e.Frames())
	}
}

func TestPrintRegs(t *testing.T) {
	var buf bytes.Buffer
	printRegs(&buf)

	out := buf.String()
	for _, want := range []string{"CORE_ID", "POLY_VERTEX", "DMA_CONTROL", "INT_MASK"} {
		if !strings.Contains(out, want) {
			t.Errorf("register map missing %s", want)
		}
	}
	if !strings.Contains(out, "0x001008") {
		t.Errorf("register map missing vertex register address")
	}
}

func TestParseArgs(t *testing.T) {
	cli := parseArgs([]string{"version"})
	if cli.mode != versionMode {
		t.Errorf("mode = %d, want version", cli.mode)
	}

	cli = parseArgs([]string{"regs"})
	if cli.mode != regsMode {
		t.Errorf("mode = %d, want regs", cli.mode)
	}
}
