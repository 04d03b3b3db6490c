package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"

	"neon250/emu"
)

// emuMain replays a command stream, windowed or headless. The windowed
// path must own the process main thread for SDL, so everything runs
// under sdl.Main.
func emuMain(args Run) {
	if args.Headless {
		os.Exit(replayStream(args, false))
	}

	var exitcode int
	sdl.Main(func() {
		exitcode = replayStream(args, true)
	})
	os.Exit(exitcode)
}

func replayStream(args Run, windowed bool) int {
	cfg := emu.LoadConfigOrDefault()
	if args.Trace != nil {
		cfg.TraceOut = args.Trace
	}

	emulator := emu.New(cfg)

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	var win *emu.Window
	if windowed {
		var err error
		win, err = emu.NewWindow("Neon 250", cfg.Video)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open window: %v\n", err)
			return 1
		}
		defer win.Close()
		emulator.SetOutput(win)
	}

	var g errgroup.Group
	g.Go(func() error {
		return emulator.RunStream(args.StreamPath)
	})
	if win != nil {
		// Keep the window responsive during and after the replay; the
		// last frame stays on screen until the user closes it.
		g.Go(func() error {
			for win.Poll() {
				time.Sleep(10 * time.Millisecond)
			}
			emulator.Stop()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
		return 1
	}
	return 0
}
