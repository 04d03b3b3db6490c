package emu

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"neon250/emu/log"
	"neon250/hw"
)

// Window shows the device framebuffer in an SDL window, converting
// whatever pixel format the video output is in to the window texture.
// All SDL calls are marshaled onto the SDL thread with sdl.Do, so the
// methods are safe to call from any goroutine as long as the program
// runs under sdl.Main.
type Window struct {
	win  *sdl.Window
	rend *sdl.Renderer
	tex  *sdl.Texture

	w, h int
	quit bool
}

// NewWindow opens the host window sized to the framebuffer times the
// scale factor.
func NewWindow(title string, vcfg VideoConfig) (*Window, error) {
	w := &Window{w: vcfg.Width, h: vcfg.Height}

	var err error
	sdl.Do(func() {
		if err = sdl.Init(sdl.INIT_VIDEO); err != nil {
			err = fmt.Errorf("failed to initialize SDL: %w", err)
			return
		}

		w.win, err = sdl.CreateWindow(title,
			sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			int32(vcfg.Width*vcfg.Scale), int32(vcfg.Height*vcfg.Scale),
			sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
		if err != nil {
			err = fmt.Errorf("failed to create window: %w", err)
			return
		}

		flags := uint32(sdl.RENDERER_ACCELERATED)
		if !vcfg.DisableVSync {
			flags |= sdl.RENDERER_PRESENTVSYNC
		}
		w.rend, err = sdl.CreateRenderer(w.win, -1, flags)
		if err != nil {
			w.win.Destroy()
			err = fmt.Errorf("failed to create renderer: %w", err)
			return
		}

		w.tex, err = w.rend.CreateTexture(sdl.PIXELFORMAT_ARGB8888,
			sdl.TEXTUREACCESS_STREAMING, int32(vcfg.Width), int32(vcfg.Height))
		if err != nil {
			w.rend.Destroy()
			w.win.Destroy()
			err = fmt.Errorf("failed to create texture: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}

	log.ModEmu.InfoZ("window opened").
		Int("width", vcfg.Width).
		Int("height", vcfg.Height).
		Int("scale", vcfg.Scale).
		End()
	return w, nil
}

// Frame converts the framebuffer to ARGB and presents it.
func (w *Window) Frame(disp hw.DisplayInfo) {
	sdl.Do(func() {
		buf, pitch, err := w.tex.Lock(nil)
		if err != nil {
			log.ModEmu.ErrorZ("texture lock failed").Error("err", err).End()
			return
		}
		blitARGB(buf, pitch, disp, w.w, w.h)
		w.tex.Unlock()

		w.rend.Clear()
		w.rend.Copy(w.tex, nil, nil)
		w.rend.Present()
	})
}

// blitARGB expands the framebuffer into the ARGB8888 texture buffer.
func blitARGB(dst []byte, pitch int, disp hw.DisplayInfo, w, h int) {
	if w > disp.Width {
		w = disp.Width
	}
	if h > disp.Height {
		h = disp.Height
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := y*disp.Stride + x
			var r, g, b uint8
			switch disp.Bpp {
			case 16:
				px := uint16(disp.VRAM[src*2]) | uint16(disp.VRAM[src*2+1])<<8
				r = uint8(px>>11) << 3
				g = uint8(px>>5&0x3F) << 2
				b = uint8(px&0x1F) << 3
			case 24:
				b = disp.VRAM[src*3]
				g = disp.VRAM[src*3+1]
				r = disp.VRAM[src*3+2]
			case 32:
				b = disp.VRAM[src*4]
				g = disp.VRAM[src*4+1]
				r = disp.VRAM[src*4+2]
			}
			di := y*pitch + x*4
			dst[di+0] = b
			dst[di+1] = g
			dst[di+2] = r
			dst[di+3] = 0xFF
		}
	}
}

// Poll pumps SDL events. It reports false once the user closed the
// window or hit escape.
func (w *Window) Poll() bool {
	sdl.Do(func() {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				w.quit = true
			case *sdl.KeyboardEvent:
				if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
					w.quit = true
				}
			}
		}
	})
	return !w.quit
}

func (w *Window) Close() {
	sdl.Do(func() {
		w.tex.Destroy()
		w.rend.Destroy()
		w.win.Destroy()
		sdl.Quit()
	})
}
