package hw

import (
	"neon250/emu/log"
)

const maxTextures = 256

// Texture describes one texture the driver has pointed the unit at. The
// pipeline only carries the address and geometry; sampling is a stub
// that modulates with plain white (see raster.go).
type Texture struct {
	Width  int
	Height int
	Format uint32
	Addr   uint32
	Data   []byte
}

// TextureUnit holds the texture state that persists across polygons
// until the driver changes it.
type TextureUnit struct {
	Control uint32
	Filter  uint32
	Wrap    uint32

	cur      int
	textures [maxTextures]Texture
}

func (tu *TextureUnit) reset() {
	*tu = TextureUnit{}
}

// current returns the texture slot polygons are being tagged with.
func (tu *TextureUnit) current() *Texture {
	return &tu.textures[tu.cur]
}

// setAddr points the current texture at a VRAM address (24-bit).
func (tu *TextureUnit) setAddr(addr uint32) {
	tu.current().Addr = addr & 0xFFFFFF
}

// setFormat decodes a texture format word: pixel format in bits 0-3 and
// a square size code in bits 4-7.
func (tu *TextureUnit) setFormat(val uint32) {
	tex := tu.current()
	tex.Format = val & 0xF

	var side int
	switch (val >> 4) & 0xF {
	case 0:
		side = 8
	case 1:
		side = 16
	case 2:
		side = 32
	case 3:
		side = 64
	case 4:
		side = 128
	case 5:
		side = 256
	case 6:
		side = 512
	case 7:
		side = 1024
	default:
		side = 256
	}
	tex.Width, tex.Height = side, side

	log.ModGeo.DebugZ("texture format").
		Int("side", side).
		Hex32("format", tex.Format).
		End()
}

// textureSubCommand dispatches a cmdTexture FIFO entry on its type byte.
func (p *PVR) textureSubCommand(data uint32) {
	switch (data >> 24) & 0xFF {
	case texSubAddr:
		p.texunit.setAddr(data)
	case texSubUV:
		p.uvData(data)
	case texSubFormat:
		p.texunit.setFormat(data & 0xFFFFFF)
	default:
		log.ModFIFO.WarnZ("unknown texture sub-command").
			Hex32("data", data).
			End()
	}
}

// stub texture color: opaque white, modulated by vertex color when
// Gouraud shading is on.
const stubTexColor = 0x00FFFFFF
