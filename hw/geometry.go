package hw

import (
	"neon250/emu/log"
	"neon250/hw/hwdefs"
)

// Vertex is one corner of a triangle, built up incrementally from
// position, color and texture-coordinate FIFO fragments.
type Vertex struct {
	X, Y, Z, W float32 // position; z and w carry depth and perspective
	R, G, B, A float32 // color in [0,1]
	U, V       float32 // texture coordinates in [0,1]
}

// Polygon is a finished triangle, tagged with the texture address and
// polygon-control flags in effect when its third vertex arrived. ZKey is
// the back-to-front sort key used by the per-tile rasterization pass.
type Polygon struct {
	Verts   [3]Vertex
	TexAddr uint32
	Flags   uint32
	ZKey    uint32
}

const maxPolygons = 2048

// polyPool is a fixed arena of polygons. Tiles reference entries by pool
// index: the handle stays valid until the pool is cleared when the scene
// finishes rendering, so a polygon binned into many tiles is shared, not
// copied.
type polyPool struct {
	polys [maxPolygons]Polygon
	n     int
}

// alloc reserves the next pool slot. It reports false when the pool is
// exhausted.
func (pp *polyPool) alloc() (int, bool) {
	if pp.n >= maxPolygons {
		return 0, false
	}
	h := pp.n
	pp.n++
	return h, true
}

// at returns the polygon behind a handle.
func (pp *polyPool) at(h int) *Polygon {
	return &pp.polys[h]
}

func (pp *polyPool) count() int {
	return pp.n
}

// clear invalidates every handle at once.
func (pp *polyPool) clear() {
	pp.n = 0
}

// vertexData decodes a packed position fragment into the current vertex
// slot: 10-bit x and y scaled to the framebuffer, 12-bit z in [0,1).
func (p *PVR) vertexData(data uint32) {
	v := &p.curVerts[p.curVertex]
	v.X = float32(data&0x3FF) / 1024.0 * float32(p.disp.Width)
	v.Y = float32((data>>10)&0x3FF) / 1024.0 * float32(p.disp.Height)
	v.Z = float32((data>>20)&0xFFF) / 4096.0
	v.W = 1.0

	p.curVertex++
	if p.curVertex >= 3 {
		p.setupPolygon()
		p.curVertex = 0
	}
}

// colorData decodes an 8-bit-per-channel RGBA fragment into the current
// vertex slot.
func (p *PVR) colorData(data uint32) {
	v := &p.curVerts[p.curVertex]
	v.R = float32(data&0xFF) / 255.0
	v.G = float32((data>>8)&0xFF) / 255.0
	v.B = float32((data>>16)&0xFF) / 255.0
	v.A = float32((data>>24)&0xFF) / 255.0
}

// uvData decodes a 12-bit fixed-point texture coordinate fragment into
// the current vertex slot.
func (p *PVR) uvData(data uint32) {
	v := &p.curVerts[p.curVertex]
	v.U = float32(data&0xFFF) / 4096.0
	v.V = float32((data>>12)&0xFFF) / 4096.0
}

// setupPolygon finalizes the three accumulated vertices into a pooled
// polygon and hands it to the tile binner.
func (p *PVR) setupPolygon() {
	h, ok := p.polys.alloc()
	if !ok {
		log.ModGeo.WarnZ("polygon pool exhausted, dropping polygon").
			Int("cap", maxPolygons).
			End()
		return
	}

	poly := p.polys.at(h)
	poly.Verts = p.curVerts
	poly.TexAddr = p.texunit.current().Addr
	poly.Flags = p.poly.Word(hwdefs.PolyControl)

	// Mean-depth sort key, scaled to an integer range. Farther polygons
	// get larger keys and render first within a tile.
	zsum := poly.Verts[0].Z + poly.Verts[1].Z + poly.Verts[2].Z
	poly.ZKey = uint32(zsum * 1365.0)

	p.tiles.distribute(poly, h)

	log.ModGeo.DebugZ("polygon assembled").
		Int("handle", h).
		Uint32("zkey", poly.ZKey).
		Hex32("flags", poly.Flags).
		End()
}
