package hw

import (
	"encoding/binary"
	"math"
	"sort"

	"neon250/emu/log"
	"neon250/hw/hwdefs"
)

const degenerateAreaEps = 1e-6

// renderScene rasterizes every binned polygon, tile by tile. Within a
// tile, polygons render back-to-front on their depth-sort key; the
// per-pixel depth test still decides occlusion, so submission order does
// not matter for opaque geometry. When the scene is done the polygon
// pool and all tile lists are released and the display layer is told the
// frame changed.
func (p *PVR) renderScene() {
	log.ModRaster.InfoZ("scene render").
		Int("polygons", p.polys.count()).
		Int("fifo", p.fifo.len()).
		End()

	for i := range p.depth {
		p.depth[i] = 0xFFFF
	}

	for i := range p.tiles.tiles {
		tile := &p.tiles.tiles[i]
		if len(tile.polys) > 0 {
			p.renderTile(tile)
		}
	}

	p.polys.clear()
	p.tiles.clearLists()

	if p.FrameChanged != nil {
		p.FrameChanged()
	}
}

// renderTile sorts the tile's polygon handles farthest-first and draws
// them in order.
func (p *PVR) renderTile(tile *Tile) {
	sort.SliceStable(tile.polys, func(i, j int) bool {
		return p.polys.at(tile.polys[i]).ZKey > p.polys.at(tile.polys[j]).ZKey
	})

	for _, h := range tile.polys {
		p.renderPolygon(p.polys.at(h))
	}
}

// renderPolygon applies backface culling, then rasterizes.
func (p *PVR) renderPolygon(poly *Polygon) {
	if poly.Flags&(hwdefs.PolyCullCW|hwdefs.PolyCullCCW) != 0 {
		ax := poly.Verts[1].X - poly.Verts[0].X
		ay := poly.Verts[1].Y - poly.Verts[0].Y
		bx := poly.Verts[2].X - poly.Verts[0].X
		by := poly.Verts[2].Y - poly.Verts[0].Y

		cross := ax*by - ay*bx
		if (cross < 0 && poly.Flags&hwdefs.PolyCullCCW != 0) ||
			(cross > 0 && poly.Flags&hwdefs.PolyCullCW != 0) {
			return
		}
	}

	p.drawTriangle(poly)
}

// edgeFunc is the signed area of the parallelogram spanned by
// (x1,y1)-(x0,y0) and (x2,y2)-(x0,y0); its sign tells which side of the
// edge the point (x2,y2) lies on.
func edgeFunc(x0, y0, x1, y1, x2, y2 float32) float32 {
	return (x2-x0)*(y1-y0) - (y2-y0)*(x1-x0)
}

// drawTriangle rasterizes one triangle with barycentric interpolation,
// optional depth test and Gouraud shading, and the texture modulation
// stub. Pixels are sampled at their centers; edge pixels may double
// render or gap by a row, which is within this emulation's fidelity
// target.
func (p *PVR) drawTriangle(poly *Polygon) {
	v0, v1, v2 := &poly.Verts[0], &poly.Verts[1], &poly.Verts[2]

	minX := int(math.Floor(float64(min(v0.X, v1.X, v2.X))))
	minY := int(math.Floor(float64(min(v0.Y, v1.Y, v2.Y))))
	maxX := int(math.Ceil(float64(max(v0.X, v1.X, v2.X))))
	maxY := int(math.Ceil(float64(max(v0.Y, v1.Y, v2.Y))))

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, p.disp.Width)
	maxY = min(maxY, p.disp.Height)

	area := edgeFunc(v0.X, v0.Y, v1.X, v1.Y, v2.X, v2.Y)
	if math.Abs(float64(area)) < degenerateAreaEps {
		return
	}
	invArea := 1.0 / area

	zTest := poly.Flags&hwdefs.PolyZOn != 0
	textured := poly.Flags&hwdefs.PolyTexture != 0
	gouraud := poly.Flags&hwdefs.PolyGouraud != 0

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5
			py := float32(y) + 0.5

			w0 := edgeFunc(v1.X, v1.Y, v2.X, v2.Y, px, py) * invArea
			w1 := edgeFunc(v2.X, v2.Y, v0.X, v0.Y, px, py) * invArea
			w2 := edgeFunc(v0.X, v0.Y, v1.X, v1.Y, px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v0.Z + w1*v1.Z + w2*v2.Z
			depth := uint16(z * 65535.0)
			if zTest {
				zp := &p.depth[y*p.disp.Width+x]
				if depth > *zp {
					continue
				}
				*zp = depth
			}

			var color uint32
			switch {
			case textured && gouraud:
				r := w0*v0.R + w1*v1.R + w2*v2.R
				g := w0*v0.G + w1*v1.G + w2*v2.G
				b := w0*v0.B + w1*v1.B + w2*v2.B
				a := w0*v0.A + w1*v1.A + w2*v2.A

				// Modulate the interpolated color with the stub texel.
				tr := float32((stubTexColor >> 16) & 0xFF)
				tg := float32((stubTexColor >> 8) & 0xFF)
				tb := float32(stubTexColor & 0xFF)
				color = packARGB(a, r*tr/255.0, g*tg/255.0, b*tb/255.0)

			case textured:
				color = stubTexColor

			case gouraud:
				r := w0*v0.R + w1*v1.R + w2*v2.R
				g := w0*v0.G + w1*v1.G + w2*v2.G
				b := w0*v0.B + w1*v1.B + w2*v2.B
				a := w0*v0.A + w1*v1.A + w2*v2.A
				color = packARGB(a, r, g, b)

			default:
				// Flat shading: vertex 0 color.
				color = packARGB(v0.A, v0.R, v0.G, v0.B)
			}

			p.writePixel(x, y, color)
		}
	}
}

func packARGB(a, r, g, b float32) uint32 {
	return uint32(a*255.0)<<24 | uint32(r*255.0)<<16 |
		uint32(g*255.0)<<8 | uint32(b*255.0)
}

// writePixel stores an ARGB color into the framebuffer using the layout
// of the current pixel format.
func (p *PVR) writePixel(x, y int, color uint32) {
	off := y*p.disp.Stride + x
	fb := p.disp.VRAM

	switch p.disp.Bpp {
	case 16: // RGB565
		r := uint16((color >> 16) & 0xFF >> 3)
		g := uint16((color >> 8) & 0xFF >> 2)
		b := uint16(color & 0xFF >> 3)
		if off*2+2 <= len(fb) {
			binary.LittleEndian.PutUint16(fb[off*2:], r<<11|g<<5|b)
		}
	case 24: // BGR byte triplet
		if off*3+3 <= len(fb) {
			fb[off*3+0] = uint8(color)
			fb[off*3+1] = uint8(color >> 8)
			fb[off*3+2] = uint8(color >> 16)
		}
	case 32: // packed ARGB
		if off*4+4 <= len(fb) {
			binary.LittleEndian.PutUint32(fb[off*4:], color)
		}
	}
}
