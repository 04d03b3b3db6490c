package hw

import (
	"neon250/emu/log"
)

const defaultTilePolyCap = 64

// Tile is a fixed screen-space rectangle holding handles into the
// polygon pool for every polygon whose bounding box touches it. Handles,
// not copies: a triangle spanning several tiles is rasterized once per
// tile but exists once.
type Tile struct {
	X, Y int
	W, H int

	polys []int
}

// TileGrid partitions the framebuffer into size×size tiles, the right
// and bottom edges clipped to the framebuffer.
type TileGrid struct {
	tiles  []Tile
	nx, ny int
	size   int
}

func newTileGrid(width, height, size int) *TileGrid {
	nx := (width + size - 1) / size
	ny := (height + size - 1) / size

	g := &TileGrid{
		tiles: make([]Tile, nx*ny),
		nx:    nx,
		ny:    ny,
		size:  size,
	}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			t := &g.tiles[y*nx+x]
			t.X = x * size
			t.Y = y * size
			t.W = min(size, width-t.X)
			t.H = min(size, height-t.Y)
			t.polys = make([]int, 0, defaultTilePolyCap)
		}
	}

	log.ModRaster.InfoZ("tile grid rebuilt").
		Int("tiles_x", nx).
		Int("tiles_y", ny).
		Int("size", size).
		End()
	return g
}

// at returns the tile at grid coordinates (x, y).
func (g *TileGrid) at(x, y int) *Tile {
	return &g.tiles[y*g.nx+x]
}

// distribute appends the polygon's handle to every tile its screen-space
// bounding box intersects.
func (g *TileGrid) distribute(poly *Polygon, handle int) {
	minX, minY := poly.Verts[0].X, poly.Verts[0].Y
	maxX, maxY := minX, minY
	for _, v := range poly.Verts[1:] {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
		maxX = max(maxX, v.X)
		maxY = max(maxY, v.Y)
	}

	ts := g.size
	tx0 := clampi(int(minX)/ts, 0, g.nx-1)
	ty0 := clampi(int(minY)/ts, 0, g.ny-1)
	tx1 := clampi(int(maxX)/ts, 0, g.nx-1)
	ty1 := clampi(int(maxY)/ts, 0, g.ny-1)

	for y := ty0; y <= ty1; y++ {
		for x := tx0; x <= tx1; x++ {
			t := g.at(x, y)
			t.polys = append(t.polys, handle)
		}
	}
}

// clearLists releases every tile's handle list without giving back the
// backing arrays.
func (g *TileGrid) clearLists() {
	for i := range g.tiles {
		g.tiles[i].polys = g.tiles[i].polys[:0]
	}
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
