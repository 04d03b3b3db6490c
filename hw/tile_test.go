package hw

import "testing"

func TestTileGridEdgeClipping(t *testing.T) {
	// 100x70 at size 32: 4x3 grid with clipped right and bottom edges.
	g := newTileGrid(100, 70, 32)

	if g.nx != 4 || g.ny != 3 {
		t.Fatalf("grid = %dx%d, want 4x3", g.nx, g.ny)
	}
	if tile := g.at(3, 0); tile.W != 4 {
		t.Errorf("right edge tile width = %d, want 4", tile.W)
	}
	if tile := g.at(0, 2); tile.H != 6 {
		t.Errorf("bottom edge tile height = %d, want 6", tile.H)
	}
	if tile := g.at(1, 1); tile.W != 32 || tile.H != 32 {
		t.Errorf("interior tile = %dx%d, want 32x32", tile.W, tile.H)
	}
}

func TestTileGridDistribute(t *testing.T) {
	g := newTileGrid(128, 128, 32)

	poly := &Polygon{}
	poly.Verts[0] = Vertex{X: 10, Y: 10}
	poly.Verts[1] = Vertex{X: 50, Y: 10}
	poly.Verts[2] = Vertex{X: 10, Y: 50}
	g.distribute(poly, 7)

	// The bbox covers tile columns 0-1 and rows 0-1, nothing else.
	for y := 0; y < g.ny; y++ {
		for x := 0; x < g.nx; x++ {
			want := 0
			if x < 2 && y < 2 {
				want = 1
			}
			if got := len(g.at(x, y).polys); got != want {
				t.Errorf("tile (%d,%d) handle count = %d, want %d", x, y, got, want)
			}
		}
	}
	if g.at(0, 0).polys[0] != 7 {
		t.Errorf("handle = %d, want 7", g.at(0, 0).polys[0])
	}
}

func TestTileGridDistributeClamps(t *testing.T) {
	g := newTileGrid(64, 64, 32)

	// A polygon hanging off every edge must still bin into the grid.
	poly := &Polygon{}
	poly.Verts[0] = Vertex{X: -100, Y: -100}
	poly.Verts[1] = Vertex{X: 500, Y: -100}
	poly.Verts[2] = Vertex{X: -100, Y: 500}
	g.distribute(poly, 0)

	for y := 0; y < g.ny; y++ {
		for x := 0; x < g.nx; x++ {
			if len(g.at(x, y).polys) != 1 {
				t.Errorf("tile (%d,%d) missed an overhanging polygon", x, y)
			}
		}
	}
}

func TestTileGridClearLists(t *testing.T) {
	g := newTileGrid(64, 64, 32)

	poly := &Polygon{}
	poly.Verts[1] = Vertex{X: 63, Y: 63}
	g.distribute(poly, 0)
	g.clearLists()

	for i := range g.tiles {
		if len(g.tiles[i].polys) != 0 {
			t.Fatalf("tile %d list not cleared", i)
		}
	}
	// Backing arrays are kept.
	if cap(g.tiles[0].polys) == 0 {
		t.Errorf("tile list capacity released")
	}
}
