package hw

import (
	"time"

	"neon250/emu/log"
	"neon250/hw/hwdefs"
	"neon250/hw/hwio"
)

// Config carries the host-side knobs of the device: the VRAM aperture
// size and the virtual-time latencies of the two completion engines.
type Config struct {
	VRAMSize      int
	RenderLatency time.Duration
	DMALatency    time.Duration
}

// DefaultConfig is what the device runs with when no configuration file
// overrides it.
var DefaultConfig = Config{
	VRAMSize:      16 * 1024 * 1024,
	RenderLatency: 200 * time.Microsecond,
	DMALatency:    200 * time.Microsecond,
}

// DisplayInfo describes the framebuffer the rasterizer draws into.
type DisplayInfo struct {
	Width  int
	Height int
	Stride int // in pixels
	Bpp    int // 16, 24 or 32
	VRAM   []byte
}

// Maximum number of FIFO commands executed per drain call. Command
// execution is bounded so a full FIFO can't stall the register bus for
// arbitrarily long.
const fifoDrainBatch = 32

// PVR is the PowerVR Neon 250 3D core: eight register files behind an
// MMIO table, a command FIFO decoupling register writes from pipeline
// execution, and the tile-based rendering pipeline itself.
type PVR struct {
	Bus *hwio.Table

	core   *hwio.Bank
	poly   *hwio.Bank
	tex    *hwio.Bank
	render *hwio.Bank
	busif  *hwio.Bank
	video  *hwio.Bank
	dma    *hwio.Bank
	intr   *hwio.Bank

	cfg   Config
	clock *Clock

	renderTimer *Timer
	dmaTimer    *Timer

	fifo    cmdFIFO
	running bool // scene render in flight, FIFO drain suspended

	curVerts  [3]Vertex
	curVertex int
	polys     polyPool
	tiles     *TileGrid
	texunit   TextureUnit

	depth []uint16
	disp  DisplayInfo

	// FrameChanged is called after every completed scene render.
	FrameChanged func()
	// VBlank reports whether the video output is in vertical blanking;
	// it backs the STATUS vblank bit.
	VBlank func() bool
	// IRQ is called when an unmasked interrupt is raised.
	IRQ func()
}

// New creates the 3D core with its register files mapped and the
// power-on defaults in place. The display defaults to 640x480 RGB565
// until the host calls UpdateDisplay.
func New(cfg Config, clock *Clock) *PVR {
	p := &PVR{
		cfg:   cfg,
		clock: clock,
	}

	p.renderTimer = clock.NewTimer("render", p.renderComplete)
	p.dmaTimer = clock.NewTimer("dma", p.dmaComplete)

	p.initBus()

	vram := make([]byte, cfg.VRAMSize)
	p.UpdateDisplay(DisplayInfo{
		Width:  640,
		Height: 480,
		Stride: 640,
		Bpp:    16,
		VRAM:   vram,
	})

	p.Reset()
	return p
}

// UpdateDisplay reconfigures the framebuffer geometry: the depth buffer
// is reallocated and the tile grid rebuilt for the new dimensions.
func (p *PVR) UpdateDisplay(disp DisplayInfo) {
	p.disp = disp
	p.depth = make([]uint16, disp.Width*disp.Height)
	p.tiles = newTileGrid(disp.Width, disp.Height, p.tileSize())

	log.ModPVR.InfoZ("display reconfigured").
		Int("width", disp.Width).
		Int("height", disp.Height).
		Int("bpp", disp.Bpp).
		End()
}

// Display returns the current framebuffer description.
func (p *PVR) Display() DisplayInfo {
	return p.disp
}

// Clock returns the virtual clock driving the completion timers.
func (p *PVR) Clock() *Clock {
	return p.clock
}

// tileSize decodes the tile-size field of the CONFIG register.
func (p *PVR) tileSize() int {
	switch p.core.Word(hwdefs.CoreConfig) & hwdefs.CfgTileSizeMask {
	case hwdefs.CfgTileSize8:
		return 8
	case hwdefs.CfgTileSize16:
		return 16
	case hwdefs.CfgTileSize64:
		return 64
	default:
		return 32
	}
}

// Write32 stores a word into the register aperture, running the mapped
// side effects.
func (p *PVR) Write32(addr, val uint32) {
	p.Bus.Write32(addr, val)
}

// Read32 loads a word from the register aperture.
func (p *PVR) Read32(addr uint32) uint32 {
	return p.Bus.Read32(addr)
}

// pushCommand queues a pipeline command. A full FIFO drops the command,
// flags the overflow in STATUS and raises the overflow interrupt; the
// write itself still succeeds on the bus.
func (p *PVR) pushCommand(cmd, data uint32) {
	if !p.fifo.push(cmd, data) {
		p.core.SetBits(hwdefs.CoreStatus, hwdefs.StatFIFOFull)
		p.raiseInterrupt(hwdefs.IntFIFOOver)
		log.ModFIFO.WarnZ("FIFO overflow, command dropped").
			Hex32("cmd", cmd).
			Hex32("data", data).
			End()
		return
	}

	p.core.ClearBits(hwdefs.CoreStatus, hwdefs.StatFIFOEmpty)
	if p.fifo.full() {
		p.core.SetBits(hwdefs.CoreStatus, hwdefs.StatFIFOFull)
	}

	p.drainFIFO()
}

// drainFIFO executes queued commands, at most fifoDrainBatch per call.
// Draining is suspended while a scene render is in flight: commands
// ahead of a render start belong to the scene being drawn, commands
// behind it to the next one.
func (p *PVR) drainFIFO() {
	if p.running {
		return
	}

	for i := 0; i < fifoDrainBatch; i++ {
		e, ok := p.fifo.pop()
		if !ok {
			break
		}
		p.execCommand(e.cmd, e.data)
		if p.running {
			break
		}
	}

	if !p.fifo.full() {
		p.core.ClearBits(hwdefs.CoreStatus, hwdefs.StatFIFOFull)
	}
	if p.fifo.empty() {
		p.core.SetBits(hwdefs.CoreStatus, hwdefs.StatFIFOEmpty)
	}
}

func (p *PVR) execCommand(cmd, data uint32) {
	switch cmd {
	case cmdVertex:
		p.vertexData(data)
	case cmdColor:
		p.colorData(data)
	case cmdNormal:
		// Normals are accepted for driver compatibility but the
		// pipeline has no lighting stage to consume them.
		log.ModGeo.DebugZ("normal fragment ignored").
			Hex32("data", data).
			End()
	case cmdTexture:
		p.textureSubCommand(data)
	case cmdRender:
		p.startRender()
	default:
		log.ModFIFO.WarnZ("unknown FIFO command").
			Hex32("cmd", cmd).
			Hex32("data", data).
			End()
	}
}

// startRender draws the binned scene and opens the render busy window.
// The frame itself is produced synchronously; completion status and the
// interrupt arrive after the configured latency so drivers polling the
// busy bit see a plausible timeline.
func (p *PVR) startRender() {
	p.core.SetBits(hwdefs.CoreStatus, hwdefs.StatBusy|hwdefs.StatRenderBusy)
	p.render.ClearBits(hwdefs.RenderStatus, hwdefs.RenderDone)
	p.running = true

	p.renderScene()

	p.renderTimer.Arm(p.cfg.RenderLatency)
}

// renderComplete is the render timer callback: it closes the busy
// window, flags completion and resumes FIFO draining with whatever the
// driver queued behind the render start.
func (p *PVR) renderComplete() {
	if !p.running {
		// The scene was flushed by a reset while its completion was
		// pending.
		return
	}
	p.running = false
	p.core.ClearBits(hwdefs.CoreStatus, hwdefs.StatBusy|hwdefs.StatRenderBusy)
	p.render.SetBits(hwdefs.RenderStatus, hwdefs.RenderDone)
	p.raiseInterrupt(hwdefs.IntRenderDone)

	log.ModRaster.DebugZ("scene render complete").End()

	p.drainFIFO()
}

// raiseInterrupt latches an interrupt bit into INT_STATUS when its mask
// bit is enabled. The IRQ line to the host additionally requires the
// master enable; a masked-off event leaves no trace in status.
func (p *PVR) raiseInterrupt(bit uint32) {
	mask := p.intr.Word(hwdefs.IntMask)
	if mask&bit == 0 {
		return
	}
	p.intr.SetBits(hwdefs.IntStatus, bit)

	if mask&hwdefs.IntMaster != 0 && p.IRQ != nil {
		p.IRQ()
	}
}

// NotifyVBlank latches the start of vertical blanking: the status bit is
// refreshed on STATUS reads, but the interrupt edge comes from here.
func (p *PVR) NotifyVBlank() {
	p.core.SetBits(hwdefs.CoreStatus, hwdefs.StatVBlank)
	p.raiseInterrupt(hwdefs.IntVBlank)
}

// resetPipeline drops all in-flight geometry and queued commands.
func (p *PVR) resetPipeline() {
	p.fifo.reset()
	p.curVertex = 0
	p.curVerts = [3]Vertex{}
	p.polys.clear()
	if p.tiles != nil {
		p.tiles.clearLists()
	}
	p.running = false
	p.core.SetBits(hwdefs.CoreStatus, hwdefs.StatFIFOEmpty)
	p.core.ClearBits(hwdefs.CoreStatus,
		hwdefs.StatFIFOFull|hwdefs.StatBusy|hwdefs.StatRenderBusy)
}

// Reset performs a full chip reset: every register file back to its
// power-on value, the pipeline flushed, the texture unit cleared.
func (p *PVR) Reset() {
	log.ModPVR.InfoZ("chip reset").End()

	for _, b := range []*hwio.Bank{
		p.core, p.poly, p.tex, p.render,
		p.busif, p.video, p.dma, p.intr,
	} {
		b.Zero()
	}
	p.texunit.reset()
	p.applyDefaults()
	p.resetPipeline()
	if p.tiles != nil && p.tiles.size != p.tileSize() {
		p.tiles = newTileGrid(p.disp.Width, p.disp.Height, p.tileSize())
	}
}
