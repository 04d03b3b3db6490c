package hw

import (
	"neon250/emu/log"
	"neon250/hw/hwdefs"
	"neon250/hw/hwio"
)

// initBus creates the eight register files, maps them into the MMIO
// table and wires every register side effect.
func (p *PVR) initBus() {
	p.Bus = hwio.NewTable("pvr")

	p.core = hwio.NewBank(hwdefs.BankNames[hwdefs.BankCore])
	p.poly = hwio.NewBank(hwdefs.BankNames[hwdefs.BankPoly])
	p.tex = hwio.NewBank(hwdefs.BankNames[hwdefs.BankTex])
	p.render = hwio.NewBank(hwdefs.BankNames[hwdefs.BankRender])
	p.busif = hwio.NewBank(hwdefs.BankNames[hwdefs.BankBus])
	p.video = hwio.NewBank(hwdefs.BankNames[hwdefs.BankVideo])
	p.dma = hwio.NewBank(hwdefs.BankNames[hwdefs.BankDMA])
	p.intr = hwio.NewBank(hwdefs.BankNames[hwdefs.BankInt])

	p.Bus.MapBank(hwdefs.BankCore, p.core)
	p.Bus.MapBank(hwdefs.BankPoly, p.poly)
	p.Bus.MapBank(hwdefs.BankTex, p.tex)
	p.Bus.MapBank(hwdefs.BankRender, p.render)
	p.Bus.MapBank(hwdefs.BankBus, p.busif)
	p.Bus.MapBank(hwdefs.BankVideo, p.video)
	p.Bus.MapBank(hwdefs.BankDMA, p.dma)
	p.Bus.MapBank(hwdefs.BankInt, p.intr)

	// Core file: identity is read-only, RESET is write-to-pulse, STATUS
	// refreshes the vblank bit on read.
	p.core.MapWriteFn(hwdefs.CoreID, p.writeReadonly("ID"))
	p.core.MapWriteFn(hwdefs.CoreRevision, p.writeReadonly("REVISION"))
	p.core.MapWriteFn(hwdefs.CoreReset, p.writeReset)
	p.core.MapWriteFn(hwdefs.CoreStatus, p.writeReadonly("STATUS"))
	p.core.MapReadFn(hwdefs.CoreStatus, p.readStatus)
	p.core.MapWriteFn(hwdefs.CoreConfig, p.writeConfig)

	// Polygon file: the data-entry registers feed the FIFO.
	p.poly.MapWriteFn(hwdefs.PolyVertex, p.writeVertex)
	p.poly.MapWriteFn(hwdefs.PolyNormal, p.writeNormal)
	p.poly.MapWriteFn(hwdefs.PolyColor, p.writeColor)
	p.poly.MapWriteFn(hwdefs.PolyTexcoord, p.writeTexcoord)

	// Texture file: addresses and formats flow through the FIFO so they
	// stay ordered with the geometry that uses them; the sampling-state
	// registers are latched immediately.
	p.tex.MapWriteFn(hwdefs.TexControl, p.writeTexControl)
	p.tex.MapWriteFn(hwdefs.TexAddr, p.writeTexAddr)
	p.tex.MapWriteFn(hwdefs.TexFormat, p.writeTexFormat)
	p.tex.MapWriteFn(hwdefs.TexFilter, p.writeTexFilter)
	p.tex.MapWriteFn(hwdefs.TexWrap, p.writeTexWrap)

	p.render.MapWriteFn(hwdefs.RenderControl, p.writeRenderControl)

	p.video.MapWriteFn(hwdefs.VideoFBAddr, p.writeVideoFBAddr)
	p.video.MapWriteFn(hwdefs.VideoStride, p.writeVideoStride)

	p.dma.MapWriteFn(hwdefs.DMAControl, p.writeDMAControl)

	p.intr.MapWriteFn(hwdefs.IntStatus, p.writeReadonly("INT_STATUS"))
	p.intr.MapWriteFn(hwdefs.IntClear, p.writeIntClear)
	p.intr.MapWriteFn(hwdefs.IntMask, p.writeIntMask)
}

// applyDefaults loads the power-on register values.
func (p *PVR) applyDefaults() {
	p.core.SetWord(hwdefs.CoreID, hwdefs.ChipID)
	p.core.SetWord(hwdefs.CoreRevision, hwdefs.ChipRevision)
	p.core.SetWord(hwdefs.CoreStatus, hwdefs.StatFIFOEmpty)
	p.core.SetWord(hwdefs.CoreConfig, hwdefs.CfgTileSize32|hwdefs.CfgFIFOSize1K)

	p.tex.SetWord(hwdefs.TexFormat, hwdefs.TexFmtARGB1555|hwdefs.TexFmtSize256)
	p.tex.SetWord(hwdefs.TexFilter, hwdefs.FilterBilinear)
	p.tex.SetWord(hwdefs.TexWrap,
		hwdefs.WrapRepeat<<hwdefs.WrapUShift|hwdefs.WrapRepeat<<hwdefs.WrapVShift)
	p.texunit.Filter = hwdefs.FilterBilinear
	p.texunit.Wrap = hwdefs.WrapRepeat<<hwdefs.WrapUShift |
		hwdefs.WrapRepeat<<hwdefs.WrapVShift

	p.render.SetWord(hwdefs.RenderZBuffer, hwdefs.ZLess|hwdefs.ZWrite|hwdefs.ZFullInt)
	p.render.SetWord(hwdefs.RenderBlend,
		hwdefs.BlendSrcAlpha<<hwdefs.BlendSrcShift|
			hwdefs.BlendInvSrcAlpha<<hwdefs.BlendDstShift)
}

// writeReadonly ignores and logs writes to registers the driver has no
// business storing into.
func (p *PVR) writeReadonly(name string) hwio.WriteFn {
	return func(_, val uint32) {
		log.ModPVR.DebugZ("write to read-only register ignored").
			String("reg", name).
			Hex32("val", val).
			End()
	}
}

// writeReset pulses the soft-reset lines. The full-chip bit wins; the
// per-engine bits zero only their own file and flush the state that
// engine owns. The register itself always reads back zero.
func (p *PVR) writeReset(_, val uint32) {
	log.ModPVR.InfoZ("soft reset").Hex32("val", val).End()

	if val&hwdefs.ResetCore != 0 {
		p.Reset()
		return
	}
	if val&hwdefs.ResetGeo != 0 {
		p.poly.Zero()
		p.resetPipeline()
	}
	if val&hwdefs.ResetTex != 0 {
		p.tex.Zero()
		p.texunit.reset()
	}
	if val&hwdefs.ResetRender != 0 {
		p.render.Zero()
	}
	if val&hwdefs.ResetVideo != 0 {
		p.video.Zero()
	}
	if val&hwdefs.ResetDMA != 0 {
		p.dma.Zero()
	}
}

// readStatus refreshes the live bits of STATUS before the read: the
// vblank flag tracks the video output's state at read time. Without a
// vblank source the bit latched by NotifyVBlank is left alone.
func (p *PVR) readStatus(val uint32) uint32 {
	if p.VBlank == nil {
		return val
	}
	if p.VBlank() {
		val |= hwdefs.StatVBlank
	} else {
		val &^= hwdefs.StatVBlank
	}
	p.core.SetWord(hwdefs.CoreStatus, val)
	return val
}

// writeConfig latches the configuration word; a tile-size change
// rebuilds the tile grid (and drops the current scene's binning).
func (p *PVR) writeConfig(old, val uint32) {
	p.core.SetWord(hwdefs.CoreConfig, val)

	if old&hwdefs.CfgTileSizeMask != val&hwdefs.CfgTileSizeMask {
		p.tiles = newTileGrid(p.disp.Width, p.disp.Height, p.tileSize())
	}
}

func (p *PVR) writeVertex(_, val uint32) {
	p.poly.SetWord(hwdefs.PolyVertex, val)
	p.pushCommand(cmdVertex, val)
}

func (p *PVR) writeNormal(_, val uint32) {
	p.poly.SetWord(hwdefs.PolyNormal, val)
	p.pushCommand(cmdNormal, val)
}

func (p *PVR) writeColor(_, val uint32) {
	p.poly.SetWord(hwdefs.PolyColor, val)
	p.pushCommand(cmdColor, val)
}

func (p *PVR) writeTexcoord(_, val uint32) {
	p.poly.SetWord(hwdefs.PolyTexcoord, val)
	p.pushCommand(cmdTexture, texSubUV<<24|val&0xFFFFFF)
}

func (p *PVR) writeTexControl(_, val uint32) {
	p.tex.SetWord(hwdefs.TexControl, val)
	p.texunit.Control = val
}

func (p *PVR) writeTexAddr(_, val uint32) {
	p.tex.SetWord(hwdefs.TexAddr, val)
	p.pushCommand(cmdTexture, texSubAddr<<24|val&0xFFFFFF)
}

func (p *PVR) writeTexFormat(_, val uint32) {
	p.tex.SetWord(hwdefs.TexFormat, val)
	p.pushCommand(cmdTexture, texSubFormat<<24|val&0xFFFFFF)
}

func (p *PVR) writeTexFilter(_, val uint32) {
	p.tex.SetWord(hwdefs.TexFilter, val)
	p.texunit.Filter = val
}

func (p *PVR) writeTexWrap(_, val uint32) {
	p.tex.SetWord(hwdefs.TexWrap, val)
	p.texunit.Wrap = val
}

// writeRenderControl starts or resets the rendering engine. The start
// pulse goes through the FIFO like any other command, so geometry queued
// before it is part of the scene and geometry queued after it is not.
func (p *PVR) writeRenderControl(_, val uint32) {
	p.render.SetWord(hwdefs.RenderControl, val&^hwdefs.RenderStart)

	if val&hwdefs.RenderReset != 0 {
		p.render.Zero()
		p.resetPipeline()
		return
	}
	if val&hwdefs.RenderStart != 0 {
		log.ModRaster.DebugZ("render start").Hex32("ctrl", val).End()
		// The busy window opens at the write, even when a FIFO backlog
		// delays the command's execution.
		p.core.SetBits(hwdefs.CoreStatus, hwdefs.StatBusy|hwdefs.StatRenderBusy)
		p.pushCommand(cmdRender, 0)
	}
}

func (p *PVR) writeVideoFBAddr(_, val uint32) {
	p.video.SetWord(hwdefs.VideoFBAddr, val&0xFFFFFF)
	log.ModPVR.DebugZ("framebuffer address").Hex32("addr", val&0xFFFFFF).End()
}

func (p *PVR) writeVideoStride(_, val uint32) {
	p.video.SetWord(hwdefs.VideoStride, val)
}

// writeDMAControl latches the control word and kicks the engine on the
// start pulse. A start while a transfer's completion is still pending
// reschedules the completion timer; the Arm call logs the hazard.
func (p *PVR) writeDMAControl(_, val uint32) {
	p.dma.SetWord(hwdefs.DMAControl, val&^hwdefs.DMAStart)

	if val&hwdefs.DMAReset != 0 {
		p.dma.Zero()
		p.core.ClearBits(hwdefs.CoreStatus, hwdefs.StatBusy|hwdefs.StatDMABusy)
		return
	}
	if val&hwdefs.DMAStart != 0 {
		p.dmaTransfer()
	}
}

// writeIntClear acknowledges interrupts: every 1 bit written clears the
// matching INT_STATUS bit. The clear register itself holds no state.
func (p *PVR) writeIntClear(_, val uint32) {
	p.intr.ClearBits(hwdefs.IntStatus, val)
}

func (p *PVR) writeIntMask(_, val uint32) {
	p.intr.SetWord(hwdefs.IntMask, val)
}
