package hw

import (
	"neon250/emu/log"
	"neon250/hw/hwdefs"
)

// Transfers bigger than this are clamped; the original hardware cannot
// address more than the 16 MiB VRAM aperture in one shot.
const dmaMaxTransfer = 16 * 1024 * 1024

// dmaTransfer performs a DMA copy inside VRAM. The copy itself is
// synchronous; the busy window and the completion interrupt are modeled
// on the virtual clock. A transfer with out-of-range addresses is
// skipped (and logged), but still completes: the engine signals done
// even for copies it refused, matching the hardware's fire-and-forget
// behavior.
func (p *PVR) dmaTransfer() {
	src := p.dma.Word(hwdefs.DMASrc)
	dest := p.dma.Word(hwdefs.DMADest)
	count := p.dma.Word(hwdefs.DMACount)

	if count > dmaMaxTransfer {
		log.ModDMA.WarnZ("transfer size clamped").
			Hex32("count", count).
			End()
		count = dmaMaxTransfer
	}

	log.ModDMA.DebugZ("transfer").
		Hex32("src", src).
		Hex32("dest", dest).
		Hex32("count", count).
		End()

	vlen := uint64(len(p.disp.VRAM))
	if uint64(src)+uint64(count) > vlen || uint64(dest)+uint64(count) > vlen {
		log.ModDMA.WarnZ("transfer out of bounds, skipped").
			Hex32("src", src).
			Hex32("dest", dest).
			Hex32("count", count).
			End()
	} else if count > 0 {
		copy(p.disp.VRAM[dest:dest+count], p.disp.VRAM[src:src+count])
	}

	p.dma.SetBits(hwdefs.DMAStatus, hwdefs.DMABusy|hwdefs.DMADone)
	p.core.SetBits(hwdefs.CoreStatus, hwdefs.StatBusy|hwdefs.StatDMABusy)

	p.dmaTimer.Arm(p.cfg.DMALatency)
}

// dmaComplete is the DMA timer callback: it closes the busy window and
// raises the completion interrupt. Clearing bits is idempotent, so a
// rescheduled timer firing after a back-to-back restart is harmless.
func (p *PVR) dmaComplete() {
	p.dma.ClearBits(hwdefs.DMAStatus, hwdefs.DMABusy)
	p.core.ClearBits(hwdefs.CoreStatus, hwdefs.StatBusy|hwdefs.StatDMABusy)
	p.raiseInterrupt(hwdefs.IntDMADone)

	log.ModDMA.DebugZ("transfer complete").End()
}
