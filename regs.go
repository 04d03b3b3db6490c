package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"neon250/hw/hwdefs"
)

type regdef struct {
	off  uint32
	name string
}

var regdefs = [hwdefs.NumRegBanks][]regdef{
	hwdefs.BankCore: {
		{hwdefs.CoreID, "ID"},
		{hwdefs.CoreRevision, "REVISION"},
		{hwdefs.CoreReset, "RESET"},
		{hwdefs.CoreStatus, "STATUS"},
		{hwdefs.CoreConfig, "CONFIG"},
		{hwdefs.CoreMemCfg, "MEM_CFG"},
		{hwdefs.CoreClock, "CLOCK"},
		{hwdefs.CorePower, "POWER"},
	},
	hwdefs.BankPoly: {
		{hwdefs.PolyControl, "CONTROL"},
		{hwdefs.PolyStatus, "STATUS"},
		{hwdefs.PolyVertex, "VERTEX"},
		{hwdefs.PolyNormal, "NORMAL"},
		{hwdefs.PolyColor, "COLOR"},
		{hwdefs.PolyTexcoord, "TEXCOORD"},
		{hwdefs.PolyClip, "CLIP"},
		{hwdefs.PolyFog, "FOG"},
		{hwdefs.PolyLighting, "LIGHTING"},
		{hwdefs.PolyCullMode, "CULL_MODE"},
		{hwdefs.PolyContext, "CONTEXT"},
		{hwdefs.PolyListAddr, "LIST_ADDR"},
		{hwdefs.PolyListSize, "LIST_SIZE"},
	},
	hwdefs.BankTex: {
		{hwdefs.TexControl, "CONTROL"},
		{hwdefs.TexStatus, "STATUS"},
		{hwdefs.TexAddr, "ADDR"},
		{hwdefs.TexFormat, "FORMAT"},
		{hwdefs.TexFilter, "FILTER"},
		{hwdefs.TexWrap, "WRAP"},
		{hwdefs.TexBorder, "BORDER"},
		{hwdefs.TexLOD, "LOD"},
		{hwdefs.TexCache, "CACHE"},
		{hwdefs.TexPalette, "PALETTE"},
		{hwdefs.TexEnv, "ENV"},
		{hwdefs.TexTransparency, "TRANSPARENCY"},
	},
	hwdefs.BankRender: {
		{hwdefs.RenderControl, "CONTROL"},
		{hwdefs.RenderStatus, "STATUS"},
		{hwdefs.RenderZBuffer, "ZBUFFER"},
		{hwdefs.RenderBlend, "BLEND"},
		{hwdefs.RenderShade, "SHADE"},
		{hwdefs.RenderDither, "DITHER"},
		{hwdefs.RenderTileCfg, "TILE_CFG"},
		{hwdefs.RenderPixFmt, "PIX_FMT"},
		{hwdefs.RenderOpFlags, "OP_FLAGS"},
		{hwdefs.RenderZBiasVal, "ZBIAS"},
		{hwdefs.RenderFogColor, "FOG_COLOR"},
		{hwdefs.RenderFogDist, "FOG_DIST"},
	},
	hwdefs.BankBus: {},
	hwdefs.BankVideo: {
		{hwdefs.VideoControl, "CONTROL"},
		{hwdefs.VideoFBAddr, "FB_ADDR"},
		{hwdefs.VideoStride, "STRIDE"},
	},
	hwdefs.BankDMA: {
		{hwdefs.DMAControl, "CONTROL"},
		{hwdefs.DMAStatus, "STATUS"},
		{hwdefs.DMASrc, "SRC"},
		{hwdefs.DMADest, "DEST"},
		{hwdefs.DMACount, "COUNT"},
		{hwdefs.DMANext, "NEXT"},
		{hwdefs.DMABurst, "BURST"},
		{hwdefs.DMAPriority, "PRIORITY"},
	},
	hwdefs.BankInt: {
		{hwdefs.IntStatus, "STATUS"},
		{hwdefs.IntMask, "MASK"},
		{hwdefs.IntClear, "CLEAR"},
		{hwdefs.IntConfig, "CONFIG"},
	},
}

// printRegs dumps the register map, one line per register, with the
// absolute MMIO address of each.
func printRegs(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for bank, defs := range regdefs {
		if len(defs) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t(file %d)\n", hwdefs.BankNames[bank], bank)
		for _, def := range defs {
			addr := uint32(bank)<<12 | def.off
			fmt.Fprintf(tw, "  0x%06X\t%s_%s\n", addr,
				strings.ToUpper(hwdefs.BankNames[bank]), def.name)
		}
	}
	tw.Flush()
}
