// Package hwdefs holds the PowerVR Neon 250 register map and bit
// definitions, shared between the hardware core and the tooling around it.
package hwdefs

// The register aperture decodes into eight 4KiB files of 1024 32-bit
// words each: bits 12-15 of the address select the file, bits 0-11 the
// word.
const (
	BankCore   = 0 // 0x000000-0x000FFF: core control
	BankPoly   = 1 // 0x001000-0x001FFF: polygon engine
	BankTex    = 2 // 0x002000-0x002FFF: texture processing
	BankRender = 3 // 0x003000-0x003FFF: rendering engine
	BankBus    = 4 // 0x004000-0x004FFF: bus interface
	BankVideo  = 5 // 0x005000-0x005FFF: video output
	BankDMA    = 6 // 0x006000-0x006FFF: DMA controller
	BankInt    = 7 // 0x007000-0x007FFF: interrupt control

	NumRegBanks = 8
)

// BankNames maps file indices to the names used in logs and dumps.
var BankNames = [NumRegBanks]string{
	"core", "poly", "tex", "render", "bus", "video", "dma", "int",
}

// Core control registers (byte offsets within the core file).
const (
	CoreID       = 0x000 // chip ID
	CoreRevision = 0x004 // chip revision
	CoreReset    = 0x008 // soft reset control
	CoreStatus   = 0x00C // current status
	CoreConfig   = 0x010 // configuration
	CoreMemCfg   = 0x014 // memory configuration
	CoreClock    = 0x018 // clock control
	CorePower    = 0x01C // power management
)

// Polygon engine registers.
const (
	PolyControl  = 0x000 // geometry control
	PolyStatus   = 0x004 // geometry status
	PolyVertex   = 0x008 // vertex data input
	PolyNormal   = 0x00C // normal data input
	PolyColor    = 0x010 // color data input
	PolyTexcoord = 0x014 // texture coordinate input
	PolyClip     = 0x018 // clipping control
	PolyFog      = 0x01C // fog control
	PolyLighting = 0x020 // lighting control
	PolyCullMode = 0x024 // backface culling mode
	PolyContext  = 0x028 // polygon context
	PolyListAddr = 0x02C // object list base address
	PolyListSize = 0x030 // object list size
)

// Texture processing unit registers.
const (
	TexControl      = 0x000 // texture control
	TexStatus       = 0x004 // texture status
	TexAddr         = 0x008 // texture address
	TexFormat       = 0x00C // texture format
	TexFilter       = 0x010 // texture filtering
	TexWrap         = 0x014 // texture wrapping
	TexBorder       = 0x018 // texture border color
	TexLOD          = 0x01C // level of detail control
	TexCache        = 0x020 // texture cache control
	TexPalette      = 0x024 // palette control
	TexEnv          = 0x028 // texture environment
	TexTransparency = 0x02C // transparency control
)

// Rendering engine registers.
const (
	RenderControl  = 0x000 // rendering control
	RenderStatus   = 0x004 // rendering status
	RenderZBuffer  = 0x008 // Z-buffer control
	RenderBlend    = 0x00C // alpha blending
	RenderShade    = 0x010 // shading control
	RenderDither   = 0x014 // dithering control
	RenderTileCfg  = 0x018 // tile configuration
	RenderPixFmt   = 0x01C // output pixel format
	RenderOpFlags  = 0x020 // operation flags
	RenderZBiasVal = 0x024 // Z-bias value
	RenderFogColor = 0x028 // fog color
	RenderFogDist  = 0x02C // fog distance
)

// Video output registers (only the ones the 3D core mirrors).
const (
	VideoControl = 0x000 // video control
	VideoFBAddr  = 0x018 // framebuffer address
	VideoStride  = 0x01C // framebuffer stride
)

// DMA controller registers.
const (
	DMAControl  = 0x000 // DMA control
	DMAStatus   = 0x004 // DMA status
	DMASrc      = 0x008 // source address
	DMADest     = 0x00C // destination address
	DMACount    = 0x010 // transfer count
	DMANext     = 0x014 // next descriptor
	DMABurst    = 0x018 // burst mode control
	DMAPriority = 0x01C // DMA priority
)

// Interrupt control registers.
const (
	IntStatus = 0x000 // interrupt status
	IntMask   = 0x004 // interrupt mask
	IntClear  = 0x008 // interrupt clear (write 1 to clear)
	IntConfig = 0x00C // interrupt configuration
)

// Chip identity.
const (
	ChipID       = 0x004E4543 // "NEC"
	ChipRevision = 0x00000100 // version 1.00
)

// Core reset bits.
const (
	ResetCore   = 1 << 0
	ResetGeo    = 1 << 1
	ResetTex    = 1 << 2
	ResetRender = 1 << 3
	ResetVideo  = 1 << 4
	ResetDMA    = 1 << 5
	ResetAll    = 0x0000003F
)

// Core status bits.
const (
	StatBusy       = 1 << 0 // chip is busy
	StatGeoBusy    = 1 << 1 // geometry engine busy
	StatTexBusy    = 1 << 2 // texture engine busy
	StatRenderBusy = 1 << 3 // rendering engine busy
	StatDMABusy    = 1 << 4 // DMA controller busy
	StatVBlank     = 1 << 5 // in vertical blanking
	StatFIFOEmpty  = 1 << 6 // command FIFO empty
	StatFIFOFull   = 1 << 7 // command FIFO full
	StatError      = 1 << 8 // error condition
)

// Core configuration bits. Bits 0-1 select the tile size, bits 2-3 the
// FIFO depth the driver believes it has.
const (
	CfgTileSize8    = 0x00000000
	CfgTileSize16   = 0x00000001
	CfgTileSize32   = 0x00000002
	CfgTileSize64   = 0x00000003
	CfgTileSizeMask = 0x00000003

	CfgFIFOSize256 = 0x00000000
	CfgFIFOSize512 = 0x00000004
	CfgFIFOSize1K  = 0x00000008
	CfgFIFOSize2K  = 0x0000000C

	CfgSinglePass   = 0x00000000
	CfgMultiPass    = 0x00000010
	CfgDitherOff    = 0x00000000
	CfgDitherOn     = 0x00000020
	CfgTripleBuffer = 0x00000040
	CfgFastClear    = 0x00000080
)

// Polygon control bits, snapshotted into every polygon at assembly time.
const (
	PolyZOn         = 1 << 0  // Z-buffer enabled
	PolyTexture     = 1 << 1  // texturing enabled
	PolyBlend       = 1 << 2  // alpha blending enabled
	PolyGouraud     = 1 << 3  // Gouraud shading
	PolyFogEnable   = 1 << 4  // fog enabled
	PolyAlphaTest   = 1 << 5  // alpha testing enabled
	PolyCullCW      = 1 << 6  // cull clockwise faces
	PolyCullCCW     = 1 << 7  // cull counter-clockwise faces
	PolyFrontCW     = 1 << 8  // front face is clockwise
	PolyPerspective = 1 << 9  // perspective correction
	PolyUVFlip      = 1 << 10 // flip texture coordinates
	PolyLightOn     = 1 << 11 // enable lighting
	PolySpecular    = 1 << 12 // enable specular lighting
)

// Texture format bits: format in bits 0-3, square size code in bits 4-7.
const (
	TexFmtARGB1555 = 0x00000000
	TexFmtRGB565   = 0x00000001
	TexFmtARGB4444 = 0x00000002
	TexFmtYUV422   = 0x00000003
	TexFmtBump     = 0x00000004
	TexFmtPal4bpp  = 0x00000005
	TexFmtPal8bpp  = 0x00000006
	TexFmtARGB8888 = 0x00000007

	TexFmtSize8    = 0x00000000
	TexFmtSize16   = 0x00000010
	TexFmtSize32   = 0x00000020
	TexFmtSize64   = 0x00000030
	TexFmtSize128  = 0x00000040
	TexFmtSize256  = 0x00000050
	TexFmtSize512  = 0x00000060
	TexFmtSize1024 = 0x00000070

	TexFmtMipmap   = 0x00000100
	TexFmtTwiddled = 0x00000200
	TexFmtVQ       = 0x00000400
	TexFmtStride   = 0x00000800
)

// Texture filter bits.
const (
	FilterPoint     = 0x00000000
	FilterBilinear  = 0x00000001
	FilterTrilinear = 0x00000002
)

// Texture wrap modes.
const (
	WrapRepeat = 0x00000001
	WrapClamp  = 0x00000002
	WrapMirror = 0x00000003
	WrapUShift = 0
	WrapVShift = 2
)

// Render control bits.
const (
	RenderStart     = 1 << 0 // start rendering
	RenderEnable    = 1 << 1 // enable rendering
	RenderReset     = 1 << 2 // reset rendering engine
	RenderOpaque    = 1 << 3 // render opaque polygons
	RenderTrans     = 1 << 4 // render translucent polygons
	RenderPunchthru = 1 << 5 // render punch-through polygons
	RenderModifier  = 1 << 6 // render modifier volumes
)

// Render status bits.
const (
	RenderDone = 1 << 0 // last scene render completed
)

// Z-buffer control bits.
const (
	ZNever    = 0x00000000
	ZLess     = 0x00000001
	ZEqual    = 0x00000002
	ZLEqual   = 0x00000003
	ZGreater  = 0x00000004
	ZNotEqual = 0x00000005
	ZGEqual   = 0x00000006
	ZAlways   = 0x00000007
	ZWrite    = 0x00000010
	ZFullInt  = 0x00000000
	ZHalfInt  = 0x00000100
)

// Alpha blend factors.
const (
	BlendZero        = 0x00000000
	BlendOne         = 0x00000001
	BlendSrcAlpha    = 0x00000002
	BlendInvSrcAlpha = 0x00000003
	BlendDstAlpha    = 0x00000004
	BlendInvDstAlpha = 0x00000005
	BlendSrcShift    = 0
	BlendDstShift    = 4
)

// DMA control bits.
const (
	DMAStart     = 1 << 0 // start DMA transfer
	DMAEnable    = 1 << 1 // enable DMA
	DMAReset     = 1 << 2 // reset DMA controller
	DMASuspend   = 1 << 3 // suspend DMA
	DMAToVRAM    = 1 << 4 // transfer to VRAM
	DMAFromVRAM  = 1 << 5 // transfer from VRAM
	DMAChain     = 1 << 6 // chain mode enabled
	DMAInterrupt = 1 << 7 // generate interrupt on completion
)

// DMA status bits.
const (
	DMABusy      = 1 << 0 // transfer in progress
	DMADone      = 1 << 1 // transfer complete
	DMASuspended = 1 << 2 // transfer suspended
	DMAError     = 1 << 3 // error occurred
)

// Interrupt status/mask/clear bits.
const (
	IntVBlank     = 1 << 0  // vertical blanking
	IntRenderDone = 1 << 1  // rendering complete
	IntDMADone    = 1 << 2  // DMA complete
	IntError      = 1 << 3  // error
	IntBus        = 1 << 4  // bus interface
	IntFIFOOver   = 1 << 5  // FIFO overflow
	IntFIFOUnder  = 1 << 6  // FIFO underflow
	IntMaster     = 1 << 31 // master interrupt enable
)
