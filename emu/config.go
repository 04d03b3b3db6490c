package emu

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"neon250/emu/log"
	"neon250/hw"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"
)

type Config struct {
	Video     VideoConfig     `toml:"video"`
	Emulation EmulationConfig `toml:"emulation"`

	TraceOut io.WriteCloser `toml:"-"`
}

type VideoConfig struct {
	Width        int  `toml:"width"`
	Height       int  `toml:"height"`
	Bpp          int  `toml:"bpp"`
	Scale        int  `toml:"scale"`
	DisableVSync bool `toml:"disable_vsync"`
}

type EmulationConfig struct {
	VRAMSize      int `toml:"vram_size"`
	RenderLatency int `toml:"render_latency_us"`
	DMALatency    int `toml:"dma_latency_us"`
}

// DefaultConfig mirrors the chip's power-on environment: a 16 MiB VRAM
// aperture behind a 640x480 RGB565 output.
func DefaultConfig() Config {
	return Config{
		Video: VideoConfig{
			Width:  640,
			Height: 480,
			Bpp:    16,
			Scale:  1,
		},
		Emulation: EmulationConfig{
			VRAMSize:      16 * 1024 * 1024,
			RenderLatency: 200,
			DMALatency:    200,
		},
	}
}

// Check replaces out-of-range values with their defaults.
func (cfg *Config) Check() {
	def := DefaultConfig()
	if cfg.Video.Width <= 0 || cfg.Video.Height <= 0 {
		cfg.Video.Width = def.Video.Width
		cfg.Video.Height = def.Video.Height
	}
	switch cfg.Video.Bpp {
	case 16, 24, 32:
	default:
		log.ModEmu.Warnf("invalid bpp %d, fallback to %d", cfg.Video.Bpp, def.Video.Bpp)
		cfg.Video.Bpp = def.Video.Bpp
	}
	if cfg.Video.Scale <= 0 {
		cfg.Video.Scale = def.Video.Scale
	}
	if cfg.Emulation.VRAMSize <= 0 {
		cfg.Emulation.VRAMSize = def.Emulation.VRAMSize
	}
	if cfg.Emulation.RenderLatency <= 0 {
		cfg.Emulation.RenderLatency = def.Emulation.RenderLatency
	}
	if cfg.Emulation.DMALatency <= 0 {
		cfg.Emulation.DMALatency = def.Emulation.DMALatency
	}
}

// HWConfig converts the file-level settings into the device knobs.
func (cfg *Config) HWConfig() hw.Config {
	return hw.Config{
		VRAMSize:      cfg.Emulation.VRAMSize,
		RenderLatency: time.Duration(cfg.Emulation.RenderLatency) * time.Microsecond,
		DMALatency:    time.Duration(cfg.Emulation.DMALatency) * time.Microsecond,
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("neon250")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the neon250 config
// directory, or provides the default one.
func LoadConfigOrDefault() Config {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg); err != nil {
		return DefaultConfig()
	}
	cfg.Check()
	return cfg
}

// SaveConfig into the neon250 config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
