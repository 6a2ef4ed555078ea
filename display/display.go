// Package display puts the menu on an SDL2 window: it implements the gui
// Renderer, InputSource and Haptics ports and the menu Platform.
//
// SDL must be driven from the thread that created the window, so every call
// into it goes through sdl.Do. The application runs inside sdl.Main.
package display

import (
	"fmt"
	"log/slog"

	"vbagx/gui"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	textCacheSize  = 256
	imageCacheSize = 64
)

type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	Logger     *slog.Logger
}

// Display owns the SDL window and renderer. Drawing happens in the logical
// gui.ScreenWidth x gui.ScreenHeight space whatever the window size.
type Display struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	logger   *slog.Logger

	fonts  map[int]*ttf.Font
	text   *lru.Cache[textKey, *texture]
	images *lru.Cache[uint64, *texture]
}

type texture struct {
	tex  *sdl.Texture
	w, h int32
}

func (t *texture) destroy() {
	if t.tex != nil {
		t.tex.Destroy()
	}
}

func Open(opts Options) (*Display, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	d := &Display{logger: logger, fonts: make(map[int]*ttf.Font)}

	var err error
	sdl.Do(func() { err = d.open(opts) })
	if err != nil {
		d.Close()
		return nil, err
	}

	evict := func(_ textKey, t *texture) { t.destroy() }
	if d.text, err = lru.NewWithEvict(textCacheSize, evict); err != nil {
		d.Close()
		return nil, fmt.Errorf("text cache: %w", err)
	}
	if d.images, err = lru.NewWithEvict(imageCacheSize, func(_ uint64, t *texture) { t.destroy() }); err != nil {
		d.Close()
		return nil, fmt.Errorf("image cache: %w", err)
	}

	logger.Info("Display opened", "width", opts.Width, "height", opts.Height, "fullscreen", opts.Fullscreen)
	return d, nil
}

func (d *Display) open(opts Options) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER | sdl.INIT_HAPTIC); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		return fmt.Errorf("ttf init: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN)
	if opts.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = gui.ScreenWidth, gui.ScreenHeight
	}

	var err error
	d.window, err = sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, int32(w), int32(h), flags)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	d.renderer, err = sdl.CreateRenderer(d.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	if err := d.renderer.SetLogicalSize(gui.ScreenWidth, gui.ScreenHeight); err != nil {
		return fmt.Errorf("logical size: %w", err)
	}
	if err := d.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return fmt.Errorf("blend mode: %w", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "1")
	return nil
}

func (d *Display) Close() {
	sdl.Do(func() {
		if d.text != nil {
			d.text.Purge()
		}
		if d.images != nil {
			d.images.Purge()
		}
		for _, f := range d.fonts {
			f.Close()
		}
		if d.renderer != nil {
			d.renderer.Destroy()
		}
		if d.window != nil {
			d.window.Destroy()
		}
		ttf.Quit()
		sdl.Quit()
	})
	d.logger.Debug("Display closed")
}

// font returns the default face at size, opening it on first use.
func (d *Display) font(size int) (*ttf.Font, error) {
	if f, ok := d.fonts[size]; ok {
		return f, nil
	}
	rw, err := sdl.RWFromMem(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("font data: %w", err)
	}
	f, err := ttf.OpenFontRW(rw, 1, size)
	if err != nil {
		return nil, fmt.Errorf("open font size %d: %w", size, err)
	}
	d.fonts[size] = f
	return f, nil
}
