package display

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"vbagx/gui"

	"github.com/veandco/go-sdl2/sdl"
)

type textKey struct {
	s    string
	size int
	c    color.RGBA
}

func (d *Display) setColor(c color.RGBA) {
	d.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}

func sdlRect(r gui.Rect) *sdl.Rect {
	return &sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)}
}

func (d *Display) FillRect(r gui.Rect, c color.RGBA) {
	sdl.Do(func() {
		d.setColor(c)
		d.renderer.FillRect(sdlRect(r))
	})
}

func (d *Display) StrokeRect(r gui.Rect, c color.RGBA) {
	sdl.Do(func() {
		d.setColor(c)
		d.renderer.DrawRect(sdlRect(r))
	})
}

func (d *Display) Line(x1, y1, x2, y2 int, c color.RGBA) {
	sdl.Do(func() {
		d.setColor(c)
		d.renderer.DrawLine(int32(x1), int32(y1), int32(x2), int32(y2))
	})
}

func (d *Display) Text(s string, x, y, size int, c color.RGBA, align gui.Align) {
	if s == "" {
		return
	}
	sdl.Do(func() {
		t, err := d.textTexture(s, size, c)
		if err != nil {
			d.logger.Debug("Text not drawn", "text", s, "error", err)
			return
		}
		dst := sdl.Rect{X: int32(x), Y: int32(y), W: t.w, H: t.h}
		switch align {
		case gui.AlignCenter:
			dst.X -= t.w / 2
		case gui.AlignRight:
			dst.X -= t.w
		}
		d.renderer.Copy(t.tex, nil, &dst)
	})
}

func (d *Display) textTexture(s string, size int, c color.RGBA) (*texture, error) {
	key := textKey{s: s, size: size, c: c}
	if t, ok := d.text.Get(key); ok {
		return t, nil
	}
	f, err := d.font(size)
	if err != nil {
		return nil, err
	}
	surface, err := f.RenderUTF8Blended(s, sdl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
	if err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}
	defer surface.Free()
	tex, err := d.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("text texture: %w", err)
	}
	t := &texture{tex: tex, w: surface.W, h: surface.H}
	d.text.Add(key, t)
	return t, nil
}

func (d *Display) Image(img *gui.ImageData, dst gui.Rect, angle float64, alpha uint8) {
	if img == nil {
		return
	}
	sdl.Do(func() {
		t, err := d.imageTexture(img)
		if err != nil {
			d.logger.Debug("Image not drawn", "id", img.ID(), "error", err)
			return
		}
		t.tex.SetAlphaMod(alpha)
		d.renderer.CopyEx(t.tex, nil, sdlRect(dst), angle, nil, sdl.FLIP_NONE)
	})
}

func (d *Display) imageTexture(img *gui.ImageData) (*texture, error) {
	if t, ok := d.images.Get(img.ID()); ok {
		return t, nil
	}
	t, err := d.upload(img.Image())
	if err != nil {
		return nil, err
	}
	d.images.Add(img.ID(), t)
	return t, nil
}

// upload copies img into a new texture through an RGBA surface.
func (d *Display) upload(img image.Image) (*texture, error) {
	b := img.Bounds()
	w, h := int32(b.Dx()), int32(b.Dy())
	surface, err := sdl.CreateRGBSurfaceWithFormat(0, w, h, 32, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return nil, fmt.Errorf("image surface: %w", err)
	}
	defer surface.Free()

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}
	surface.Lock()
	pixels, pitch := surface.Pixels(), int(surface.Pitch)
	row := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		copy(pixels[y*pitch:y*pitch+row], rgba.Pix[y*rgba.Stride:y*rgba.Stride+row])
	}
	surface.Unlock()

	tex, err := d.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("image texture: %w", err)
	}
	tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	return &texture{tex: tex, w: w, h: h}, nil
}

// Present shows the frame and clears the back buffer for the next one.
func (d *Display) Present() {
	sdl.Do(func() {
		d.renderer.Present()
		d.setColor(gui.ColorBackground)
		d.renderer.Clear()
	})
}

// Frame draws one emulator frame into dst, which may extend past the screen.
// smooth selects linear filtering for the upload.
func (d *Display) Frame(img image.Image, dst gui.Rect, smooth bool) error {
	var err error
	sdl.Do(func() {
		quality := "0"
		if smooth {
			quality = "1"
		}
		sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, quality)
		var t *texture
		if t, err = d.upload(img); err != nil {
			return
		}
		defer t.destroy()
		d.setColor(color.RGBA{A: 255})
		d.renderer.Clear()
		d.renderer.Copy(t.tex, nil, sdlRect(dst))
		d.renderer.Present()
		sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "1")
	})
	return err
}
