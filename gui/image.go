package gui

import (
	"image"
	"image/color"
	"sync"

	"go.uber.org/atomic"
)

var imageIDs atomic.Uint64

// ImageData is immutable pixel data shared between elements. Renderers may
// cache uploads keyed on ID.
type ImageData struct {
	id  uint64
	img image.Image
}

func NewImageData(img image.Image) *ImageData {
	if img == nil {
		return nil
	}
	return &ImageData{id: imageIDs.Inc(), img: img}
}

func (d *ImageData) ID() uint64 { return d.id }

func (d *ImageData) Image() image.Image { return d.img }

func (d *ImageData) Size() (int, int) {
	b := d.img.Bounds()
	return b.Dx(), b.Dy()
}

type Image struct {
	Base

	mu    sync.Mutex
	data  *ImageData
	fill  color.RGBA
	angle float64
	alpha uint8
}

func NewImage(name string, data *ImageData, w, h int) *Image {
	img := &Image{data: data, alpha: 255}
	img.init(name, w, h)
	return img
}

// NewRect is an Image without pixel data, drawn as a solid rectangle.
func NewRect(name string, c color.RGBA, w, h int) *Image {
	img := &Image{fill: c, alpha: 255}
	img.init(name, w, h)
	return img
}

func (i *Image) Data() *ImageData {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.data
}

func (i *Image) SetAngle(a float64) {
	i.mu.Lock()
	i.angle = a
	i.mu.Unlock()
}

func (i *Image) SetAlpha(a uint8) {
	i.mu.Lock()
	i.alpha = a
	i.mu.Unlock()
}

func (i *Image) Draw(r Renderer) {
	if !i.Visible() {
		return
	}
	i.mu.Lock()
	data, fill, angle, alpha := i.data, i.fill, i.angle, i.alpha
	i.mu.Unlock()

	bounds := i.Bounds()
	if data == nil {
		if fill.A > 0 {
			r.FillRect(bounds, withAlpha(fill, alpha))
		}
		return
	}
	r.Image(data, bounds, angle, alpha)
}

func (i *Image) Update(*Input) {}
