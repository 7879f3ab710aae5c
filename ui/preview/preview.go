// Package preview shows a drawing with its partition boxes overlaid.
package preview

import (
	"fmt"
	stdimage "image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	fynecanvas "fyne.io/fyne/v2/canvas"

	"sketch-anchor/internal/image"
	"sketch-anchor/internal/partition"
	"sketch-anchor/pkg/colorutil"
	"sketch-anchor/pkg/geometry"
)

const outlineWidth = 3

// Show opens a window with the drawing, the winning contour, and the three
// part boxes drawn in their rig colors. Blocks until the window is closed.
func Show(r *image.Raster, parts partition.Result, contour []geometry.PointInt) {
	a := fyneapp.New()
	w := a.NewWindow(fmt.Sprintf("Partition Preview — %dx%d", r.Width, r.Height))

	img := fynecanvas.NewImageFromImage(renderOverlay(r, parts, contour))
	img.FillMode = fynecanvas.ImageFillContain

	w.SetContent(img)
	w.Resize(fitWindow(r.Width, r.Height))
	w.ShowAndRun()
}

// renderOverlay composites the overlay onto a copy of the drawing. The
// original pixels stay untouched underneath.
func renderOverlay(r *image.Raster, parts partition.Result, contour []geometry.PointInt) *stdimage.RGBA {
	bounds := stdimage.Rect(0, 0, r.Width, r.Height)
	out := stdimage.NewRGBA(bounds)
	draw.Draw(out, bounds, r.Image, r.Image.Bounds().Min, draw.Src)

	for _, p := range contour {
		setPixel(out, p.X, p.Y, colorutil.Dim(colorutil.Magenta, 0.9))
	}

	drawRectOutline(out, parts.Head.Rect, colorutil.HeadColor)
	drawRectOutline(out, parts.Body.Rect, colorutil.BodyColor)
	drawRectOutline(out, parts.Legs.Rect, colorutil.LegsColor)

	return out
}

// drawRectOutline draws an unfilled rectangle outline.
func drawRectOutline(img *stdimage.RGBA, rect geometry.Rect, c color.RGBA) {
	if rect.IsDegenerate() {
		return
	}
	x0, y0 := int(rect.X), int(rect.Y)
	x1, y1 := int(rect.X+rect.Width), int(rect.Y+rect.Height)

	for t := 0; t < outlineWidth; t++ {
		for x := x0; x <= x1; x++ {
			setPixel(img, x, y0+t, c)
			setPixel(img, x, y1-t, c)
		}
		for y := y0; y <= y1; y++ {
			setPixel(img, x0+t, y, c)
			setPixel(img, x1-t, y, c)
		}
	}
}

func setPixel(img *stdimage.RGBA, x, y int, c color.RGBA) {
	if !(stdimage.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	img.SetRGBA(x, y, c)
}

// fitWindow sizes the window to the image, capped to a sane desktop size.
func fitWindow(w, h int) fyne.Size {
	const maxSide = 900
	fw, fh := float32(w), float32(h)
	if fw > maxSide {
		fh *= maxSide / fw
		fw = maxSide
	}
	if fh > maxSide {
		fw *= maxSide / fh
		fh = maxSide
	}
	return fyne.NewSize(fw, fh)
}
