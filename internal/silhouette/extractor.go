// Package silhouette extracts the dominant closed outline from a drawing.
package silhouette

import (
	"fmt"
	"image"

	"sketch-anchor/pkg/geometry"

	"gocv.io/x/gocv"
)

// Options configures silhouette extraction.
type Options struct {
	BlurKernel      int     // Gaussian blur kernel size (odd)
	CloseKernel     int     // Morphological close kernel size
	CloseIterations int     // Close passes to bridge stroke gaps
	MinArea         float64 // Contours below this area are ignored (0 = accept any)
}

// DefaultOptions returns default extraction options tuned for hand drawings.
func DefaultOptions() Options {
	return Options{
		BlurKernel:      5,
		CloseKernel:     3,
		CloseIterations: 2,
		MinArea:         0,
	}
}

// Result holds the dominant silhouette of a drawing.
type Result struct {
	Bounds  geometry.RectInt    // Axis-aligned bounding rect in image pixels
	Area    float64             // Enclosed area of the winning contour
	Contour []geometry.PointInt // Winning contour points, for debug overlays
}

// Extract finds the bounding rectangle of the dominant silhouette.
// The second return is false when the image has no closed outline at all
// (for example a blank page); that is a valid empty result, not an error.
func Extract(img image.Image, opts Options) (geometry.RectInt, bool, error) {
	res, err := ExtractResult(img, opts)
	if err != nil {
		return geometry.RectInt{}, false, err
	}
	if res == nil {
		return geometry.RectInt{}, false, nil
	}
	return res.Bounds, true, nil
}

// ExtractResult runs the full extraction pipeline and returns the winning
// contour, or nil when no outer contour exists. Native working buffers are
// released on every exit path. A panic inside the processing library is
// recovered here and surfaced as an error so the session can fall back.
func ExtractResult(img image.Image, opts Options) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("silhouette extraction failed: %v", r)
		}
	}()

	gray := imageToGray(img)
	defer gray.Close()
	if gray.Empty() {
		return nil, nil
	}

	// Light blur to suppress scanner/camera noise before thresholding.
	blurred := gocv.NewMat()
	defer blurred.Close()
	k := oddKernel(opts.BlurKernel)
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	// Otsu picks the threshold from the histogram; inverted so dark strokes
	// become foreground.
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, 0, 255, gocv.ThresholdBinaryInv+gocv.ThresholdOtsu)

	// Close small gaps so a sketchy, not-quite-joined outline still reads
	// as one region.
	ck := opts.CloseKernel
	if ck < 2 {
		ck = 2
	}
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(ck, ck))
	defer kernel.Close()
	for i := 0; i < opts.CloseIterations; i++ {
		gocv.MorphologyEx(binary, &binary, gocv.MorphClose, kernel)
	}

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	// Largest enclosed area wins. Equal areas keep the earlier contour;
	// FindContours traversal order is deterministic for a fixed input, so
	// extraction is reproducible.
	best := -1
	bestArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area < opts.MinArea {
			continue
		}
		if best < 0 || area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best < 0 {
		return nil, nil
	}

	winner := contours.At(best)
	rect := gocv.BoundingRect(winner)

	pts := winner.ToPoints()
	contour := make([]geometry.PointInt, len(pts))
	for i, p := range pts {
		contour[i] = geometry.PointInt{X: p.X, Y: p.Y}
	}

	return &Result{
		Bounds: geometry.RectInt{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
		},
		Area:    bestArea,
		Contour: contour,
	}, nil
}

// imageToGray converts a Go image.Image to a single-channel gocv.Mat using
// BT.601 luma weights.
func imageToGray(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat()
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			luma := (299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000
			mat.SetUCharAt(y, x, uint8(luma))
		}
	}
	return mat
}

// oddKernel clamps a kernel size to a valid odd value of at least 3.
func oddKernel(k int) int {
	if k < 3 {
		return 3
	}
	if k%2 == 0 {
		return k + 1
	}
	return k
}
