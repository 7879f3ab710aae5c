package silhouette

import (
	stdimage "image"
	"image/color"
	"image/draw"
	"testing"
)

// page builds a white drawing surface.
func page(w, h int) *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), stdimage.NewUniform(color.White), stdimage.Point{}, draw.Src)
	return img
}

func fill(img *stdimage.RGBA, r stdimage.Rectangle, c color.Color) {
	draw.Draw(img, r, stdimage.NewUniform(c), stdimage.Point{}, draw.Src)
}

func TestExtractFindsDominantBlob(t *testing.T) {
	img := page(400, 800)
	fill(img, stdimage.Rect(50, 50, 350, 750), color.Black)

	rect, found, err := Extract(img, DefaultOptions())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !found {
		t.Fatal("expected a silhouette")
	}

	// The blur/close pipeline may shift edges by a few pixels.
	const tol = 5
	if abs(rect.X-50) > tol || abs(rect.Y-50) > tol ||
		abs(rect.Width-300) > tol || abs(rect.Height-700) > tol {
		t.Errorf("bounds: got %+v, want ~{50 50 300 700}", rect)
	}
}

func TestExtractPicksLargestOfSeveral(t *testing.T) {
	img := page(500, 500)
	fill(img, stdimage.Rect(20, 20, 60, 60), color.Black)     // small
	fill(img, stdimage.Rect(100, 100, 400, 400), color.Black) // dominant
	fill(img, stdimage.Rect(440, 440, 480, 480), color.Black) // small

	rect, found, err := Extract(img, DefaultOptions())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !found {
		t.Fatal("expected a silhouette")
	}

	const tol = 5
	if abs(rect.X-100) > tol || abs(rect.Width-300) > tol {
		t.Errorf("largest blob should win: got %+v", rect)
	}
}

func TestExtractBlankPageIsEmptyNotError(t *testing.T) {
	rect, found, err := Extract(page(300, 300), DefaultOptions())
	if err != nil {
		t.Fatalf("blank page must not error: %v", err)
	}
	if found {
		t.Errorf("blank page produced a silhouette: %+v", rect)
	}
}

func TestExtractDeterministic(t *testing.T) {
	img := page(300, 300)
	fill(img, stdimage.Rect(40, 40, 260, 260), color.Black)

	first, found1, err1 := Extract(img, DefaultOptions())
	second, found2, err2 := Extract(img, DefaultOptions())
	if err1 != nil || err2 != nil {
		t.Fatalf("extract: %v / %v", err1, err2)
	}
	if found1 != found2 || first != second {
		t.Errorf("extraction not deterministic: %+v vs %+v", first, second)
	}
}

func TestExtractClosesStrokeGaps(t *testing.T) {
	// An outline with 1px gaps still reads as one region after closing.
	img := page(200, 200)
	const pen = 4
	fill(img, stdimage.Rect(40, 40, 160, 40+pen), color.Black)        // top
	fill(img, stdimage.Rect(40, 156, 160, 160), color.Black)          // bottom
	fill(img, stdimage.Rect(40, 40+pen+1, 40+pen, 156), color.Black) // left, gap at top
	fill(img, stdimage.Rect(156, 40+pen+1, 160, 156), color.Black)   // right, gap at top

	rect, found, err := Extract(img, DefaultOptions())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !found {
		t.Fatal("expected a silhouette")
	}
	const tol = 6
	if abs(rect.Width-120) > tol || abs(rect.Height-120) > tol {
		t.Errorf("gapped outline should still bound the full shape: %+v", rect)
	}
}

func TestExtractMinAreaFiltersNoise(t *testing.T) {
	img := page(300, 300)
	fill(img, stdimage.Rect(10, 10, 14, 14), color.Black) // speck

	opts := DefaultOptions()
	opts.MinArea = 100

	_, found, err := Extract(img, opts)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if found {
		t.Error("speck below MinArea must be treated as empty")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
