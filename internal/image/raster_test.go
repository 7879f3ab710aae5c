package image

import (
	"bytes"
	stdimage "image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img stdimage.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return &buf
}

func TestDecodeValidImage(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 64, 48))
	src.Set(10, 10, color.Black)

	r, err := Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Width != 64 || r.Height != 48 {
		t.Errorf("dimensions: got %dx%d, want 64x48", r.Width, r.Height)
	}
	if r.Format != "png" {
		t.Errorf("format: got %q, want png", r.Format)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewBufferString("not an image")); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestDecodeDownscalesOversizedUploads(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, MaxDimension*2, MaxDimension))

	r, err := Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Width != MaxDimension {
		t.Errorf("long side: got %d, want %d", r.Width, MaxDimension)
	}
	if r.Height != MaxDimension/2 {
		t.Errorf("aspect ratio not preserved: got %dx%d", r.Width, r.Height)
	}
}

func TestDecodeKeepsSmallImages(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 100, 200))

	r, err := Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Width != 100 || r.Height != 200 {
		t.Errorf("small image resized: got %dx%d", r.Width, r.Height)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/drawing.png"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
