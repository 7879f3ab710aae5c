// Command extracttest runs silhouette extraction and partitioning on a
// drawing and outputs the results.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"sketch-anchor/internal/image"
	"sketch-anchor/internal/partition"
	"sketch-anchor/internal/silhouette"
	"sketch-anchor/ui/preview"
)

func main() {
	imagePath := flag.String("image", "", "Path to drawing (PNG, JPEG, GIF, TIFF, or BMP)")
	minArea := flag.Float64("min-area", 0, "Minimum contour area to consider")
	closeIter := flag.Int("close-iterations", 2, "Morphological close passes")
	showPreview := flag.Bool("preview", false, "Open a window with the partition overlay")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: extracttest -image <path> [-min-area 0] [-close-iterations 2] [-preview]")
		os.Exit(1)
	}

	r, err := image.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", r.Format, r.Width, r.Height)

	opts := silhouette.DefaultOptions()
	opts.MinArea = *minArea
	opts.CloseIterations = *closeIter

	res, err := silhouette.ExtractResult(r.Image, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
	if res == nil {
		fmt.Println("No silhouette found (blank drawing?)")
		os.Exit(0)
	}

	fmt.Printf("Silhouette: bounds {x:%d y:%d w:%d h:%d}, area %.0f, %d contour points\n",
		res.Bounds.X, res.Bounds.Y, res.Bounds.Width, res.Bounds.Height,
		res.Area, len(res.Contour))

	parts := partition.Partition(res.Bounds.ToFloat(), r.Width, r.Height)
	out, err := json.MarshalIndent(parts, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if *showPreview {
		preview.Show(r, parts, res.Contour)
	}
}
