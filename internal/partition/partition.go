// Package partition splits a silhouette bounding rect into proportioned
// head, body, and legs boxes.
package partition

import (
	"sketch-anchor/pkg/geometry"
)

// Tag identifies which part of the figure a box covers.
type Tag int

const (
	Head Tag = iota
	Body
	Legs
)

func (t Tag) String() string {
	switch t {
	case Head:
		return "head"
	case Body:
		return "body"
	case Legs:
		return "legs"
	default:
		return "unknown"
	}
}

// Fixed fractions of the source rectangle. The body and legs bands overlap
// the bands above them on purpose; this is a coarse figure heuristic, not a
// skeletal decomposition.
const (
	headXFrac = 0.25
	headWFrac = 0.50
	headHFrac = 0.20

	torsoXFrac = 0.20
	torsoWFrac = 0.60
	torsoHFrac = 0.40

	bodyYFrac = 0.20
	legsYFrac = 0.60
)

// PartBox is one proportioned sub-rectangle of the silhouette, in image
// pixel coordinates.
type PartBox struct {
	geometry.Rect
	Tag Tag `json:"tag"`
}

// Result holds the three part boxes computed from one bounding rect.
// The boxes are only meaningful together; none is valid on its own.
type Result struct {
	Head PartBox `json:"head"`
	Body PartBox `json:"body"`
	Legs PartBox `json:"legs"`

	SourceWidth  int `json:"source_width"`  // Source image width in pixels
	SourceHeight int `json:"source_height"` // Source image height in pixels
}

// Partition splits a bounding rectangle into head, body, and legs boxes by
// fixed fractional rules. It is pure and deterministic: the same rect always
// yields a bit-identical Result. A degenerate rect yields zero-size boxes,
// which downstream consumers must tolerate.
func Partition(rect geometry.Rect, sourceWidth, sourceHeight int) Result {
	w, h := rect.Width, rect.Height

	return Result{
		Head: PartBox{
			Tag: Head,
			Rect: geometry.Rect{
				X:      rect.X + headXFrac*w,
				Y:      rect.Y,
				Width:  headWFrac * w,
				Height: headHFrac * h,
			},
		},
		Body: PartBox{
			Tag: Body,
			Rect: geometry.Rect{
				X:      rect.X + torsoXFrac*w,
				Y:      rect.Y + bodyYFrac*h,
				Width:  torsoWFrac * w,
				Height: torsoHFrac * h,
			},
		},
		Legs: PartBox{
			Tag: Legs,
			Rect: geometry.Rect{
				X:      rect.X + torsoXFrac*w,
				Y:      rect.Y + legsYFrac*h,
				Width:  torsoWFrac * w,
				Height: torsoHFrac * h,
			},
		},
		SourceWidth:  sourceWidth,
		SourceHeight: sourceHeight,
	}
}

// Boxes returns the three part boxes in head, body, legs order.
func (r Result) Boxes() [3]PartBox {
	return [3]PartBox{r.Head, r.Body, r.Legs}
}
