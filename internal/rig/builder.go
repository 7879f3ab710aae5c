// Package rig builds the three-part 3D proxy object from partition boxes.
package rig

import (
	"github.com/google/uuid"

	"sketch-anchor/internal/partition"
	"sketch-anchor/internal/scene"
	"sketch-anchor/pkg/colorutil"
	"sketch-anchor/pkg/geometry"
)

// DefaultPixelToWorld converts drawing pixels to world meters. A 400px-wide
// figure comes out about one meter wide.
const DefaultPixelToWorld = 1.0 / 400.0

// Per-part Z thickness in world units. Purely cosmetic; gives the flat
// drawing a little depth when placed.
const (
	headThickness = 0.06
	bodyThickness = 0.09
	legsThickness = 0.05
)

// defaultBoxSize is the edge length of the fallback primitive used when no
// silhouette could be extracted.
const defaultBoxSize = 0.15

// Object is the composite proxy: three stacked solids under one transform.
// Exactly one Object is current in a session at a time; the session owns
// replacement, the placement controller owns transform mutation.
type Object struct {
	ID   uuid.UUID
	Root *scene.Node

	Head *scene.Node
	Body *scene.Node
	Legs *scene.Node

	// generation increments on every placement commit; in-flight pop-in
	// animations carry the generation they were started under and go inert
	// when it moves on.
	generation uint64
}

// Build converts a partition result into a hidden composite object.
//
// The body sits at the local origin; the head is centered directly above it,
// the legs directly below, each offset by half the body height plus half its
// own height, so the three parts stack with no gap and no overlap whatever
// the input proportions. Degenerate (zero-size) boxes build zero-size solids
// and are otherwise harmless.
func Build(s scene.Scene, res partition.Result, pixelToWorld float64) *Object {
	if pixelToWorld <= 0 {
		pixelToWorld = DefaultPixelToWorld
	}

	headH := res.Head.Height * pixelToWorld
	bodyH := res.Body.Height * pixelToWorld
	legsH := res.Legs.Height * pixelToWorld

	head := s.CreateSolid(geometry.Vec3{
		X: res.Head.Width * pixelToWorld, Y: headH, Z: headThickness,
	}, colorutil.HeadColor)
	body := s.CreateSolid(geometry.Vec3{
		X: res.Body.Width * pixelToWorld, Y: bodyH, Z: bodyThickness,
	}, colorutil.BodyColor)
	legs := s.CreateSolid(geometry.Vec3{
		X: res.Legs.Width * pixelToWorld, Y: legsH, Z: legsThickness,
	}, colorutil.LegsColor)

	head.Position = geometry.Vec3{Y: (bodyH + headH) / 2}
	legs.Position = geometry.Vec3{Y: -(bodyH + legsH) / 2}

	root := s.Group(head, body, legs)
	root.Visible = false

	return &Object{
		ID:   uuid.New(),
		Root: root,
		Head: head,
		Body: body,
		Legs: legs,
	}
}

// DefaultObject builds the fallback primitive: a single plain box, hidden,
// used when extraction yields nothing.
func DefaultObject(s scene.Scene) *Object {
	box := s.CreateSolid(geometry.Vec3{
		X: defaultBoxSize, Y: defaultBoxSize, Z: defaultBoxSize,
	}, colorutil.BodyColor)

	root := s.Group(box)
	root.Visible = false

	return &Object{
		ID:   uuid.New(),
		Root: root,
		Body: box,
	}
}

// Generation returns the current placement generation.
func (o *Object) Generation() uint64 {
	return o.generation
}

// NextGeneration advances and returns the placement generation. Called by
// the placement controller at each commit.
func (o *Object) NextGeneration() uint64 {
	o.generation++
	return o.generation
}
