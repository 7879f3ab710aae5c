// Package scene defines the render capability the pipeline draws against.
//
// The real renderer is an external collaborator; this package carries the
// minimal surface the rig builder and session need: make a solid, group
// nodes, mutate transforms and visibility, render a frame.
package scene

import (
	"image/color"

	"sketch-anchor/pkg/geometry"
)

// Node is one element of the retained scene graph. Transforms are uniform:
// a position, a yaw about the world Y axis, and a single scale factor.
// Children inherit the parent transform wholesale.
type Node struct {
	ID       string
	Position geometry.Vec3
	Yaw      float64 // radians, about world Y
	Scale    float64
	Visible  bool

	// Solid data; zero Dims means the node is a pure group.
	Dims  geometry.Vec3
	Color color.RGBA

	Parent   *Node
	Children []*Node
}

// Scene is the opaque render capability.
type Scene interface {
	// CreateSolid constructs a box solid with the given world dimensions
	// and color, attached at the scene root, visible, at unit scale.
	CreateSolid(dims geometry.Vec3, c color.RGBA) *Node

	// Group reparents the given nodes under a new group node and returns it.
	Group(children ...*Node) *Node

	// Remove detaches a node (and its subtree) from the scene entirely.
	Remove(n *Node)

	// RenderFrame draws the current graph. The in-memory implementation
	// only counts frames; a real backend would rasterize here.
	RenderFrame()
}
