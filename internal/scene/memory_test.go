package scene

import (
	"image/color"
	"testing"

	"sketch-anchor/pkg/geometry"
)

func TestCreateSolidDefaults(t *testing.T) {
	m := NewMemory()
	n := m.CreateSolid(geometry.Vec3{X: 1, Y: 2, Z: 3}, color.RGBA{R: 255, A: 255})

	if !n.Visible || n.Scale != 1.0 {
		t.Errorf("solid defaults: visible=%v scale=%v", n.Visible, n.Scale)
	}
	if len(m.Roots()) != 1 {
		t.Errorf("roots: got %d, want 1", len(m.Roots()))
	}
	if m.Lookup(n.ID) != n {
		t.Error("solid not indexed by ID")
	}
}

func TestGroupReparents(t *testing.T) {
	m := NewMemory()
	a := m.CreateSolid(geometry.Vec3{X: 1}, color.RGBA{})
	b := m.CreateSolid(geometry.Vec3{Y: 1}, color.RGBA{})

	g := m.Group(a, b)

	if a.Parent != g || b.Parent != g {
		t.Error("children not reparented under the group")
	}
	if len(g.Children) != 2 {
		t.Errorf("group children: got %d, want 2", len(g.Children))
	}
	// Grouped nodes leave the root list; only the group remains.
	if len(m.Roots()) != 1 || m.Roots()[0] != g {
		t.Errorf("roots after grouping: %d", len(m.Roots()))
	}
}

func TestRemoveDropsSubtree(t *testing.T) {
	m := NewMemory()
	a := m.CreateSolid(geometry.Vec3{X: 1}, color.RGBA{})
	g := m.Group(a)

	m.Remove(g)

	if len(m.Roots()) != 0 {
		t.Errorf("roots after remove: got %d, want 0", len(m.Roots()))
	}
	if m.Lookup(g.ID) != nil || m.Lookup(a.ID) != nil {
		t.Error("removed nodes still indexed")
	}
}

func TestRenderFrameCounts(t *testing.T) {
	m := NewMemory()
	m.RenderFrame()
	m.RenderFrame()
	if m.Frames() != 2 {
		t.Errorf("frames: got %d, want 2", m.Frames())
	}
}
