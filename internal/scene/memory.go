package scene

import (
	"fmt"
	"image/color"

	"sketch-anchor/pkg/geometry"
)

// Memory is a retained in-memory scene graph. It stands in for the real
// render backend in the simulator and in tests: nodes persist between
// frames and RenderFrame only advances a frame counter.
type Memory struct {
	roots     []*Node
	nodesByID map[string]*Node
	nextID    int
	frames    uint64
}

// NewMemory creates an empty in-memory scene.
func NewMemory() *Memory {
	return &Memory{
		nodesByID: make(map[string]*Node),
	}
}

// CreateSolid constructs a box solid attached at the scene root.
func (m *Memory) CreateSolid(dims geometry.Vec3, c color.RGBA) *Node {
	n := &Node{
		ID:      m.newID("solid"),
		Scale:   1.0,
		Visible: true,
		Dims:    dims,
		Color:   c,
	}
	m.roots = append(m.roots, n)
	m.nodesByID[n.ID] = n
	return n
}

// Group reparents the given nodes under a new group node.
func (m *Memory) Group(children ...*Node) *Node {
	g := &Node{
		ID:      m.newID("group"),
		Scale:   1.0,
		Visible: true,
	}
	for _, c := range children {
		m.detach(c)
		c.Parent = g
		g.Children = append(g.Children, c)
	}
	m.roots = append(m.roots, g)
	m.nodesByID[g.ID] = g
	return g
}

// Remove detaches a node and its subtree from the scene entirely.
func (m *Memory) Remove(n *Node) {
	if n == nil {
		return
	}
	m.detach(n)
	m.forget(n)
}

// RenderFrame advances the frame counter.
func (m *Memory) RenderFrame() {
	m.frames++
}

// Frames returns the number of rendered frames.
func (m *Memory) Frames() uint64 {
	return m.frames
}

// Roots returns the current top-level nodes.
func (m *Memory) Roots() []*Node {
	return m.roots
}

// Lookup returns a node by ID, or nil.
func (m *Memory) Lookup(id string) *Node {
	return m.nodesByID[id]
}

func (m *Memory) newID(kind string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", kind, m.nextID)
}

// detach unlinks a node from its parent or the root list, leaving its own
// subtree intact.
func (m *Memory) detach(n *Node) {
	if n.Parent != nil {
		siblings := n.Parent.Children
		for i, c := range siblings {
			if c == n {
				n.Parent.Children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		n.Parent = nil
		return
	}
	for i, r := range m.roots {
		if r == n {
			m.roots = append(m.roots[:i], m.roots[i+1:]...)
			break
		}
	}
}

// forget drops a subtree from the ID index.
func (m *Memory) forget(n *Node) {
	delete(m.nodesByID, n.ID)
	for _, c := range n.Children {
		m.forget(c)
	}
}
