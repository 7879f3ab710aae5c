package tracking

import (
	"sketch-anchor/pkg/geometry"
)

// SimHit is a scripted hit with a known world pose. Resolvable false models
// tracking loss between poll and pose resolution.
type SimHit struct {
	World      geometry.Pose
	Resolvable bool
}

// Pose resolves the world pose into the reference space:
// reference-from-world * world.
func (h SimHit) Pose(ref ReferenceSpace) (geometry.Pose, bool) {
	if !h.Resolvable {
		return geometry.Pose{}, false
	}
	inv, ok := ref.Origin.Inverse()
	if !ok {
		return geometry.Pose{}, false
	}
	return inv.Mul(h.World), true
}

// HitAt builds a resolvable hit on a horizontal surface at the given world
// position.
func HitAt(pos geometry.Vec3) SimHit {
	return SimHit{World: geometry.TranslationPose(pos), Resolvable: true}
}

// ScriptedSource replays a fixed per-frame hit script. Frames past the end
// of the script report no hits. It signals readiness through a one-shot
// channel after ReadyAfter frames have been polled (zero = ready at once),
// which lets tests and the simulator exercise the session readiness wait.
type ScriptedSource struct {
	Script     [][]Hit
	ReadyAfter int

	polled int
	ready  chan struct{}
}

// NewScriptedSource creates a source over the given per-frame script.
func NewScriptedSource(script [][]Hit) *ScriptedSource {
	s := &ScriptedSource{Script: script, ready: make(chan struct{})}
	close(s.ready)
	return s
}

// NewDeferredSource creates a source that becomes ready only after
// readyAfter PollHits calls.
func NewDeferredSource(script [][]Hit, readyAfter int) *ScriptedSource {
	s := &ScriptedSource{Script: script, ReadyAfter: readyAfter, ready: make(chan struct{})}
	if readyAfter <= 0 {
		close(s.ready)
	}
	return s
}

// PollHits returns the scripted hits for this frame.
func (s *ScriptedSource) PollHits(frame Frame) []Hit {
	s.polled++
	if s.ReadyAfter > 0 && s.polled >= s.ReadyAfter {
		select {
		case <-s.ready:
		default:
			close(s.ready)
		}
	}
	idx := int(frame.Index)
	if idx < 0 || idx >= len(s.Script) {
		return nil
	}
	return s.Script[idx]
}

// Ready returns the one-shot readiness channel.
func (s *ScriptedSource) Ready() <-chan struct{} {
	return s.ready
}

// PlaneSource models an always-tracked horizontal plane: every frame hits
// the plane at a fixed point in front of the viewer. Used by the app's
// simulated session.
type PlaneSource struct {
	Height   float64 // plane Y in world units
	Distance float64 // hit distance in front of the origin
}

// PollHits returns the single plane hit.
func (p PlaneSource) PollHits(Frame) []Hit {
	return []Hit{HitAt(geometry.Vec3{Y: p.Height, Z: -p.Distance})}
}

// Supported reports plane tracking availability; always true in simulation.
func (p PlaneSource) Supported() bool {
	return true
}
