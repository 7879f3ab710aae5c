// Package session owns the AR session state: scene, tracker, placement
// controller, the current rig, and the reticle node.
//
// Everything here runs on a single cooperative execution context: the frame
// callback and the gesture handler interleave between frames but never run
// concurrently, so no locking is needed. Construction is session start,
// Close is session end.
package session

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"sketch-anchor/internal/image"
	"sketch-anchor/internal/partition"
	"sketch-anchor/internal/placement"
	"sketch-anchor/internal/rig"
	"sketch-anchor/internal/scene"
	"sketch-anchor/internal/silhouette"
	"sketch-anchor/internal/tracking"
	"sketch-anchor/pkg/colorutil"
	"sketch-anchor/pkg/geometry"
)

// EventType identifies session events.
type EventType int

const (
	EventTrackingReady EventType = iota
	EventImageLoaded
	EventExtractionEmpty
	EventExtractionFailed
	EventRigReplaced
	EventPlaced
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// readyTimeout bounds the wait for the tracking capability at session start.
const readyTimeout = 5 * time.Second

// Reticle solid dimensions: a thin flat marker lying on the hit surface.
var reticleDims = geometry.Vec3{X: 0.12, Y: 0.004, Z: 0.12}

// Context is the explicit AR session state. It replaces what would
// otherwise be module-level globals: one scene, one tracker, one current
// rig, one reticle.
type Context struct {
	ID uuid.UUID

	Scene      scene.Scene
	Tracker    *tracking.Tracker
	Controller *placement.Controller

	// Rig is the current proxy object. Exactly one exists at a time; it is
	// replaced, never duplicated.
	Rig *rig.Object

	// ReticleNode mirrors the tracker's reticle into the scene each frame.
	ReticleNode *scene.Node

	extractOpts  silhouette.Options
	pixelToWorld float64

	listeners map[EventType][]EventListener
}

// New creates a session over a scene and a hit source. The default fallback
// rig and the reticle node exist from the start; both are hidden until the
// session produces something to show.
func New(s scene.Scene, src tracking.Source) *Context {
	obj := rig.DefaultObject(s)
	tracker := tracking.NewTracker(src)

	reticle := s.CreateSolid(reticleDims, colorutil.Dim(colorutil.White, 0.8))
	reticle.Visible = false

	return &Context{
		ID:           uuid.New(),
		Scene:        s,
		Tracker:      tracker,
		Controller:   placement.NewController(tracker, obj),
		Rig:          obj,
		ReticleNode:  reticle,
		extractOpts:  silhouette.DefaultOptions(),
		pixelToWorld: rig.DefaultPixelToWorld,
		listeners:    make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (c *Context) On(event EventType, listener EventListener) {
	c.listeners[event] = append(c.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (c *Context) Emit(event EventType, data interface{}) {
	for _, listener := range c.listeners[event] {
		listener(data)
	}
}

// Start waits for the tracking capability to come up. Failure here is
// user-visible and fatal to the session: no core logic runs without
// surface tracking.
func (c *Context) Start(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	if err := tracking.WaitReady(waitCtx, c.Tracker.Source(), 100*time.Millisecond); err != nil {
		return err
	}
	c.Emit(EventTrackingReady, c.ID)
	return nil
}

// LoadDrawing runs the extraction pipeline over an uploaded drawing and, on
// success, replaces the current rig with one built from the silhouette.
//
// Per-extraction failures degrade gracefully: an empty result or a
// processing failure is logged, the current rig (ultimately the default
// primitive) stays in place, and the session keeps running.
func (c *Context) LoadDrawing(r *image.Raster) {
	c.Emit(EventImageLoaded, r)

	res, err := silhouette.ExtractResult(r.Image, c.extractOpts)
	if err != nil {
		log.Printf("Extraction failed, keeping fallback rig: %v", err)
		c.Emit(EventExtractionFailed, err)
		return
	}
	if res == nil {
		log.Printf("No silhouette in %dx%d drawing, keeping fallback rig", r.Width, r.Height)
		c.Emit(EventExtractionEmpty, r)
		return
	}

	parts := partition.Partition(res.Bounds.ToFloat(), r.Width, r.Height)
	c.replaceRig(rig.Build(c.Scene, parts, c.pixelToWorld))
}

// replaceRig removes the current rig from the scene entirely and installs
// the new one, keeping the one-addressable-rig invariant.
func (c *Context) replaceRig(obj *rig.Object) {
	old := c.Rig
	if old != nil {
		c.Scene.Remove(old.Root)
	}
	c.Rig = obj
	c.Controller.SetObject(obj)
	c.Emit(EventRigReplaced, obj.ID)
}

// Frame runs one render frame: update the tracker, mirror the reticle into
// the scene, advance in-flight pop-ins, render.
func (c *Context) Frame(frame tracking.Frame, ref tracking.ReferenceSpace) {
	c.Tracker.Update(frame, ref)

	ret := c.Tracker.Reticle()
	c.ReticleNode.Visible = ret.Visible
	if ret.Visible {
		c.ReticleNode.Position = ret.Pose.Translation()
	}

	c.Controller.TickAnimations(frame.Time)
	c.Scene.RenderFrame()
}

// Tap handles the commit gesture. A tap while the reticle is hidden is a
// silent no-op.
func (c *Context) Tap(now time.Time) {
	if c.Controller.Commit(now) {
		c.Emit(EventPlaced, c.Rig.ID)
	}
}

// Close tears the session down, removing session-owned nodes from the scene.
func (c *Context) Close() {
	if c.Rig != nil {
		c.Scene.Remove(c.Rig.Root)
		c.Rig = nil
	}
	if c.ReticleNode != nil {
		c.Scene.Remove(c.ReticleNode)
		c.ReticleNode = nil
	}
}
