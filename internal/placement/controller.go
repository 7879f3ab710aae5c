// Package placement commits the rig to the reticle pose and runs the
// pop-in animation.
package placement

import (
	"math"
	"math/rand"
	"time"

	"sketch-anchor/internal/rig"
	"sketch-anchor/internal/tracking"
)

// PopInDuration is the fixed length of the scale-in animation.
const PopInDuration = 400 * time.Millisecond

// seedScale is the near-zero scale the object pops in from.
const seedScale = 0.01

// Controller drives the UNPLACED -> PLACED state machine. A commit gesture
// fires only while the reticle is visible; otherwise it is a no-op. Once
// placed, the object stays visible; re-placement just moves it and replays
// the pop-in.
type Controller struct {
	tracker *tracking.Tracker
	obj     *rig.Object
	rnd     *rand.Rand
	placed  bool
	anims   []*animation
}

// NewController creates a controller over the tracker and the current rig.
func NewController(tracker *tracking.Tracker, obj *rig.Object) *Controller {
	return NewControllerWithRand(tracker, obj, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewControllerWithRand creates a controller with an injected random source,
// for deterministic tests.
func NewControllerWithRand(tracker *tracking.Tracker, obj *rig.Object, rnd *rand.Rand) *Controller {
	return &Controller{tracker: tracker, obj: obj, rnd: rnd}
}

// SetObject swaps in a replacement rig. The new object arrives hidden, so
// the state machine returns to UNPLACED. Animations belonging to the old
// object keep their own generation and expire on their next tick.
func (c *Controller) SetObject(obj *rig.Object) {
	c.obj = obj
	c.placed = false
}

// Object returns the rig currently under control.
func (c *Controller) Object() *rig.Object {
	return c.obj
}

// Placed reports whether the rig has been committed at least once since the
// last replacement.
func (c *Controller) Placed() bool {
	return c.placed
}

// Commit handles the commit gesture. It fires only when the reticle is
// visible this frame: the reticle position (and only the position — surface
// orientation is deliberately ignored) is copied onto the rig, a uniformly
// random yaw is assigned, and a pop-in animation starts from a near-zero
// scale. Returns false for the no-op case.
func (c *Controller) Commit(now time.Time) bool {
	ret := c.tracker.Reticle()
	if !ret.Visible {
		return false
	}

	root := c.obj.Root
	root.Position = ret.Pose.Translation()
	root.Yaw = c.rnd.Float64() * 2 * math.Pi
	root.Scale = seedScale
	root.Visible = true
	c.placed = true

	c.anims = append(c.anims, &animation{
		obj:        c.obj,
		generation: c.obj.NextGeneration(),
		start:      now,
		duration:   PopInDuration,
		seed:       seedScale,
	})
	return true
}

// TickAnimations advances every in-flight pop-in by one display tick.
// Finished and stale-generation animations are dropped. Returns the number
// still active.
func (c *Controller) TickAnimations(now time.Time) int {
	active := c.anims[:0]
	for _, a := range c.anims {
		if !a.tick(now) {
			active = append(active, a)
		}
	}
	c.anims = active
	return len(c.anims)
}

// animation is one pop-in. It carries the generation it was started under;
// if the object has been re-committed since, the tick is a no-op and the
// animation terminates itself, so two animations never fight over scale.
type animation struct {
	obj        *rig.Object
	generation uint64
	start      time.Time
	duration   time.Duration
	seed       float64
}

// tick advances the ease-out cubic toward full scale. Returns true when the
// animation is finished (or stale) and must not be scheduled again.
func (a *animation) tick(now time.Time) bool {
	if a.obj.Generation() != a.generation {
		return true
	}

	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		a.obj.Root.Scale = 1.0
		return true
	}
	if elapsed < 0 {
		elapsed = 0
	}

	t := elapsed.Seconds() / a.duration.Seconds()
	u := 1 - t
	a.obj.Root.Scale = a.seed + (1-a.seed)*(1-u*u*u)
	return false
}
