// Package tracking maintains the per-frame reticle pose from surface hits.
//
// The device's surface-detection subsystem is an external collaborator,
// consumed through the Source and Hit interfaces: per frame it yields zero
// or more ray-surface hits, already ranked by the collaborator.
package tracking

import (
	"context"
	"fmt"
	"time"

	"sketch-anchor/pkg/geometry"
)

// Frame identifies one render frame.
type Frame struct {
	Index uint64
	Time  time.Time
}

// ReferenceSpace is the coordinate space poses are resolved into.
// Origin is the world-from-reference transform.
type ReferenceSpace struct {
	Origin geometry.Pose
}

// Hit is one ray-surface intersection reported by the collaborator.
type Hit interface {
	// Pose resolves the hit into the given reference space. Resolution can
	// fail (tracking loss between poll and resolve); ok is false then.
	Pose(ref ReferenceSpace) (geometry.Pose, bool)
}

// Source supplies this frame's hits, ordered by the collaborator
// (closest-ranked first). Results are never valid beyond the frame they
// were polled in.
type Source interface {
	PollHits(frame Frame) []Hit
}

// ReadySignaler is implemented by sources that can signal readiness once,
// through a channel closed by their own initialization hook.
type ReadySignaler interface {
	Ready() <-chan struct{}
}

// SupportChecker is implemented by sources that can only be polled for
// readiness.
type SupportChecker interface {
	Supported() bool
}

// Reticle is this frame's best surface hit. The pose is only meaningful
// while Visible is true; after a miss the stored value is stale and must
// not be read.
type Reticle struct {
	Pose    geometry.Pose
	Visible bool
}

// Tracker polls the hit source once per frame and keeps the reticle state.
type Tracker struct {
	src     Source
	reticle Reticle
}

// NewTracker creates a tracker over a hit source.
func NewTracker(src Source) *Tracker {
	return &Tracker{src: src}
}

// Update polls this frame's hits and overwrites the reticle. The first hit
// wins. No hit, or a hit whose pose cannot be resolved, hides the reticle;
// a hit from an earlier frame is never carried over.
func (t *Tracker) Update(frame Frame, ref ReferenceSpace) {
	hits := t.src.PollHits(frame)
	if len(hits) == 0 {
		t.reticle.Visible = false
		return
	}

	pose, ok := hits[0].Pose(ref)
	if !ok {
		t.reticle.Visible = false
		return
	}

	t.reticle.Pose = pose
	t.reticle.Visible = true
}

// Reticle returns the current reticle state.
func (t *Tracker) Reticle() Reticle {
	return t.reticle
}

// Source returns the hit source the tracker polls.
func (t *Tracker) Source() Source {
	return t.src
}

// WaitReady blocks until the source reports readiness. Sources that signal
// through a one-shot channel are awaited directly; otherwise Supported() is
// polled at the given interval until the context expires. An expired context
// means tracking is unavailable on this device and the session must not start.
func WaitReady(ctx context.Context, src Source, pollInterval time.Duration) error {
	if rs, ok := src.(ReadySignaler); ok {
		select {
		case <-rs.Ready():
			return nil
		case <-ctx.Done():
			return fmt.Errorf("surface tracking unavailable: %w", ctx.Err())
		}
	}

	sc, ok := src.(SupportChecker)
	if !ok {
		// No readiness contract at all; assume the source is live.
		return nil
	}
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if sc.Supported() {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return fmt.Errorf("surface tracking unavailable: %w", ctx.Err())
		}
	}
}
