// Command arsim replays a scripted AR session: a window of frames with
// surface hits, a commit gesture at a chosen frame, and a report of where
// the rig ended up.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sketch-anchor/internal/image"
	"sketch-anchor/internal/scene"
	"sketch-anchor/internal/session"
	"sketch-anchor/internal/tracking"
	"sketch-anchor/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Optional drawing to build the rig from")
	frames := flag.Int("frames", 120, "Total frames to simulate")
	hitFrom := flag.Int("hit-from", 10, "First frame with a surface hit")
	hitUntil := flag.Int("hit-until", 100, "Last frame with a surface hit")
	tapAt := flag.Int("tap-at", 60, "Frame at which the commit gesture fires")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	script := make([][]tracking.Hit, *frames)
	for i := *hitFrom; i <= *hitUntil && i < *frames; i++ {
		script[i] = []tracking.Hit{tracking.HitAt(geometry.Vec3{Y: -0.4, Z: -1.2})}
	}

	mem := scene.NewMemory()
	sess := session.New(mem, tracking.NewScriptedSource(script))
	sess.On(session.EventPlaced, func(data interface{}) {
		log.Printf("Placed rig %v", data)
	})

	if err := sess.Start(context.Background()); err != nil {
		log.Fatalf("Session start: %v", err)
	}

	if *imagePath != "" {
		r, err := image.Load(*imagePath)
		if err != nil {
			log.Fatalf("Load drawing: %v", err)
		}
		sess.LoadDrawing(r)
	}

	// Fixed-step 60Hz clock; the simulation does not sleep.
	start := time.Now()
	const step = time.Second / 60
	ref := tracking.ReferenceSpace{Origin: geometry.IdentityPose()}

	for i := 0; i < *frames; i++ {
		now := start.Add(time.Duration(i) * step)
		if i == *tapAt {
			sess.Tap(now)
		}
		sess.Frame(tracking.Frame{Index: uint64(i), Time: now}, ref)
	}

	root := sess.Rig.Root
	fmt.Printf("Frames rendered: %d\n", mem.Frames())
	fmt.Printf("Rig placed: %v\n", sess.Controller.Placed())
	if !sess.Controller.Placed() {
		os.Exit(0)
	}
	fmt.Printf("Rig position: (%.3f, %.3f, %.3f)\n", root.Position.X, root.Position.Y, root.Position.Z)
	fmt.Printf("Rig yaw: %.3f rad, scale: %.3f, visible: %v\n", root.Yaw, root.Scale, root.Visible)
}
