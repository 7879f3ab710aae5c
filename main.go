// Package main provides the entry point for the sketch anchor application.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"sketch-anchor/internal/image"
	"sketch-anchor/internal/scene"
	"sketch-anchor/internal/session"
	"sketch-anchor/internal/tracking"
	"sketch-anchor/internal/version"
	"sketch-anchor/pkg/geometry"
)

const appTitle = "Sketch Anchor"

func main() {
	imagePath := flag.String("image", "", "Drawing to turn into the placed object")
	runFor := flag.Duration("duration", 3*time.Second, "How long to run the simulated session")
	tapAfter := flag.Duration("tap-after", time.Second, "When the commit gesture fires")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	mem := scene.NewMemory()
	src := tracking.PlaneSource{Height: -0.5, Distance: 1.5}
	sess := session.New(mem, src)
	defer sess.Close()

	sess.On(session.EventRigReplaced, func(data interface{}) {
		log.Printf("Rig replaced: %v", data)
	})
	sess.On(session.EventExtractionEmpty, func(interface{}) {
		log.Println("Drawing had no silhouette; using the default box")
	})
	sess.On(session.EventPlaced, func(data interface{}) {
		log.Printf("Placed rig %v at the reticle", data)
	})

	if err := sess.Start(context.Background()); err != nil {
		log.Fatalf("Surface tracking unavailable: %v", err)
	}
	log.Println("Surface tracking ready")

	if *imagePath != "" {
		r, err := image.Load(*imagePath)
		if err != nil {
			log.Fatalf("Failed to load drawing: %v", err)
		}
		log.Printf("Loaded %s drawing: %dx%d", r.Format, r.Width, r.Height)
		sess.LoadDrawing(r)
	}

	runLoop(sess, *runFor, *tapAfter)

	root := sess.Rig.Root
	log.Printf("Session end: placed=%v position=(%.3f, %.3f, %.3f) scale=%.3f",
		sess.Controller.Placed(), root.Position.X, root.Position.Y, root.Position.Z, root.Scale)
}

// runLoop drives the session with a display-rate ticker, firing the commit
// gesture once at the configured offset.
func runLoop(sess *session.Context, runFor, tapAfter time.Duration) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	start := time.Now()
	ref := tracking.ReferenceSpace{Origin: geometry.IdentityPose()}
	tapped := false

	var index uint64
	for now := range ticker.C {
		if !tapped && now.Sub(start) >= tapAfter {
			sess.Tap(now)
			tapped = true
		}
		sess.Frame(tracking.Frame{Index: index, Time: now}, ref)
		index++

		if now.Sub(start) >= runFor {
			return
		}
	}
}
