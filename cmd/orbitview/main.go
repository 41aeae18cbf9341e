// Command orbitview shows a textured crate and vehicle chassis under a mouse-driven orbit camera.
//
// Left drag orbits around the crate, right drag zooms, Escape quits.
package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/loader"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
)

func main() {
	configPath := flag.String("config", "orbitview.yaml", "path to the YAML settings file")
	profile := flag.Bool("profile", false, "log frame statistics every second")
	uncapped := flag.Bool("uncapped", false, "present without vsync")
	software := flag.Bool("software", false, "force the software fallback adapter")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	if *profile {
		cfg.Engine.Profiling = true
	}

	// ── Assets ──────────────────────────────────────────────────────
	// Both meshes and textures are decoded in parallel before any window exists.
	ld := loader.NewLoader(loader.WithWorkers(cfg.Engine.Workers))
	assets, err := ld.LoadAssets([]loader.AssetSpec{
		{Name: "crate", MeshPath: cfg.Assets.Crate.Mesh, TexturePath: cfg.Assets.Crate.Texture},
		{Name: "chassis", MeshPath: cfg.Assets.Chassis.Mesh, TexturePath: cfg.Assets.Chassis.Texture},
	})
	if err != nil {
		log.Fatalf("[Main] load assets: %v", err)
	}
	focus := assets[0].Mesh.Centroid()

	// ── Window + Renderer ───────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	presentMode := renderer.PresentModeVSync
	if *uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(*software),
	)
	if err != nil {
		win.Close()
		log.Fatalf("[Main] create renderer: %v", err)
	}

	// ── Engine ──────────────────────────────────────────────────────
	eng, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithConfig(cfg),
	)
	if err != nil {
		r.Close()
		win.Close()
		log.Fatalf("[Main] %v", err)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			log.Printf("[Main] shutdown: %v", err)
		}
	}()

	for _, a := range assets {
		if err := eng.AddAsset(a); err != nil {
			eng.Close()
			log.Fatalf("[Main] %v", err)
		}
	}
	eng.Manipulator().SetFocus(focus)

	log.Printf("[Main] orbiting %v at radius %.2f", focus.Array(), eng.Manipulator().Radius())
	if err := eng.Run(); err != nil {
		log.Printf("[Main] %v", err)
	}
}
