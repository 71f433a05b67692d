//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"sandfall/internal/app"
	"sandfall/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sc, err := cfg.SimConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	s, err := sim.New(sc)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("sandfall: %dx%d cells, scale %d, substeps %d, scene %s", sc.Width, sc.Height, sc.Scale, sc.Substeps, sc.Scene)

	game := app.New(s, cfg.HUD)

	ebiten.SetWindowTitle("sandfall")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(sc.Width*sc.Scale+max(cfg.HUD, 0), sc.Height*sc.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
