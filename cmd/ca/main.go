//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"atmos-ca/internal/app"
	"atmos-ca/internal/core"
	_ "atmos-ca/internal/sims/atmos"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Lookup(cfg.Sim)
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.Names())
	}

	sim := factory(nil)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("atmos-ca: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
