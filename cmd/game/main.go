package main

import (
	"flag"
	"log"

	"github.com/Garsondee/descent/internal/game"
	"github.com/Garsondee/descent/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "YAML tuning file (defaults when empty)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = from time)")
	flag.Parse()

	cfg := game.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	g, err := view.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Descent")
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
