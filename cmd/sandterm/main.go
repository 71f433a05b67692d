package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/app"
	"sandfall/internal/sim"
	"sandfall/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	sound := flag.Bool("sound", false, "play a tone when lava meets water")
	logPath := flag.String("log", "", "write log output to this file")
	flag.Parse()

	// The screen owns the terminal until Fini, so log to a file or nowhere.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	sc, err := cfg.SimConfig()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("config: %v", err)
	}
	s, err := sim.New(sc)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	var cue *term.Cue
	if *sound {
		if cue, err = term.NewCue(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
		defer cue.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	log.Printf("sandterm: scene %s, substeps %d, tps %d", sc.Scene, sc.Substeps, cfg.TPS)

	runErr := term.New(screen, s, cfg.TPS, cue).Run()
	screen.Fini()
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
