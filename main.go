package main

import (
	"flag"
	"log"
	"os"

	"eightcircuits/pkg/game/audio"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/gameplay"
	"eightcircuits/pkg/game/locale"
	"eightcircuits/pkg/game/renderer"
	"eightcircuits/pkg/game/renderer/ebiten"
	"eightcircuits/pkg/game/renderer/tui"
)

func main() {
	rendererName := flag.String("renderer", "ebiten", "front-end: ebiten (window) or tui (terminal)")
	configPath := flag.String("config", config.DefaultPath, "tuning file (YAML); missing file uses defaults")
	lang := flag.String("lang", "en", "language of the message catalog")
	logPath := flag.String("log", "", "write the log to this file instead of stderr")
	noAudio := flag.Bool("mute", false, "disable the ambient drone and chimes")
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Cannot open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Cannot load configuration: %v", err)
	}
	config.SetCurrent(cfg)
	locale.Init(locale.DefaultDir, *lang)

	var r renderer.Renderer
	switch *rendererName {
	case "ebiten":
		r = ebiten.New()
	case "tui":
		r = tui.New()
	default:
		log.Fatalf("Unknown renderer %q (want ebiten or tui)", *rendererName)
	}
	renderer.SetRenderer(r)

	// Build before Init so a failed build exits with the terminal untouched.
	g, err := gameplay.BuildGame(cfg)
	if err != nil {
		log.Fatalf("Cannot build the session: %v", err)
	}
	if err := r.Init(); err != nil {
		log.Fatalf("Cannot start the %s renderer: %v", *rendererName, err)
	}

	if cfg.Audio.Enabled && !*noAudio {
		sm := audio.NewSoundManager(cfg.Audio)
		if err := sm.Initialize(); err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			g.Sound = sm
			defer sm.Cleanup()
		}
	}

	log.Printf("Starting with the %s renderer", *rendererName)
	runErr := r.Run(g)
	gameplay.Shutdown(g)
	if runErr != nil {
		log.Printf("Renderer stopped: %v", runErr)
	}
}
