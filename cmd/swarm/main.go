package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-swarm-shape/internal/summary"
	"github.com/lao-tseu-is-alive/go-swarm-shape/internal/viewer"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configPath := flag.String("config", "", "config file, .json or .yaml (empty = defaults)")
	sinkURL := flag.String("sink", "", "summary server base URL, e.g. http://localhost:8080")
	csvPath := flag.String("csv", "", "append run summaries to this CSV file")
	ticks := flag.Int("ticks", 1, "engine ticks per frame")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	cfg := swarm.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = swarm.LoadConfig(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	opts := []viewer.Option{viewer.WithLogger(logger), viewer.WithTicksPerFrame(*ticks)}
	switch {
	case *sinkURL != "":
		opts = append(opts, viewer.WithSink(summary.NewClient(*sinkURL, nil)))
	case *csvPath != "":
		store, err := summary.OpenStore(*csvPath)
		if err != nil {
			log.Fatalf("failed to open summary csv: %v", err)
		}
		defer store.Close()
		opts = append(opts, viewer.WithSink(store))
	}

	game, err := viewer.NewGame(cfg, opts...)
	if err != nil {
		log.Fatalf("failed to start the swarm: %v", err)
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Swarm: converging on a silhouette")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
