// Command navview draws a running world: scene masks, agents coloured by
// behavior state, their paths and destinations.
package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/catcafe/config"
	"github.com/milk9111/catcafe/logger"
	"github.com/milk9111/catcafe/prefabs"
)

func main() {
	cfg := config.Load()

	worldFile := flag.String("world", "world.yaml", "world definition in the prefab directory")
	prefabDir := flag.String("prefabs", cfg.PrefabDir, "prefab override directory")
	scene := flag.String("scene", "", "scene to show first")
	watch := flag.Bool("watch", true, "reload the world when prefab files change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	log := logger.Setup(cfg)
	prefabs.SetDir(*prefabDir)

	var reloads <-chan string
	if *watch {
		if dirs := prefabs.WatchDirs(); len(dirs) > 0 {
			watcher, err := prefabs.NewWatcher(dirs...)
			if err != nil {
				log.Warn("navview: watch disabled", "error", err)
			} else {
				defer watcher.Close()
				reloads = watcher.Events
			}
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("catcafe navview")

	game, err := NewGame(log, *worldFile, *scene, reloads)
	if err != nil {
		log.Error("navview: build world", "error", err)
		os.Exit(1)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Error("navview: run", "error", err)
		os.Exit(1)
	}
}
