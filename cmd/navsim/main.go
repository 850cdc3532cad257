// Command navsim runs a world headless: agents idle, wander and travel
// between scenes while events go to the trace log and frames to any
// connected websocket viewer.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/milk9111/catcafe/config"
	"github.com/milk9111/catcafe/logger"
	"github.com/milk9111/catcafe/observe"
	"github.com/milk9111/catcafe/prefabs"
	"github.com/milk9111/catcafe/tracelog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the command body. It returns the process exit code.
func run(args []string) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("navsim", flag.ContinueOnError)
	var (
		worldFile   = fs.String("world", "world.yaml", "world definition in the prefab directory")
		prefabDir   = fs.String("prefabs", cfg.PrefabDir, "prefab override directory")
		ticks       = fs.Int("ticks", 0, "stop after this many ticks (0 runs until interrupted)")
		hz          = fs.Float64("hz", 30, "ticks per second of wall time (0 runs as fast as possible)")
		loadSlot    = fs.String("load", "", "save slot to restore before starting")
		saveSlot    = fs.String("save", "", "save slot to write on exit")
		saveEvery   = fs.Int("save_every", 0, "also save every n ticks (needs -save)")
		traceDir    = fs.String("trace", cfg.TraceDir, "trace log directory (empty disables)")
		observeAddr = fs.String("observe", cfg.ObserveAddr, "websocket observer listen address (empty disables)")
		watch       = fs.Bool("watch", false, "reload the world when prefab files change")
		level       = fs.String("log_level", "", "log level override")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *level != "" {
		cfg.LogLevel = config.ParseLogLevel(*level)
	}
	log := logger.Setup(cfg)
	prefabs.SetDir(*prefabDir)

	ctx, cancel := signalContext()
	defer cancel()

	dt := 1.0 / 30
	if *hz > 0 {
		dt = 1 / *hz
	}
	s, err := newSim(log, *worldFile, dt)
	if err != nil {
		log.Error("navsim: build world", "error", err)
		return 1
	}
	defer s.close()

	if s.store, err = openStore(ctx, cfg, log); err != nil {
		log.Error("navsim: open save store", "backend", cfg.SaveBackend, "error", err)
		return 1
	}
	if *loadSlot != "" {
		if err := s.loadFrom(ctx, *loadSlot); err != nil {
			log.Error("navsim: load", "slot", *loadSlot, "error", err)
			return 1
		}
		log.Info("navsim: restored", "slot", *loadSlot, "tick", s.world.Tick())
	}

	if *traceDir != "" {
		s.trace = tracelog.NewWriter(*traceDir, "events")
	}

	if *observeAddr != "" {
		s.hub = observe.NewHub(log)
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/frames", s.hub.Handler())
		srv := &http.Server{
			Addr:              *observeAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			<-ctx.Done()
			ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel2()
			_ = srv.Shutdown(ctx2)
		}()
		go func() {
			log.Info("navsim: observer listening", "addr", *observeAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("navsim: observer", "error", err)
			}
		}()
	}

	var reload <-chan string
	if *watch {
		watcher, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			log.Warn("navsim: watch disabled", "error", err)
		} else {
			defer watcher.Close()
			reload = watcher.Events
		}
	}

	var tick <-chan time.Time
	if *hz > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / *hz))
		defer ticker.Stop()
		tick = ticker.C
	}

	log.Info("navsim: running", "world", s.world.Name, "agents", len(s.world.Agents()), "dt", dt)
loop:
	for n := 1; *ticks == 0 || n <= *ticks; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				break loop
			case <-tick:
			}
		} else if ctx.Err() != nil {
			break loop
		}

		select {
		case name, ok := <-reload:
			if ok {
				log.Info("navsim: prefab changed", "file", name)
				if err := s.reload(); err != nil {
					log.Warn("navsim: reload failed, keeping current world", "error", err)
				}
			}
		default:
		}

		s.step()

		if *saveSlot != "" && *saveEvery > 0 && n%*saveEvery == 0 {
			if err := s.saveTo(ctx, *saveSlot); err != nil {
				log.Warn("navsim: periodic save", "slot", *saveSlot, "error", err)
			}
		}
	}

	if *saveSlot != "" {
		if err := s.saveTo(context.Background(), *saveSlot); err != nil {
			log.Error("navsim: save", "slot", *saveSlot, "error", err)
			return 1
		}
		log.Info("navsim: saved", "slot", *saveSlot, "tick", s.world.Tick())
	}
	return 0
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
