package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/milk9111/catcafe/config"
	"github.com/milk9111/catcafe/observe"
	"github.com/milk9111/catcafe/prefabs"
	"github.com/milk9111/catcafe/save"
	"github.com/milk9111/catcafe/tracelog"
	"github.com/milk9111/catcafe/world"
)

// sim owns the world and everything fed from its ticks.
type sim struct {
	log       *slog.Logger
	worldFile string
	dt        float64

	world *world.World
	trace *tracelog.Writer
	hub   *observe.Hub
	store save.Store
}

func newSim(log *slog.Logger, worldFile string, dt float64) (*sim, error) {
	s := &sim{log: log, worldFile: worldFile, dt: dt}
	w, err := s.build()
	if err != nil {
		return nil, err
	}
	s.world = w
	return s, nil
}

func (s *sim) build() (*world.World, error) {
	spec, err := prefabs.LoadWorld(s.worldFile)
	if err != nil {
		return nil, err
	}
	return world.Build(spec, world.WithLogger(s.log))
}

// step runs one tick and hands its events and frame to the trace and the
// observers.
func (s *sim) step() {
	s.world.Update(s.dt)
	for _, evt := range s.world.Events().Drain() {
		s.log.Debug("navsim: event", "tick", evt.Tick, "type", evt.Type, "agent", evt.Agent, "from", evt.From, "to", evt.To)
		if s.trace != nil {
			if err := s.trace.Write(evt); err != nil {
				s.log.Warn("navsim: trace write failed", "error", err)
			}
		}
	}
	if s.hub != nil && s.hub.Clients() > 0 {
		if err := s.hub.Broadcast(s.world.Frame()); err != nil {
			s.log.Warn("navsim: broadcast failed", "error", err)
		}
	}
}

// reload rebuilds the world from its definition and carries every agent and
// prop over to where it was.
func (s *sim) reload() error {
	rebuilt, err := s.build()
	if err != nil {
		return err
	}
	if err := rebuilt.Apply(s.world.Snapshot()); err != nil {
		return err
	}
	s.world = rebuilt
	s.log.Info("navsim: world reloaded", "world", rebuilt.Name, "tick", rebuilt.Tick())
	return nil
}

func (s *sim) saveTo(ctx context.Context, slot string) error {
	if s.store == nil {
		return fmt.Errorf("navsim: no save backend")
	}
	return s.store.Save(ctx, slot, s.world.Snapshot())
}

func (s *sim) loadFrom(ctx context.Context, slot string) error {
	if s.store == nil {
		return fmt.Errorf("navsim: no save backend")
	}
	st, err := s.store.Load(ctx, slot)
	if err != nil {
		return err
	}
	return s.world.Apply(st)
}

func (s *sim) close() {
	if s.trace != nil {
		_ = s.trace.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (save.Store, error) {
	switch cfg.SaveBackend {
	case config.SaveNone:
		return nil, nil
	case config.SaveRedis:
		rs := save.NewRedisStore(cfg.RedisAddr, log)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, err
		}
		return rs, nil
	case config.SaveSQLite:
		return save.OpenSQLite(cfg.SQLitePath)
	default:
		return save.NewFileStore(filepath.Clean(cfg.SaveDir))
	}
}
