package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/catcafe/mask"
	"github.com/milk9111/catcafe/prefabs"
	"github.com/milk9111/catcafe/world"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/ebitenui/ebitenui"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	maxLogLines = 8
)

type Game struct {
	log       *slog.Logger
	worldFile string
	spec      prefabs.WorldSpec

	world   *world.World
	scenes  []string
	current int
	masks   map[string]*ebiten.Image

	paused    bool
	stepOnce  bool
	showPaths bool
	clipOK    bool
	ui        *ebitenui.UI
	reloads   <-chan string

	lines []string
}

func NewGame(log *slog.Logger, worldFile, scene string, reloads <-chan string) (*Game, error) {
	g := &Game{
		log:       log,
		worldFile: worldFile,
		showPaths: true,
		reloads:   reloads,
	}
	w, spec, err := g.build()
	if err != nil {
		return nil, err
	}
	g.setWorld(w, spec)
	for i, name := range g.scenes {
		if name == scene {
			g.current = i
		}
	}
	g.clipOK = clipboard.Init() == nil
	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) build() (*world.World, prefabs.WorldSpec, error) {
	spec, err := prefabs.LoadWorld(g.worldFile)
	if err != nil {
		return nil, spec, err
	}
	w, err := world.Build(spec, world.WithLogger(g.log))
	return w, spec, err
}

func (g *Game) setWorld(w *world.World, spec prefabs.WorldSpec) {
	g.world = w
	g.spec = spec
	g.scenes = w.Scenes()
	g.masks = map[string]*ebiten.Image{}
	if g.current >= len(g.scenes) {
		g.current = 0
	}
}

// reload rebuilds the world and keeps every agent where it was.
func (g *Game) reload() {
	w, spec, err := g.build()
	if err != nil {
		g.say(fmt.Sprintf("reload failed: %v", err))
		return
	}
	if err := w.Apply(g.world.Snapshot()); err != nil {
		g.say(fmt.Sprintf("reload failed: %v", err))
		return
	}
	g.setWorld(w, spec)
	g.say("world reloaded")
}

func (g *Game) copyFrame() {
	if !g.clipOK {
		g.say("clipboard unavailable")
		return
	}
	b, err := json.MarshalIndent(g.world.Frame(), "", "  ")
	if err != nil {
		g.say(fmt.Sprintf("copy failed: %v", err))
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	g.say("frame copied")
}

func (g *Game) say(line string) {
	g.lines = append(g.lines, line)
	if len(g.lines) > maxLogLines {
		g.lines = g.lines[len(g.lines)-maxLogLines:]
	}
}

func (g *Game) Update() error {
	select {
	case name, ok := <-g.reloads:
		if ok {
			g.say("changed: " + name)
			g.reload()
		}
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.scenes) > 0 {
		g.current = (g.current + 1) % len(g.scenes)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.showPaths = !g.showPaths
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyFrame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}

	if g.paused {
		g.ui.Update()
		if !g.stepOnce {
			return nil
		}
		g.stepOnce = false
	}

	g.world.Update(1.0 / float64(ebiten.TPS()))
	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case world.EventSceneHop:
			g.say(fmt.Sprintf("%d %s: %s -> %s", evt.Tick, evt.Agent, evt.From, evt.To))
		case world.EventStateChange:
			if evt.From != "" {
				g.say(fmt.Sprintf("%d %s: %s -> %s", evt.Tick, evt.Agent, evt.From, evt.To))
			}
		}
	}
	return nil
}

func (g *Game) sceneMask(name string) *ebiten.Image {
	if img, ok := g.masks[name]; ok {
		return img
	}
	scene, ok := g.world.Scene(name)
	if !ok {
		return nil
	}
	w, h := scene.Size()
	pal := mask.DefaultPalette
	for _, sc := range g.spec.Scenes {
		if sc.Name == name && sc.Color != nil {
			pal.Floor = sc.Color.Color
		}
	}
	img := ebiten.NewImageFromImage(mask.Raster(scene.Mask(), w, h, 4, pal))
	g.masks[name] = img
	return img
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	if len(g.scenes) == 0 {
		return
	}
	name := g.scenes[g.current]
	scene, _ := g.world.Scene(name)
	sw, sh := scene.Size()
	zoom := fit(sw, sh, baseWidth, baseHeight-40)

	if img := g.sceneMask(name); img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(zoom, zoom)
		screen.DrawImage(img, op)
	}

	for _, p := range g.world.PropsIn(name) {
		x, y := float32(p.Position.X*zoom), float32(p.Position.Y*zoom)
		vector.StrokeRect(screen, x-6, y-6, 12, 12, 1, colornames.Gold, false)
	}

	for _, a := range g.world.AgentsIn(name) {
		state := a.Machine().CurrentStateName()
		px, py := float32(a.Position.X*zoom), float32(a.Position.Y*zoom)

		if g.showPaths {
			prevX, prevY := px, py
			for _, wp := range a.Path() {
				wx, wy := float32(wp.X*zoom), float32(wp.Y*zoom)
				vector.StrokeLine(screen, prevX, prevY, wx, wy, 2, colornames.Lightgrey, true)
				prevX, prevY = wx, wy
			}
			if dest, ok := a.Destination(); ok {
				dx, dy := float32(dest.X*zoom), float32(dest.Y*zoom)
				vector.StrokeRect(screen, dx-4, dy-4, 8, 8, 1, colornames.Red, false)
			}
		}

		cfg := a.Config()
		bw, bh := float32(cfg.HitboxWidth*zoom), float32(cfg.HitboxHeight*zoom)
		if bw < 6 {
			bw = 6
		}
		if bh < 6 {
			bh = 6
		}
		vector.FillRect(screen, px-bw/2, py-bh/2, bw, bh, stateColor(state), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s %s", a.ID, state, a.Facing), int(px)+8, int(py)-16)
	}

	status := fmt.Sprintf("%s  scene %s (%d/%d)  tick %d  FPS %.0f  [Tab] scene [P] pause [V] paths [C] copy [R] reload",
		g.world.Name, name, g.current+1, len(g.scenes), g.world.Tick(), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, status, 4, baseHeight-36)
	ebitenutil.DebugPrintAt(screen, strings.Join(g.lines, "\n"), baseWidth-360, 4)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
