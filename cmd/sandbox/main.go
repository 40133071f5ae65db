package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/hubastard/shaderstate/engine/assets"
	"github.com/hubastard/shaderstate/engine/colors"
	"github.com/hubastard/shaderstate/engine/core"
	glbackend "github.com/hubastard/shaderstate/engine/gfx/gl"
	"github.com/hubastard/shaderstate/engine/gfx/glstate"
	"github.com/hubastard/shaderstate/engine/gfx/shaderlog"
	"github.com/hubastard/shaderstate/engine/platform"
)

//go:embed assets
var assetFS embed.FS

type App struct {
	state    *glstate.State
	triangle *glstate.Program
	outline  *glstate.Program
	vbo      core.Buffer
	time     float32
	frames   int
}

var triangleVerts = []float32{
	0.0, 0.6,
	-0.6, -0.6,
	0.6, -0.6,
}

func (a *App) OnStart(e *core.Engine) error {
	a.state = glstate.New(e.Device, glstate.Options{
		Extensions:  e.Device.Extensions(),
		Diagnose:    shaderlog.Formatter{Color: e.Config.DiagnosticColor}.Format,
		StackFrames: e.Config.StackFrames,
	})
	a.state.DefUniform("uTime")

	if err := a.loadPrograms(); err != nil {
		return err
	}
	a.vbo = e.Device.CreateVertexBuffer(triangleVerts)
	log.Printf("sandbox: uniforms %v, attributes %v", a.state.Uniforms(), a.state.Attributes())
	return nil
}

func (a *App) loadPrograms() error {
	fsys, err := subFS()
	if err != nil {
		return err
	}
	for _, p := range []struct {
		name string
		dst  **glstate.Program
	}{
		{"triangle", &a.triangle},
		{"outline", &a.outline},
	} {
		vert, frag, err := assets.LoadProgram(fsys, p.name)
		if err != nil {
			return err
		}
		prog, err := a.state.Program(vert, frag)
		if err != nil {
			var cerr *glstate.CompileError
			if errors.As(err, &cerr) {
				fmt.Fprintln(os.Stderr, cerr.Long)
			}
			return fmt.Errorf("program %q: %w", p.name, err)
		}
		*p.dst = prog
	}
	return nil
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.time += float32(dt)
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	s := a.state
	pulse := float32(0.5 + 0.5*math.Sin(float64(a.time)*2))

	s.PushUniform("uTime", a.time)
	s.PushAttributePointer("aPos", a.vbo, 2, 0, 2*4, 0, false, core.Float)

	s.PushProgram(a.triangle)
	s.PushUniform("uOffset[0]", -0.3, 0)
	s.PushUniform("uOffset[1]", 0, 0.1*pulse)
	r, g, b, al := colors.Cyan.Lerp(colors.Magenta, pulse).RGBA()
	s.PushAttribute("aColor", r, g, b, al)
	s.Poll()
	e.Device.DrawArrays(0, 3)

	// Nested pass: outline on top with its own program, then back.
	s.PushProgram(a.outline)
	s.PushUniform("uScale", 0.4)
	tint := colors.Yellow.WithAlpha(pulse)
	s.PushUniform("uTint", tint[:]...)
	s.Poll()
	e.Device.DrawArrays(0, 3)
	s.PopUniform("uTint")
	s.PopUniform("uScale")
	s.PopProgram()

	s.PopAttribute("aColor")
	s.PopUniform("uOffset[1]")
	s.PopUniform("uOffset[0]")
	s.PopProgram()

	s.PopAttribute("aPos")
	s.PopUniform("uTime")
	s.Poll() // leaves no program bound

	a.frames++
	if a.frames%120 == 0 {
		st := s.Stats()
		e.Window.SetTitle(fmt.Sprintf("%s | binds %d skipped %d", e.Config.Title, st.AttributeBinds, st.AttributeSkips))
	}
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return
	}
	switch k.Key {
	case core.KeyR:
		// Rebuild as after a context loss; program handles stay valid.
		if err := a.state.Refresh(); err != nil {
			log.Printf("sandbox: refresh: %v", err)
		}
	case core.KeyC:
		a.state.Clear()
		if err := a.state.Refresh(); err != nil {
			log.Printf("sandbox: clear+refresh: %v", err)
		}
	case core.KeyI:
		st := a.state.Stats()
		log.Printf("sandbox: polls %d uniforms %d binds %d skipped %d",
			st.Polls, st.UniformUploads, st.AttributeBinds, st.AttributeSkips)
		a.state.ResetStats()
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	a.state.Clear()
	e.Device.DeleteBuffer(a.vbo)
	a.state.InvalidateBuffer()
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	debug := flag.Bool("debug", false, "log state core activity")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		glstate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newDevice := func(win core.Window, cfg core.Config) (core.Device, error) {
		return glbackend.NewDeviceGL(win, cfg)
	}

	if err := core.Run(&App{}, cfg, newWindow, newDevice); err != nil {
		log.Fatal(err)
	}
}
