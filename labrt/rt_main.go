package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/shaderlab"
	"github.com/gekko3d/shaderlab/labrt/rt/config"
	"github.com/gekko3d/shaderlab/labrt/rt/effects"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfgPath := flag.String("config", "shaderlab.toml", "TOML launch configuration")
	effect := flag.String("effect", "", "Initial effect id (see -list)")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	execWidth := flag.Uint("execution-width", 0, "Compute workgroup width")
	debug := flag.Bool("debug", false, "Enable debug logging")
	watch := flag.Bool("watch", true, "Reload effect settings when the config file changes")
	list := flag.Bool("list", false, "List effects and exit")
	flag.Parse()

	if *list {
		for _, e := range effects.Catalog() {
			fmt.Printf("%-22s %-18s %s\n", e.ID, e.Section, e.Name)
		}
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *effect != "" {
		cfg.Gallery.Effect = *effect
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *execWidth > 0 {
		cfg.Render.ExecutionWidth = uint32(*execWidth)
	}
	if *debug {
		cfg.Log.Debug = true
	}

	app := shaderlab.NewAppBuilder().
		UseStates(shaderlab.StateRunning, shaderlab.StateExit).
		UseModule(shaderlab.LoggingModule{Prefix: cfg.Log.Prefix, Debug: cfg.Log.Debug}).
		UseModule(shaderlab.TimeModule{}).
		UseModule(shaderlab.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)).
		UseModule(shaderlab.InputModule{}).
		UseModule(shaderlab.GalleryModule{Effect: cfg.Gallery.Effect, Overrides: cfg.Effects}).
		UseModule(shaderlab.ConfigModule{Path: *cfgPath, Config: cfg, Watch: *watch}).
		UseModule(shaderlab.ComputeClientModule{ExecutionWidth: cfg.Render.ExecutionWidth}).
		UseModule(shaderlab.CaptureModule{
			Dir:        cfg.Capture.Dir,
			Width:      cfg.Capture.Width,
			Height:     cfg.Capture.Height,
			Caption:    cfg.Capture.Caption,
			FPS:        cfg.Capture.FPS,
			Codec:      cfg.Capture.Codec,
			FFmpegPath: cfg.Capture.FFmpegPath,
		}).
		Build()

	if ws, ok := shaderlab.Resource[shaderlab.WindowState](app); ok {
		defer ws.Destroy()
	}
	app.Run()
}
