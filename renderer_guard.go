package shaderlab

import (
	"fmt"
)

// RendererTag marks that a renderer has been installed into the App. Only
// one renderer may own the window surface.
type RendererTag struct {
	Name string
}

const RendererCompute = "compute"

// ensureSingleRenderer panics when a different renderer is already installed.
func ensureSingleRenderer(app *App, name string) {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	if tag, ok := Resource[RendererTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
		}
		return
	}
	app.addResources(&RendererTag{Name: name})
}

// ensureWindowResource returns the shared WindowState, installing the
// platform window module with the given sizes when none exists yet.
func ensureWindowResource(app *App, width, height int, title string) *WindowState {
	if ws, ok := Resource[WindowState](app); ok {
		return ws
	}
	NewPlatformWindow(width, height, title).Install(app, app.Commands())
	ws, _ := Resource[WindowState](app)
	return ws
}
