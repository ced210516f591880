package shaderlab

import (
	"fmt"
	"image"
	"time"

	rtapp "github.com/gekko3d/shaderlab/labrt/rt/app"
	"github.com/gekko3d/shaderlab/labrt/rt/core"
)

const titleRefresh = 250 * time.Millisecond

// ComputeClientModule renders the gallery's current effect into the window
// with a WebGPU compute pass per frame. It needs the window and gallery
// modules installed before it.
type ComputeClientModule struct {
	ExecutionWidth uint32
}

type ComputeClient struct {
	rt     *rtapp.App
	driver *core.Driver

	LastFrameOK bool
	Recording   bool
	titleAt     time.Time
}

func (mod ComputeClientModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererCompute)
	ws := ensureWindowResource(app, 0, 0, "")
	g, ok := Resource[Gallery](app)
	if !ok {
		panic("ComputeClientModule requires GalleryModule")
	}

	rt := rtapp.NewApp(ws.Window(), mod.ExecutionWidth, cmd.Logger())
	if err := rt.Init(); err != nil {
		cmd.Logger().Errorf("webgpu init: %v", err)
		panic(err)
	}
	g.TakeChanged()

	cmd.AddResources(&ComputeClient{
		rt:     rt,
		driver: core.NewDriver(g.Current(), cmd.Logger()),
	})
	cmd.UseSystem(System(computeSyncSystem).InStage(PreRender).RunAlways())
	cmd.UseSystem(System(computeRenderSystem).InStage(Render).RunAlways())
	cmd.UseSystem(System(windowTitleSystem).InStage(PostRender).RunAlways())
	if app.stateful {
		cmd.UseSystem(System(computeReleaseSystem).InStage(Finale).InState(OnEnter(StateExit)))
	}
}

// computeSyncSystem applies window resizes and effect switches before the
// frame is encoded.
func computeSyncSystem(ws *WindowState, g *Gallery, c *ComputeClient, cmd *Commands) {
	if ws.Resized {
		c.rt.Resize(ws.Width, ws.Height)
	}
	if g.TakeChanged() {
		c.driver.SetDefinition(g.Current())
		cmd.Logger().Debugf("effect %s (%s)", g.Entry().ID, g.Current().Kernel())
	}
}

func computeRenderSystem(t *Time, c *ComputeClient) {
	c.LastFrameOK = c.driver.Frame(t.Time, c.rt)
}

func windowTitleSystem(t *Time, ws *WindowState, g *Gallery, c *ComputeClient) {
	if t.Time.Sub(c.titleAt) < titleRefresh {
		return
	}
	c.titleAt = t.Time
	ws.SetTitle(c.title(g))
}

func (c *ComputeClient) title(g *Gallery) string {
	s := fmt.Sprintf("%s | %.1f fps", g.Status(), c.driver.Profiler.FPS)
	if c.Recording {
		s += " | REC"
	}
	return s
}

func computeReleaseSystem(c *ComputeClient, cmd *Commands) {
	cmd.Logger().Debugf("frame stats\n%s", c.driver.Profiler.GetStatsString())
	c.rt.Release()
}

// Capture reads back the last presented frame.
func (c *ComputeClient) Capture() (*image.RGBA, error) {
	return c.rt.Capture()
}

func (c *ComputeClient) Driver() *core.Driver {
	return c.driver
}
