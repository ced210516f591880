package shaderlab

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the shared GLFW window. Width and Height track the
// framebuffer, which is what the compute output is sized to.
type WindowState struct {
	windowGlfw  *glfw.Window
	Width       int
	Height      int
	Resized     bool
	windowTitle string
}

// PlatformWindowModule creates the single GLFW window used by the renderer
// and input modules. Install is idempotent.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow fills in defaults for zero sizes and an empty title.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "shaderlab"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if app.hasResource((*WindowState)(nil)) {
		return
	}
	ws := createWindowState(m.Width, m.Height, m.Title)
	cmd.AddResources(ws)
	cmd.UseSystem(System(windowEventsSystem).InStage(Prelude).RunAlways())
	cmd.Logger().Infof("created window %dx%d '%s'", m.Width, m.Height, m.Title)
}

func createWindowState(width int, height int, title string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // WebGPU owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		panic(err)
	}

	fbw, fbh := win.GetFramebufferSize()
	return &WindowState{
		windowGlfw:  win,
		Width:       fbw,
		Height:      fbh,
		windowTitle: title,
	}
}

func windowEventsSystem(s *WindowState, cmd *Commands) {
	glfw.PollEvents()
	if s.windowGlfw.ShouldClose() {
		cmd.Quit()
	}
	w, h := s.windowGlfw.GetFramebufferSize()
	s.Resized = w != s.Width || h != s.Height
	s.Width, s.Height = w, h
}

func (s *WindowState) Window() *glfw.Window {
	return s.windowGlfw
}

// SetTitle updates the window title when it changed.
func (s *WindowState) SetTitle(title string) {
	if title == s.windowTitle {
		return
	}
	s.windowTitle = title
	if s.windowGlfw != nil {
		s.windowGlfw.SetTitle(title)
	}
}

func (s *WindowState) Title() string {
	return s.windowTitle
}

func (s *WindowState) Destroy() {
	if s.windowGlfw != nil {
		s.windowGlfw.Destroy()
		s.windowGlfw = nil
	}
	glfw.Terminate()
}
