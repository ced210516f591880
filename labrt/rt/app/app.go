package app

import (
	"fmt"
	"image"

	"github.com/gekko3d/shaderlab/labrt/rt/core"
	"github.com/gekko3d/shaderlab/labrt/rt/effects"
	"github.com/gekko3d/shaderlab/labrt/rt/gpu"
	"github.com/gekko3d/shaderlab/labrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	DefaultExecutionWidth = 8
	DefaultMaxThreads     = 256
)

type bindKey struct {
	pipeline  *wgpu.ComputePipeline
	outputGen uint64
	paramGen  uint64
}

// App is the WebGPU side of the frame loop. It implements core.Target: each
// frame acquires a swapchain texture, runs one compute kernel into the
// storage texture and blits it to the window.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Library *shaders.Library
	Kernels *gpu.KernelCache
	Params  *gpu.ParamBuffer
	Output  *gpu.OutputTarget

	ExecutionWidth uint32
	MaxThreads     uint32

	bindGroups map[bindKey]*wgpu.BindGroup

	frame     *wgpu.Texture
	frameView *wgpu.TextureView
	encoder   *wgpu.CommandEncoder

	log core.Logger
}

func NewApp(window *glfw.Window, executionWidth uint32, log core.Logger) *App {
	if executionWidth == 0 {
		executionWidth = DefaultExecutionWidth
	}
	if log == nil {
		log = core.Discard
	}
	return &App{
		Window:         window,
		Library:        shaders.Default(),
		ExecutionWidth: executionWidth,
		MaxThreads:     DefaultMaxThreads,
		bindGroups:     make(map[bindKey]*wgpu.BindGroup),
		log:            log,
	}
}

// Init sets up the device, surface and output target and compiles every
// kernel the catalog references. A kernel that fails to compile is fatal.
func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)

	surface := a.Instance.CreateSurface(GetSurfaceDescriptor(a.Window))
	a.Surface = surface

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return err
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return err
	}
	a.Queue = a.Device.GetQueue()

	if limit := a.Device.GetLimits().Limits.MaxComputeInvocationsPerWorkgroup; limit > 0 {
		a.MaxThreads = limit
	}

	width, height := a.Window.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, a.Device, a.Config)

	a.Output, err = gpu.NewOutputTarget(a.Device, format)
	if err != nil {
		return err
	}
	if _, err := a.Output.Resize(uint32(width), uint32(height)); err != nil {
		return err
	}
	a.Params = gpu.NewParamBuffer(a.Device, a.Queue)
	a.Kernels = gpu.NewKernelCache(a.Device, a.Library)

	sizing := core.Dispatch(a.ExecutionWidth, a.MaxThreads, uint32(width), uint32(height))
	if err := a.Kernels.Preload(effects.Kernels(), sizing.Group); err != nil {
		return fmt.Errorf("kernel library: %w", err)
	}
	a.log.Debugf("compiled %d kernels, workgroup %dx%d", a.Kernels.Len(), sizing.Group.X, sizing.Group.Y)
	return nil
}

func (a *App) Resize(w, h int) {
	if w <= 0 || h <= 0 || a.Config == nil {
		return
	}
	if a.Config.Width == uint32(w) && a.Config.Height == uint32(h) {
		return
	}
	a.Config.Width = uint32(w)
	a.Config.Height = uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	recreated, err := a.Output.Resize(uint32(w), uint32(h))
	if err != nil {
		a.log.Warnf("resize output to %dx%d: %v", w, h, err)
		return
	}
	if recreated {
		a.releaseBindGroups()
	}
}

func (a *App) Limits() (uint32, uint32) {
	return a.ExecutionWidth, a.MaxThreads
}

func (a *App) Acquire() (uint32, uint32, error) {
	if a.Output == nil || a.Output.Texture == nil {
		return 0, 0, core.ErrFrameUnavailable
	}
	tex, err := a.Surface.GetCurrentTexture()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", core.ErrFrameUnavailable, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return 0, 0, fmt.Errorf("%w: %v", core.ErrFrameUnavailable, err)
	}
	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		tex.Release()
		return 0, 0, err
	}
	a.frame, a.frameView, a.encoder = tex, view, encoder
	return a.Output.Width, a.Output.Height, nil
}

func (a *App) Dispatch(kernel string, params []byte, sizing core.Sizing) error {
	pipeline, err := a.Kernels.Pipeline(kernel, sizing.Group)
	if err != nil {
		return err
	}
	if err := a.Params.Write(params); err != nil {
		return fmt.Errorf("write params: %w", err)
	}
	bg, err := a.bindGroup(pipeline, len(params) > 0)
	if err != nil {
		return err
	}

	cPass := a.encoder.BeginComputePass(nil)
	cPass.SetPipeline(pipeline)
	cPass.SetBindGroup(0, bg, nil)
	cPass.DispatchWorkgroups(sizing.Grid.X, sizing.Grid.Y, sizing.Grid.Z)
	return cPass.End()
}

func (a *App) Present() error {
	defer a.releaseFrame()

	if err := a.Output.Blit(a.encoder, a.frameView); err != nil {
		return err
	}
	cmd, err := a.encoder.Finish(nil)
	if err != nil {
		return err
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()
	return nil
}

func (a *App) Abort() {
	a.releaseFrame()
}

// Capture reads the last rendered output back from the GPU.
func (a *App) Capture() (*image.RGBA, error) {
	return gpu.ReadTexture(a.Device, a.Queue, a.Output.Texture, a.Output.Width, a.Output.Height)
}

// bindGroup returns the group 0 bindings for pipeline: the output texture and,
// when the kernel takes parameters, the uniform buffer.
func (a *App) bindGroup(pipeline *wgpu.ComputePipeline, withParams bool) (*wgpu.BindGroup, error) {
	key := bindKey{pipeline: pipeline, outputGen: a.Output.Generation()}
	if withParams {
		key.paramGen = a.Params.Generation()
	}
	if bg, ok := a.bindGroups[key]; ok {
		return bg, nil
	}

	entries := []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: a.Output.View},
	}
	if withParams {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: 1,
			Buffer:  a.Params.Buffer,
			Size:    a.Params.Buffer.GetSize(),
		})
	}
	bg, err := a.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  pipeline.GetBindGroupLayout(0),
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	a.bindGroups[key] = bg
	return bg, nil
}

func (a *App) releaseBindGroups() {
	for k, bg := range a.bindGroups {
		bg.Release()
		delete(a.bindGroups, k)
	}
}

func (a *App) releaseFrame() {
	if a.encoder != nil {
		a.encoder.Release()
		a.encoder = nil
	}
	if a.frameView != nil {
		a.frameView.Release()
		a.frameView = nil
	}
	if a.frame != nil {
		a.frame.Release()
		a.frame = nil
	}
}

func (a *App) Release() {
	a.releaseFrame()
	a.releaseBindGroups()
	if a.Kernels != nil {
		a.Kernels.Release()
	}
	if a.Params != nil {
		a.Params.Release()
	}
	if a.Output != nil {
		a.Output.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}

func GetSurfaceDescriptor(w *glfw.Window) *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w)
}
