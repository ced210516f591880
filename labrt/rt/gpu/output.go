package gpu

import (
	"fmt"

	"github.com/gekko3d/shaderlab/labrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

// OutputTarget owns the storage texture kernels write into and the blit
// pipeline that copies it to the swapchain.
type OutputTarget struct {
	Device *wgpu.Device

	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Width   uint32
	Height  uint32

	Sampler        *wgpu.Sampler
	RenderPipeline *wgpu.RenderPipeline
	RenderBG       *wgpu.BindGroup

	generation uint64
}

func NewOutputTarget(device *wgpu.Device, surfaceFormat wgpu.TextureFormat) (*OutputTarget, error) {
	o := &OutputTarget{Device: device}

	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Blit VS/FS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.BlitWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("compile blit: %w", err)
	}
	defer module.Release()

	o.RenderPipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Blit Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	o.Sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeNearest,
		MagFilter:     wgpu.FilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		o.Release()
		return nil, err
	}
	return o, nil
}

// Generation changes whenever the storage texture is recreated.
func (o *OutputTarget) Generation() uint64 {
	return o.generation
}

// Resize recreates the storage texture when the size changed. It reports
// whether anything was recreated. Zero sizes (minimized windows) are ignored.
func (o *OutputTarget) Resize(w, h uint32) (bool, error) {
	if w == 0 || h == 0 {
		return false, nil
	}
	if o.Texture != nil && o.Width == w && o.Height == h {
		return false, nil
	}
	o.releaseTexture()

	var err error
	o.Texture, err = o.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Output Tex",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageStorageBinding | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
		SampleCount:   1,
	})
	if err != nil {
		return false, err
	}
	o.View, err = o.Texture.CreateView(nil)
	if err != nil {
		return false, err
	}
	o.RenderBG, err = o.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: o.RenderPipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: o.View},
			{Binding: 1, Sampler: o.Sampler},
		},
	})
	if err != nil {
		return false, err
	}
	o.Width, o.Height = w, h
	o.generation++
	return true, nil
}

// Blit draws the storage texture over the whole of dst.
func (o *OutputTarget) Blit(encoder *wgpu.CommandEncoder, dst *wgpu.TextureView) error {
	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       dst,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	rPass.SetPipeline(o.RenderPipeline)
	rPass.SetBindGroup(0, o.RenderBG, nil)
	rPass.Draw(3, 1, 0, 0)
	return rPass.End()
}

func (o *OutputTarget) releaseTexture() {
	if o.RenderBG != nil {
		o.RenderBG.Release()
		o.RenderBG = nil
	}
	if o.View != nil {
		o.View.Release()
		o.View = nil
	}
	if o.Texture != nil {
		o.Texture.Release()
		o.Texture = nil
	}
}

func (o *OutputTarget) Release() {
	o.releaseTexture()
	if o.Sampler != nil {
		o.Sampler.Release()
		o.Sampler = nil
	}
	if o.RenderPipeline != nil {
		o.RenderPipeline.Release()
		o.RenderPipeline = nil
	}
}
