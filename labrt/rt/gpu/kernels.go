package gpu

import (
	"fmt"

	"github.com/gekko3d/shaderlab/labrt/rt/core"
	"github.com/gekko3d/shaderlab/labrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

type kernelKey struct {
	name   string
	groupX uint32
	groupY uint32
}

// KernelCache compiles compute pipelines on first use. A pipeline is bound
// to the workgroup size it was compiled for, so the cache is keyed by both.
type KernelCache struct {
	Device  *wgpu.Device
	Library *shaders.Library

	pipelines map[kernelKey]*wgpu.ComputePipeline
}

func NewKernelCache(device *wgpu.Device, lib *shaders.Library) *KernelCache {
	return &KernelCache{
		Device:    device,
		Library:   lib,
		pipelines: make(map[kernelKey]*wgpu.ComputePipeline),
	}
}

func (c *KernelCache) Pipeline(name string, group core.Size3) (*wgpu.ComputePipeline, error) {
	key := kernelKey{name: name, groupX: group.X, groupY: group.Y}
	if p, ok := c.pipelines[key]; ok {
		return p, nil
	}

	src, err := c.Library.Source(name, group.X, group.Y)
	if err != nil {
		return nil, err
	}
	module, err := c.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name + " CS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	defer module.Release()

	p, err := c.Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: name + " Pipeline",
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: shaders.EntryPoint,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline %s: %w", name, err)
	}
	c.pipelines[key] = p
	return p, nil
}

// Preload compiles every named kernel and stops at the first failure.
func (c *KernelCache) Preload(names []string, group core.Size3) error {
	for _, n := range names {
		if _, err := c.Pipeline(n, group); err != nil {
			return err
		}
	}
	return nil
}

func (c *KernelCache) Len() int {
	return len(c.pipelines)
}

func (c *KernelCache) Release() {
	for k, p := range c.pipelines {
		p.Release()
		delete(c.pipelines, k)
	}
}
