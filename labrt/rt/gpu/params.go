package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ParamBuffer is the uniform buffer behind group 0 binding 1. It only ever
// grows; Generation changes whenever the underlying buffer is replaced so
// bind groups referencing it can be rebuilt.
type ParamBuffer struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
	Buffer *wgpu.Buffer

	generation uint64
}

func NewParamBuffer(device *wgpu.Device, queue *wgpu.Queue) *ParamBuffer {
	return &ParamBuffer{Device: device, Queue: queue}
}

func (p *ParamBuffer) Generation() uint64 {
	return p.generation
}

// Write uploads data, reallocating the buffer when it is too small.
func (p *ParamBuffer) Write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	size := uniformSize(len(data))
	if p.Buffer == nil || p.Buffer.GetSize() < size {
		if p.Buffer != nil {
			p.Buffer.Release()
		}
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Effect Params",
			Size:  size,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.Buffer = nil
			return err
		}
		p.Buffer = buf
		p.generation++
	}
	p.Queue.WriteBuffer(p.Buffer, 0, padTo4(data))
	return nil
}

func (p *ParamBuffer) Release() {
	if p.Buffer != nil {
		p.Buffer.Release()
		p.Buffer = nil
	}
}

// uniformSize rounds n up to the 16 byte granularity of uniform bindings.
func uniformSize(n int) uint64 {
	size := uint64(n)
	if size < 16 {
		return 16
	}
	if size%16 != 0 {
		size += 16 - size%16
	}
	return size
}

// WriteBuffer needs a multiple of 4 bytes.
func padTo4(data []byte) []byte {
	if len(data)%4 == 0 {
		return data
	}
	out := make([]byte, len(data)+4-len(data)%4)
	copy(out, data)
	return out
}
