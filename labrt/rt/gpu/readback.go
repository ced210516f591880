package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

var ErrMapFailed = errors.New("readback buffer map failed")

// PaddedBytesPerRow is the texture-to-buffer row stride for an RGBA8 row of
// width w; copies require 256 byte alignment.
func PaddedBytesPerRow(w uint32) uint32 {
	return (w*4 + 255) & ^uint32(255)
}

// ReadTexture copies an RGBA8 texture back to the CPU. It blocks until the
// GPU has finished the copy.
func ReadTexture(device *wgpu.Device, queue *wgpu.Queue, tex *wgpu.Texture, w, h uint32) (*image.RGBA, error) {
	if tex == nil || w == 0 || h == 0 {
		return nil, fmt.Errorf("read texture: empty target %dx%d", w, h)
	}
	stride := PaddedBytesPerRow(w)
	size := uint64(stride) * uint64(h)

	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Readback",
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		&wgpu.ImageCopyBuffer{
			Buffer: buf,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  stride,
				RowsPerImage: h,
			},
		},
		&wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	queue.Submit(cmd)

	mapped := false
	buf.MapAsync(wgpu.MapModeRead, 0, size, func(s wgpu.BufferMapAsyncStatus) {
		mapped = s == wgpu.BufferMapAsyncStatusSuccess
	})
	device.Poll(true, nil)
	if !mapped {
		return nil, ErrMapFailed
	}
	data := buf.GetMappedRange(0, uint(size))
	img := unpadRows(data, w, h, stride)
	buf.Unmap()
	return img, nil
}

// unpadRows drops the per-row copy padding and returns a tightly packed
// image. The source is copied, so data may be unmapped afterwards.
func unpadRows(data []byte, w, h, stride uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	row := int(w) * 4
	for y := 0; y < int(h); y++ {
		src := int(stride) * y
		if src+row > len(data) {
			break
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+row], data[src:src+row])
	}
	return img
}
