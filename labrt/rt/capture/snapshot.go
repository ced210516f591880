// Package capture writes rendered frames out of the process: PNG snapshots
// and H.264 recordings through ffmpeg.
package capture

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type SnapshotOptions struct {
	Dir    string
	Effect string
	// Width and Height scale the frame before encoding. Zero keeps the
	// native size; a single zero keeps the aspect ratio.
	Width   int
	Height  int
	Caption string
}

// Snapshot writes img as <Dir>/<effect>-<uuid>.png and returns the path.
func Snapshot(img image.Image, opts SnapshotOptions) (string, error) {
	out := Compose(img, opts.Width, opts.Height, opts.Caption)

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return "", fmt.Errorf("snapshot dir: %w", err)
		}
	}
	path := filepath.Join(opts.Dir, FileName(opts.Effect))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, out); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, f.Close()
}

// FileName is a unique PNG name for a snapshot of effect.
func FileName(effect string) string {
	return uniqueName(effect, ".png")
}

// VideoFileName is a unique MP4 name for a recording of effect.
func VideoFileName(effect string) string {
	return uniqueName(effect, ".mp4")
}

func uniqueName(effect, ext string) string {
	if effect == "" {
		effect = "frame"
	}
	return fmt.Sprintf("%s-%s%s", effect, uuid.NewString(), ext)
}

// Compose scales img to the requested size and stamps caption in the bottom
// left corner.
func Compose(img image.Image, width, height int, caption string) *image.RGBA {
	src := img.Bounds()
	w, h := targetSize(src.Dx(), src.Dy(), width, height)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}
	if caption != "" {
		stampCaption(dst, caption)
	}
	return dst
}

func targetSize(srcW, srcH, w, h int) (int, int) {
	switch {
	case w <= 0 && h <= 0:
		return srcW, srcH
	case w <= 0:
		w = max(1, srcW*h/srcH)
	case h <= 0:
		h = max(1, srcH*w/srcW)
	}
	return w, h
}

func stampCaption(dst *image.RGBA, caption string) {
	face := basicfont.Face7x13
	const pad = 4
	metrics := face.Metrics()
	lineH := (metrics.Ascent + metrics.Descent).Ceil()

	b := dst.Bounds()
	strip := image.Rect(b.Min.X, b.Max.Y-lineH-2*pad, b.Max.X, b.Max.Y)
	draw.Draw(dst, strip, image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(b.Min.X+pad, b.Max.Y-pad-metrics.Descent.Ceil()),
	}
	d.DrawString(caption)
}
