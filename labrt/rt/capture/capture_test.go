package capture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestTargetSize(t *testing.T) {
	w, h := targetSize(1920, 1080, 0, 0)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	w, h = targetSize(1920, 1080, 960, 0)
	assert.Equal(t, 960, w)
	assert.Equal(t, 540, h)

	w, h = targetSize(1920, 1080, 0, 270)
	assert.Equal(t, 480, w)
	assert.Equal(t, 270, h)

	w, h = targetSize(100, 50, 10, 10)
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}

func TestComposeScalesSolidFrame(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	out := Compose(solid(64, 32, red), 16, 0, "")

	assert.Equal(t, image.Rect(0, 0, 16, 8), out.Bounds())
	px := out.RGBAAt(8, 4)
	assert.InDelta(t, 255, int(px.R), 2)
	assert.InDelta(t, 0, int(px.G), 2)
	assert.InDelta(t, 255, int(px.A), 2)
}

func TestComposeStampsCaption(t *testing.T) {
	black := color.RGBA{A: 255}
	out := Compose(solid(200, 60, black), 0, 0, "sdf")

	assert.Equal(t, black, out.RGBAAt(100, 5))
	lit := false
	for y := 40; y < 60 && !lit; y++ {
		for x := 0; x < 40; x++ {
			if out.RGBAAt(x, y).R > 128 {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit, "caption pixels expected in the bottom strip")
}

func TestSnapshotWritesPNG(t *testing.T) {
	dir := t.TempDir()
	path, err := Snapshot(solid(8, 8, color.RGBA{G: 255, A: 255}), SnapshotOptions{
		Dir:    filepath.Join(dir, "shots"),
		Effect: "color_picker",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "color_picker-"))
	assert.Equal(t, ".png", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestFileNameUnique(t *testing.T) {
	assert.NotEqual(t, FileName("sdf"), FileName("sdf"))
	assert.True(t, strings.HasPrefix(FileName(""), "frame-"))
	assert.Equal(t, ".mp4", filepath.Ext(VideoFileName("sdf")))
}

func TestEncoderArgs(t *testing.T) {
	in, out := encoderArgs(RecorderOptions{Width: 640, Height: 360})
	assert.Equal(t, "rawvideo", in["f"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "640x360", in["s"])
	assert.Equal(t, "60", in["framerate"])
	assert.Equal(t, "libx264", out["c:v"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
}

func TestStartRecorderValidates(t *testing.T) {
	_, err := StartRecorder(RecorderOptions{Width: 10, Height: 10})
	assert.Error(t, err)
	_, err = StartRecorder(RecorderOptions{Path: "out.mp4"})
	assert.Error(t, err)
}

func TestRecorderStreamsFrames(t *testing.T) {
	var sink bytes.Buffer
	r := newRecorder(RecorderOptions{Width: 2, Height: 2, Queue: 4}, func(in io.Reader) error {
		_, err := io.Copy(&sink, in)
		return err
	})

	assert.True(t, r.WriteFrame(solid(2, 2, color.RGBA{R: 1, A: 255})))
	assert.True(t, r.WriteFrame(solid(2, 2, color.RGBA{R: 2, A: 255})))
	assert.False(t, r.WriteFrame(solid(3, 2, color.RGBA{})))
	require.NoError(t, r.Close())

	assert.Equal(t, 2*2*2*4, sink.Len())
	assert.Equal(t, byte(1), sink.Bytes()[0])
	assert.Equal(t, byte(2), sink.Bytes()[16])
	assert.Equal(t, int64(2), r.Written())
	assert.Equal(t, int64(1), r.Dropped())

	assert.False(t, r.WriteFrame(solid(2, 2, color.RGBA{})))
	assert.ErrorIs(t, r.Close(), ErrRecorderClosed)
}

func TestRecorderDropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	r := newRecorder(RecorderOptions{Width: 1, Height: 1, Queue: 1}, func(in io.Reader) error {
		<-release
		_, err := io.Copy(io.Discard, in)
		return err
	})

	frame := solid(1, 1, color.RGBA{A: 255})
	for i := 0; i < 10; i++ {
		r.WriteFrame(frame)
	}
	assert.Greater(t, r.Dropped(), int64(0))

	close(release)
	require.NoError(t, r.Close())
	assert.Equal(t, int64(10), r.Written()+r.Dropped())
}

func TestRecorderReportsEncoderError(t *testing.T) {
	boom := errors.New("encoder exited")
	r := newRecorder(RecorderOptions{Width: 1, Height: 1}, func(io.Reader) error {
		return boom
	})
	r.WriteFrame(solid(1, 1, color.RGBA{}))
	assert.ErrorIs(t, r.Close(), boom)
}
