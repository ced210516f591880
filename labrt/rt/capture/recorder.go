package capture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"sync"
	"sync/atomic"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var ErrRecorderClosed = errors.New("recorder closed")

type RecorderOptions struct {
	Path       string
	Width      int
	Height     int
	FPS        int
	Codec      string
	FFmpegPath string
	// Queue is the number of frames buffered between the render thread and
	// the encoder. Frames beyond it are dropped.
	Queue int
}

// Recorder streams raw RGBA frames into an encoder process. WriteFrame never
// blocks the caller.
type Recorder struct {
	opts RecorderOptions

	frames  chan []byte
	done    chan struct{}
	err     error
	dropped atomic.Int64
	written atomic.Int64

	mu     sync.Mutex
	closed bool
}

// StartRecorder launches ffmpeg reading rawvideo from a pipe and encoding to
// opts.Path.
func StartRecorder(opts RecorderOptions) (*Recorder, error) {
	if opts.Path == "" {
		return nil, errors.New("recorder: empty output path")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("recorder: invalid size %dx%d", opts.Width, opts.Height)
	}
	inputArgs, outputArgs := encoderArgs(opts)
	return newRecorder(opts, func(r io.Reader) error {
		cmd := ffmpeg.Input("pipe:", inputArgs).
			Output(opts.Path, outputArgs).
			OverWriteOutput().WithInput(r).ErrorToStdOut()
		if opts.FFmpegPath != "" {
			cmd = cmd.SetFfmpegPath(opts.FFmpegPath)
		}
		return cmd.Run()
	}), nil
}

func encoderArgs(opts RecorderOptions) (ffmpeg.KwArgs, ffmpeg.KwArgs) {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	codec := opts.Codec
	if codec == "" {
		codec = "libx264"
	}
	inputArgs := ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": strconv.Itoa(fps),
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":     codec,
		"pix_fmt": "yuv420p",
	}
	return inputArgs, outputArgs
}

// newRecorder starts the feeder goroutine. run consumes the raw stream and
// returns when the encoder exits.
func newRecorder(opts RecorderOptions, run func(io.Reader) error) *Recorder {
	if opts.Queue <= 0 {
		opts.Queue = 8
	}
	r := &Recorder{
		opts:   opts,
		frames: make(chan []byte, opts.Queue),
		done:   make(chan struct{}),
	}

	pr, pw := io.Pipe()
	errc := make(chan error, 1)
	go func() {
		err := run(pr)
		// Unblock the feeder if the encoder died early.
		pr.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	go func() {
		defer close(r.done)
		var writeErr error
		for f := range r.frames {
			if writeErr != nil {
				continue
			}
			if _, err := pw.Write(f); err != nil {
				writeErr = err
			}
		}
		pw.Close()
		runErr := <-errc
		if runErr != nil {
			r.err = runErr
		} else if writeErr != nil {
			r.err = writeErr
		}
	}()
	return r
}

// WriteFrame queues a copy of img. It reports false when the frame was
// dropped: the queue is full, the size does not match the recording, or the
// recorder is closed.
func (r *Recorder) WriteFrame(img *image.RGBA) bool {
	b := img.Bounds()
	if b.Dx() != r.opts.Width || b.Dy() != r.opts.Height {
		r.dropped.Add(1)
		return false
	}
	buf := make([]byte, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		buf = append(buf, img.Pix[off:off+b.Dx()*4]...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.dropped.Add(1)
		return false
	}
	select {
	case r.frames <- buf:
		r.written.Add(1)
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

func (r *Recorder) Written() int64 { return r.written.Load() }

func (r *Recorder) Path() string { return r.opts.Path }

// Close flushes queued frames, waits for the encoder and returns its error.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.done
		return ErrRecorderClosed
	}
	r.closed = true
	close(r.frames)
	r.mu.Unlock()

	<-r.done
	return r.err
}
