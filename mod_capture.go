package shaderlab

import (
	"image"
	"os"
	"path/filepath"

	"github.com/gekko3d/shaderlab/labrt/rt/capture"
)

// FrameSource yields the most recently rendered frame.
type FrameSource interface {
	Capture() (*image.RGBA, error)
}

// CaptureModule binds P to a PNG snapshot and R to start/stop an H.264
// recording of the rendered output.
type CaptureModule struct {
	Dir        string
	Width      int
	Height     int
	Caption    bool
	FPS        int
	Codec      string
	FFmpegPath string
}

type CaptureState struct {
	opts     CaptureModule
	recorder *capture.Recorder
	log      Logger

	LastSnapshot string
}

func NewCaptureState(opts CaptureModule, log Logger) *CaptureState {
	if opts.Dir == "" {
		opts.Dir = "captures"
	}
	if log == nil {
		log = NewNopLogger()
	}
	return &CaptureState{opts: opts, log: log}
}

func (m CaptureModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewCaptureState(m, cmd.Logger()))
	cmd.UseSystem(System(captureSystem).InStage(PostRender).RunAlways())
	if app.stateful {
		cmd.UseSystem(System(captureCloseSystem).InStage(Render).InState(OnEnter(StateExit)))
	}
}

func captureSystem(input *Input, g *Gallery, c *ComputeClient, cs *CaptureState) {
	effect := string(g.Entry().ID)
	if input.JustPressed[KeyP] {
		caption := ""
		if cs.opts.Caption {
			caption = g.Status()
		}
		cs.Snapshot(c, effect, caption)
	}
	if input.JustPressed[KeyR] {
		cs.ToggleRecording(c, effect)
	}
	if c.LastFrameOK {
		cs.Feed(c)
	}
	c.Recording = cs.Recording()
}

func captureCloseSystem(cs *CaptureState) {
	cs.StopRecording()
}

// Snapshot writes the current frame to a PNG and returns its path.
func (cs *CaptureState) Snapshot(src FrameSource, effect, caption string) string {
	img, err := src.Capture()
	if err != nil {
		cs.log.Warnf("snapshot: %v", err)
		return ""
	}
	path, err := capture.Snapshot(img, capture.SnapshotOptions{
		Dir:     cs.opts.Dir,
		Effect:  effect,
		Width:   cs.opts.Width,
		Height:  cs.opts.Height,
		Caption: caption,
	})
	if err != nil {
		cs.log.Warnf("snapshot: %v", err)
		return ""
	}
	cs.LastSnapshot = path
	cs.log.Infof("saved %s", path)
	return path
}

func (cs *CaptureState) Recording() bool {
	return cs.recorder != nil
}

func (cs *CaptureState) ToggleRecording(src FrameSource, effect string) {
	if cs.recorder != nil {
		cs.StopRecording()
		return
	}
	if err := cs.StartRecording(src, effect); err != nil {
		cs.log.Warnf("record: %v", err)
	}
}

// StartRecording sizes the recording to the current frame, which becomes
// its first frame.
func (cs *CaptureState) StartRecording(src FrameSource, effect string) error {
	img, err := src.Capture()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cs.opts.Dir, 0o755); err != nil {
		return err
	}
	b := img.Bounds()
	rec, err := capture.StartRecorder(capture.RecorderOptions{
		Path:       filepath.Join(cs.opts.Dir, capture.VideoFileName(effect)),
		Width:      b.Dx(),
		Height:     b.Dy(),
		FPS:        cs.opts.FPS,
		Codec:      cs.opts.Codec,
		FFmpegPath: cs.opts.FFmpegPath,
	})
	if err != nil {
		return err
	}
	cs.recorder = rec
	rec.WriteFrame(img)
	cs.log.Infof("recording %s (%dx%d)", rec.Path(), b.Dx(), b.Dy())
	return nil
}

// Feed appends the current frame to an active recording.
func (cs *CaptureState) Feed(src FrameSource) {
	if cs.recorder == nil {
		return
	}
	img, err := src.Capture()
	if err != nil {
		cs.log.Debugf("record: %v", err)
		return
	}
	cs.recorder.WriteFrame(img)
}

func (cs *CaptureState) StopRecording() {
	if cs.recorder == nil {
		return
	}
	rec := cs.recorder
	cs.recorder = nil
	if err := rec.Close(); err != nil {
		cs.log.Warnf("record %s: %v", rec.Path(), err)
		return
	}
	cs.log.Infof("saved %s (%d frames, %d dropped)", rec.Path(), rec.Written(), rec.Dropped())
}
