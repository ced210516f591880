// Package core holds the renderer-independent half of the frame loop: the
// driver clock, dispatch sizing and the per-frame ordering of parameter
// updates around the GPU target.
package core

import (
	"errors"
	"time"

	"github.com/gekko3d/shaderlab/labrt/rt/effects"
)

// ErrFrameUnavailable is returned by a Target with no drawable this frame.
var ErrFrameUnavailable = errors.New("no output surface available")

// Target is the GPU side of a frame. Acquire must be balanced by either
// Present or Abort.
type Target interface {
	// Acquire grabs the output surface and reports its size in pixels.
	Acquire() (width, height uint32, err error)
	// Limits reports the thread-execution width and the maximum threads per
	// workgroup for compute dispatches.
	Limits() (executionWidth, maxThreads uint32)
	Dispatch(kernel string, params []byte, sizing Sizing) error
	Present() error
	Abort()
}

type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

// Discard is a Logger that drops everything.
var Discard Logger = nopLogger{}

// Driver runs one effect per frame. It is owned by the render thread and is
// not safe for concurrent use.
type Driver struct {
	def      effects.Definition
	store    *effects.Store
	clock    Clock
	Profiler *Profiler
	log      Logger
}

func NewDriver(def effects.Definition, log Logger) *Driver {
	if log == nil {
		log = nopLogger{}
	}
	return &Driver{
		def:      def,
		store:    effects.NewStore(),
		Profiler: NewProfiler(),
		log:      log,
	}
}

func (d *Driver) Definition() effects.Definition { return d.def }

func (d *Driver) Store() *effects.Store { return d.store }

func (d *Driver) Clock() *Clock { return &d.clock }

// SetDefinition replaces the active effect. The runtime store is kept; phases
// of the previous effect stay in it untouched.
func (d *Driver) SetDefinition(def effects.Definition) {
	if def == nil {
		return
	}
	d.def = def
	d.Profiler.Inc(CountSwitches)
}

// Frame runs one tick: acquire the output, advance runtime phases, build the
// parameter block and dispatch the kernel over the whole output. A frame that
// cannot be acquired or encoded is dropped and reported as false; the clock is
// left alone so the next frame's delta spans the skipped time.
func (d *Driver) Frame(now time.Time, target Target) bool {
	if d.def == nil {
		return false
	}

	d.Profiler.BeginScope("acquire")
	width, height, err := target.Acquire()
	d.Profiler.EndScope("acquire")
	if err != nil {
		d.drop("acquire", err)
		return false
	}

	d.Profiler.BeginScope("update")
	dt := d.clock.Tick(now)
	d.def.UpdateRuntime(d.store, dt)
	params := d.def.Parameters(d.store)
	d.Profiler.EndScope("update")

	execWidth, maxThreads := target.Limits()
	sizing := Dispatch(execWidth, maxThreads, width, height)

	d.Profiler.BeginScope("encode")
	err = target.Dispatch(d.def.Kernel(), params, sizing)
	d.Profiler.EndScope("encode")
	if err != nil {
		target.Abort()
		d.drop("dispatch", err)
		return false
	}

	if err := target.Present(); err != nil {
		d.drop("present", err)
		return false
	}

	d.Profiler.Inc(CountFrames)
	d.Profiler.Frame(dt)
	return true
}

func (d *Driver) drop(stage string, err error) {
	d.Profiler.Inc(CountDropped)
	if errors.Is(err, ErrFrameUnavailable) {
		d.log.Debugf("frame skipped at %s: %v", stage, err)
		return
	}
	d.log.Warnf("frame dropped at %s: %v", stage, err)
}
