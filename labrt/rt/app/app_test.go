package app

import (
	"testing"

	"github.com/gekko3d/shaderlab/labrt/rt/core"
	"github.com/gekko3d/shaderlab/labrt/rt/effects"
	"github.com/stretchr/testify/assert"
)

func TestNewAppDefaults(t *testing.T) {
	a := NewApp(nil, 0, nil)

	w, m := a.Limits()
	assert.Equal(t, uint32(DefaultExecutionWidth), w)
	assert.Equal(t, uint32(DefaultMaxThreads), m)
	for _, k := range effects.Kernels() {
		assert.True(t, a.Library.Has(k), k)
	}
}

func TestAcquireBeforeInitIsUnavailable(t *testing.T) {
	a := NewApp(nil, 16, core.Discard)

	_, _, err := a.Acquire()
	assert.ErrorIs(t, err, core.ErrFrameUnavailable)
	assert.NotPanics(t, a.Abort)
}

func TestResizeBeforeInitIsIgnored(t *testing.T) {
	a := NewApp(nil, 16, nil)
	assert.NotPanics(t, func() { a.Resize(640, 480) })
}
