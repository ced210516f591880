package shaderlab

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestInputTransitions(t *testing.T) {
	in := &Input{}

	in.push(KeyP, glfw.Press, false)
	in.beginFrame()
	assert.True(t, in.Pressed[KeyP])
	assert.True(t, in.JustPressed[KeyP])
	assert.True(t, in.Triggered(KeyP))

	in.beginFrame()
	assert.True(t, in.Pressed[KeyP])
	assert.False(t, in.JustPressed[KeyP])
	assert.False(t, in.Triggered(KeyP))

	in.push(KeyP, glfw.Repeat, false)
	in.beginFrame()
	assert.False(t, in.JustPressed[KeyP])
	assert.True(t, in.Repeated[KeyP])
	assert.True(t, in.Triggered(KeyP))

	in.push(KeyP, glfw.Release, false)
	in.beginFrame()
	assert.False(t, in.Pressed[KeyP])
	assert.True(t, in.JustReleased[KeyP])
	assert.False(t, in.Triggered(KeyP))

	in.beginFrame()
	assert.False(t, in.JustReleased[KeyP])
}

func TestInputPressAndReleaseInOneFrame(t *testing.T) {
	in := &Input{}
	in.push(KeySpace, glfw.Press, false)
	in.push(KeySpace, glfw.Release, false)
	in.beginFrame()

	assert.True(t, in.JustPressed[KeySpace])
	assert.True(t, in.JustReleased[KeySpace])
	assert.False(t, in.Pressed[KeySpace])
}

func TestInputShiftFollowsLatestEvent(t *testing.T) {
	in := &Input{}
	in.push(KeyEqual, glfw.Press, true)
	in.beginFrame()
	assert.True(t, in.Shift)

	in.push(KeyEqual, glfw.Release, false)
	in.beginFrame()
	assert.False(t, in.Shift)
}

func TestInputAnyTriggered(t *testing.T) {
	in := &Input{}
	in.push(KeyKPPlus, glfw.Press, false)
	in.beginFrame()

	assert.True(t, in.AnyTriggered(KeyEqual, KeyKPPlus))
	assert.False(t, in.AnyTriggered(KeyMinus, KeyKPMinus))
	assert.False(t, in.AnyTriggered())
}

func TestKeyMappingRoundTrips(t *testing.T) {
	assert.Len(t, keyToGlfw, int(keyCount))
	for k, g := range keyToGlfw {
		assert.Equal(t, k, glfwToKey[g])
	}
}
