package effects

import "github.com/go-gl/mathgl/mgl32"

type colorBlock struct {
	Color mgl32.Vec4
}

// ColorPicker fills the output with a single RGBA color in [0, 1].
type ColorPicker struct {
	Color mgl32.Vec4
}

func NewColorPicker() *ColorPicker {
	return &ColorPicker{Color: mgl32.Vec4{0, 1, 0, 1}}
}

func (c *ColorPicker) ID() EffectID                  { return EffectColorPicker }
func (c *ColorPicker) Kernel() string                { return "colorPickerShader" }
func (c *ColorPicker) ParamByteLength() int          { return 16 }
func (c *ColorPicker) UpdateRuntime(*Store, float64) {}

func (c *ColorPicker) Parameters(*Store) []byte {
	return encodeBlock(colorBlock{Color: c.Color})
}
