package shaderlab

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/shaderlab/labrt/rt/effects"
)

func TestNewGalleryDefaultsToFirstEntry(t *testing.T) {
	g, err := NewGallery("", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, effects.Catalog()[0].ID, g.Entry().ID)
	assert.True(t, g.TakeChanged())
	assert.False(t, g.TakeChanged())
}

func TestNewGalleryUnknownEffect(t *testing.T) {
	_, err := NewGallery("no_such_effect", nil, nil)
	assert.ErrorIs(t, err, effects.ErrUnknownEffect)
}

func TestGalleryEffectNavigationWraps(t *testing.T) {
	g, err := NewGallery("", nil, nil)
	require.NoError(t, err)
	catalog := effects.Catalog()

	g.PrevEffect()
	assert.Equal(t, catalog[len(catalog)-1].ID, g.Entry().ID)

	g.NextEffect()
	assert.Equal(t, catalog[0].ID, g.Entry().ID)

	g.NextEffect()
	assert.Equal(t, catalog[1].ID, g.Entry().ID)
}

func TestGalleryControlFocusWraps(t *testing.T) {
	g, err := NewGallery(effects.EffectAnimatedShape, nil, nil)
	require.NoError(t, err)

	c, ok := g.Focused()
	require.True(t, ok)
	assert.Equal(t, "animation_rate", c.Key)

	g.PrevControl()
	c, _ = g.Focused()
	assert.Equal(t, "is_box", c.Key)

	g.NextControl()
	g.NextControl()
	c, _ = g.Focused()
	assert.Equal(t, "hue_rotate_rate", c.Key)

	// switching effects resets focus
	g.NextEffect()
	g.PrevEffect()
	c, _ = g.Focused()
	assert.Equal(t, "animation_rate", c.Key)
}

func TestGalleryStaticEffectHasNoControls(t *testing.T) {
	g, err := NewGallery(effects.EffectHelloWorld, nil, nil)
	require.NoError(t, err)

	_, ok := g.Focused()
	assert.False(t, ok)

	// no-ops
	g.NextControl()
	g.Adjust(1)
	g.Toggle()
	assert.Equal(t, "Book of Shaders / Hello World", g.Status())
}

func TestGalleryAdjustSlider(t *testing.T) {
	g, err := NewGallery(effects.EffectExponential, nil, nil)
	require.NoError(t, err)
	expo := g.Current().(*effects.Exponential)
	require.InDelta(t, 5.0, expo.Exponent, 1e-6)

	g.Adjust(1)
	assert.InDelta(t, 5.1, expo.Exponent, 1e-5)

	g.Adjust(-10)
	assert.InDelta(t, 4.1, expo.Exponent, 1e-5)

	g.Adjust(1000)
	assert.InDelta(t, 20.0, expo.Exponent, 1e-6)

	// toggling a slider does nothing
	g.Toggle()
	assert.InDelta(t, 20.0, expo.Exponent, 1e-6)
}

func TestGalleryToggleAndChoice(t *testing.T) {
	g, err := NewGallery(effects.EffectSDF, nil, nil)
	require.NoError(t, err)
	sdf := g.Current().(*effects.SDFShape)
	names := effects.PrimitiveNames()

	require.Equal(t, effects.Circle, sdf.Shape)
	g.Toggle()
	assert.Equal(t, effects.Primitive(1), sdf.Shape)
	assert.Contains(t, g.Status(), "Shape: "+names[1])

	g.NextControl()
	require.False(t, sdf.ShouldMask)
	g.Toggle()
	assert.True(t, sdf.ShouldMask)
	assert.Contains(t, g.Status(), "Enable Masking: on")
	g.Toggle()
	assert.False(t, sdf.ShouldMask)
}

func TestGalleryDefinitionsSurviveSwitching(t *testing.T) {
	g, err := NewGallery(effects.EffectExponential, nil, nil)
	require.NoError(t, err)
	g.Adjust(5)
	want := g.Current().(*effects.Exponential).Exponent

	g.NextEffect()
	g.PrevEffect()
	assert.Equal(t, want, g.Current().(*effects.Exponential).Exponent)
}

func TestGalleryReset(t *testing.T) {
	g, err := NewGallery(effects.EffectExponential, nil, nil)
	require.NoError(t, err)
	g.TakeChanged()

	g.Adjust(5)
	g.Reset()

	assert.True(t, g.TakeChanged())
	assert.InDelta(t, 5.0, g.Current().(*effects.Exponential).Exponent, 1e-6)
}

func TestGalleryOverrides(t *testing.T) {
	overrides := map[string]map[string]any{
		"EXPO": {"exponent": 2.5, "bogus": 1},
	}
	g, err := NewGallery(effects.EffectExponential, overrides, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, g.Current().(*effects.Exponential).Exponent, 1e-6)

	// reset keeps configured values
	g.Adjust(3)
	g.Reset()
	assert.InDelta(t, 2.5, g.Current().(*effects.Exponential).Exponent, 1e-6)

	g.SetOverrides(map[string]map[string]any{
		"expo": {"exponent": int64(7)},
	})
	assert.InDelta(t, 7.0, g.Current().(*effects.Exponential).Exponent, 1e-6)
}

func TestGalleryStatus(t *testing.T) {
	g, err := NewGallery(effects.EffectExponential, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Shaping Functions / expo | Exponent: 5.000", g.Status())
}

func newGalleryApp(t *testing.T, effect effects.EffectID) (*App, *Input, *Gallery) {
	t.Helper()
	app := NewAppBuilder().
		UseModule(InputModule{}).
		UseModule(GalleryModule{Effect: string(effect)}).
		Build()
	input, ok := Resource[Input](app)
	require.True(t, ok)
	g, ok := Resource[Gallery](app)
	require.True(t, ok)
	return app, input, g
}

func TestGallerySystemKeys(t *testing.T) {
	app, input, g := newGalleryApp(t, effects.EffectExponential)
	expo := g.Current().(*effects.Exponential)

	input.push(KeyEqual, glfw.Press, false)
	assert.False(t, app.Step())
	assert.InDelta(t, 5.1, expo.Exponent, 1e-5)

	input.push(KeyEqual, glfw.Release, false)
	input.push(KeyMinus, glfw.Press, true)
	app.Step()
	assert.InDelta(t, 4.1, expo.Exponent, 1e-5)

	// held keys do not re-trigger without an OS repeat
	app.Step()
	assert.InDelta(t, 4.1, expo.Exponent, 1e-5)

	input.push(KeyMinus, glfw.Repeat, true)
	app.Step()
	assert.InDelta(t, 3.1, expo.Exponent, 1e-5)

	input.push(KeyMinus, glfw.Release, false)
	input.push(KeyRight, glfw.Press, false)
	app.Step()
	assert.Equal(t, effects.EffectStep, g.Entry().ID)

	input.push(KeyRight, glfw.Release, false)
	input.push(KeyLeft, glfw.Press, false)
	app.Step()
	assert.Equal(t, effects.EffectExponential, g.Entry().ID)

	input.push(KeyBackspace, glfw.Press, false)
	app.Step()
	assert.InDelta(t, 5.0, g.Current().(*effects.Exponential).Exponent, 1e-6)
}

func TestGallerySystemEscapeQuits(t *testing.T) {
	app, input, _ := newGalleryApp(t, "")

	assert.False(t, app.Step())
	input.push(KeyEscape, glfw.Press, false)
	assert.True(t, app.Step())
}

func TestGalleryModuleFallsBackOnUnknownEffect(t *testing.T) {
	_, _, g := newGalleryApp(t, "no_such_effect")
	assert.Equal(t, effects.Catalog()[0].ID, g.Entry().ID)
}
