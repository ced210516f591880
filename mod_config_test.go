package shaderlab

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/shaderlab/labrt/rt/config"
	"github.com/gekko3d/shaderlab/labrt/rt/effects"
)

func TestConfigStateApply(t *testing.T) {
	var out bytes.Buffer
	log := newLogger("", false, &out, &out)

	cfg := config.Default()
	g, err := NewGallery(effects.EffectID(cfg.Gallery.Effect), nil, log)
	require.NoError(t, err)
	cs := &ConfigState{Config: cfg}

	next := config.Default()
	next.Log.Debug = true
	next.Gallery.Effect = string(effects.EffectExponential)
	next.Effects = map[string]map[string]any{
		"expo": {"exponent": 3.0},
	}
	cs.Apply(next, g, log)

	assert.True(t, log.DebugEnabled())
	assert.Equal(t, effects.EffectExponential, g.Entry().ID)
	assert.InDelta(t, 3.0, g.Current().(*effects.Exponential).Exponent, 1e-6)
	assert.Equal(t, next, cs.Config)
	assert.Contains(t, out.String(), "config reloaded")
}

func TestConfigStateApplyKeepsSelectionWhenEffectUnchanged(t *testing.T) {
	log := NewNopLogger()
	cfg := config.Default()
	g, err := NewGallery(effects.EffectID(cfg.Gallery.Effect), nil, log)
	require.NoError(t, err)
	cs := &ConfigState{Config: cfg}

	g.NextEffect()
	browsed := g.Entry().ID
	cs.Apply(config.Default(), g, log)
	assert.Equal(t, browsed, g.Entry().ID)
}

func TestConfigStateApplyUnknownEffect(t *testing.T) {
	var out bytes.Buffer
	log := newLogger("", false, &out, &out)
	g, err := NewGallery("", nil, log)
	require.NoError(t, err)
	cs := &ConfigState{Config: config.Default()}

	next := config.Default()
	next.Gallery.Effect = "no_such_effect"
	cs.Apply(next, g, log)

	assert.Equal(t, effects.Catalog()[0].ID, g.Entry().ID)
	assert.Contains(t, out.String(), "WARN")
}

func TestConfigModuleWithoutWatch(t *testing.T) {
	app := NewAppBuilder().
		UseModule(ConfigModule{Config: config.Default()}).
		Build()

	cs, ok := Resource[ConfigState](app)
	require.True(t, ok)
	assert.Nil(t, cs.watcher)
	assert.Equal(t, config.Default().Window, cs.Config.Window)
}
