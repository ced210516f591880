package effects

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type ControlKind int

const (
	ControlSlider ControlKind = iota
	ControlToggle
	ControlChoice
)

// Control describes one editable field of a definition. The accessors are
// bound to the concrete definition type of the effect the control belongs to;
// given any other definition they read zero and ignore writes.
type Control struct {
	Key     string
	Label   string
	Kind    ControlKind
	Min     float64
	Max     float64
	Step    float64
	Choices []string

	get func(Definition) float64
	set func(Definition, float64)
}

func (c Control) Value(d Definition) float64 {
	if c.get == nil {
		return 0
	}
	return c.get(d)
}

// Set writes v, clamped to the slider range, snapped to 0/1 for toggles and
// wrapped into the choice list.
func (c Control) Set(d Definition, v float64) {
	if c.set == nil {
		return
	}
	switch c.Kind {
	case ControlToggle:
		if v != 0 {
			v = 1
		}
	case ControlChoice:
		n := float64(len(c.Choices))
		if n == 0 {
			return
		}
		v = math.Mod(math.Round(v), n)
		if v < 0 {
			v += n
		}
	default:
		v = math.Max(c.Min, math.Min(c.Max, v))
	}
	c.set(d, v)
}

// Adjust moves the value by steps increments. Toggles flip on any non-zero
// step count.
func (c Control) Adjust(d Definition, steps int) {
	if steps == 0 {
		return
	}
	switch c.Kind {
	case ControlToggle:
		if c.Value(d) != 0 {
			c.Set(d, 0)
		} else {
			c.Set(d, 1)
		}
	case ControlChoice:
		c.Set(d, c.Value(d)+float64(steps))
	default:
		step := c.Step
		if step <= 0 {
			step = (c.Max - c.Min) / 100
		}
		c.Set(d, c.Value(d)+float64(steps)*step)
	}
}

func (c Control) Format(d Definition) string {
	v := c.Value(d)
	switch c.Kind {
	case ControlToggle:
		if v != 0 {
			return fmt.Sprintf("%s: on", c.Label)
		}
		return fmt.Sprintf("%s: off", c.Label)
	case ControlChoice:
		i := int(v)
		if i >= 0 && i < len(c.Choices) {
			return fmt.Sprintf("%s: %s", c.Label, c.Choices[i])
		}
	}
	return fmt.Sprintf("%s: %.3f", c.Label, v)
}

func slider[T Definition, F ~float32 | ~float64](key, label string, min, max, step float64, field func(T) *F) Control {
	return Control{
		Key: key, Label: label, Kind: ControlSlider, Min: min, Max: max, Step: step,
		get: func(d Definition) float64 {
			if t, ok := d.(T); ok {
				return float64(*field(t))
			}
			return 0
		},
		set: func(d Definition, v float64) {
			if t, ok := d.(T); ok {
				*field(t) = F(v)
			}
		},
	}
}

func toggle[T Definition](key, label string, field func(T) *bool) Control {
	return Control{
		Key: key, Label: label, Kind: ControlToggle, Min: 0, Max: 1, Step: 1,
		get: func(d Definition) float64 {
			if t, ok := d.(T); ok && *field(t) {
				return 1
			}
			return 0
		},
		set: func(d Definition, v float64) {
			if t, ok := d.(T); ok {
				*field(t) = v != 0
			}
		},
	}
}

func choice[T Definition, E ~uint32](key, label string, choices []string, field func(T) *E) Control {
	return Control{
		Key: key, Label: label, Kind: ControlChoice, Min: 0, Max: float64(len(choices) - 1), Step: 1,
		Choices: choices,
		get: func(d Definition) float64 {
			if t, ok := d.(T); ok {
				return float64(*field(t))
			}
			return 0
		},
		set: func(d Definition, v float64) {
			if t, ok := d.(T); ok {
				*field(t) = E(v)
			}
		},
	}
}

func channel(c *ColorPicker, i int) *float32 { return &c.Color[i] }

var controlTable = map[EffectID][]Control{
	EffectAnimatedGradient: {
		slider("animation_rate", "Animation Rate", 0, 4, 0.05, func(g *AnimatedGradient) *float64 { return &g.AnimationRate }),
		slider("hue_rotate_rate", "Hue Rotate Rate", 0, 4, 0.05, func(g *AnimatedGradient) *float64 { return &g.HueRotateRate }),
	},
	EffectAnimatedShape: {
		slider("animation_rate", "Animation Rate", 0, 4, 0.05, func(s *AnimatedShape) *float64 { return &s.AnimationRate }),
		slider("hue_rotate_rate", "Hue Rotate Rate", 0, 4, 0.05, func(s *AnimatedShape) *float64 { return &s.HueRotateRate }),
		toggle("is_box", "Box", func(s *AnimatedShape) *bool { return &s.IsBox }),
	},
	EffectDistanceField: {
		slider("width", "Width", 0, 1, 0.01, func(d *DistanceField) *float32 { return &d.Width }),
	},
	EffectSineTransition: {
		slider("transition_rate", "Animation Rate", 0, 4, 0.05, func(s *SineTransition) *float64 { return &s.TransitionRate }),
	},
	EffectColorPicker: {
		slider("red", "Red", 0, 1, 0.01, func(c *ColorPicker) *float32 { return channel(c, 0) }),
		slider("green", "Green", 0, 1, 0.01, func(c *ColorPicker) *float32 { return channel(c, 1) }),
		slider("blue", "Blue", 0, 1, 0.01, func(c *ColorPicker) *float32 { return channel(c, 2) }),
		slider("alpha", "Alpha", 0, 1, 0.01, func(c *ColorPicker) *float32 { return channel(c, 3) }),
	},
	EffectExponential: {
		slider("exponent", "Exponent", 0, 20, 0.1, func(e *Exponential) *float32 { return &e.Exponent }),
	},
	EffectStep: {
		slider("threshold", "Threshold", 0, 1, 0.01, func(s *Step) *float32 { return &s.Threshold }),
	},
	EffectSmoothStep: {
		slider("edge0", "Edge 0", 0, 1, 0.01, func(s *SmoothStep) *float32 { return &s.Edge0 }),
		slider("edge1", "Edge 1", 0, 1, 0.01, func(s *SmoothStep) *float32 { return &s.Edge1 }),
	},
	EffectLog: {
		slider("base", "Base", 0.1, 0.9999, 0.01, func(l *Log) *float32 { return &l.Base }),
		slider("offset", "Offset", 0.001, 0.1, 0.001, func(l *Log) *float32 { return &l.Offset }),
	},
	EffectSqrt: {
		slider("scale", "Scale", 0.1, 10, 0.1, func(s *Sqrt) *float32 { return &s.Scale }),
	},
	EffectExpImpulse: {
		slider("k", "K", 0.1, 20, 0.1, func(e *ExpImpulse) *float32 { return &e.K }),
	},
	EffectSinc: {
		slider("k", "K", 0.1, 20, 0.1, func(s *Sinc) *float32 { return &s.K }),
		slider("addition", "Addition", -1, 1, 0.01, func(s *Sinc) *float32 { return &s.Addition }),
	},
	EffectCubicPulse: {
		slider("center", "Center", 0, 1, 0.01, func(c *CubicPulse) *float32 { return &c.Center }),
		slider("width", "Width", 0.01, 0.5, 0.01, func(c *CubicPulse) *float32 { return &c.Width }),
	},
	EffectSDF: {
		choice("shape", "Shape", PrimitiveNames(), func(s *SDFShape) *Primitive { return &s.Shape }),
		toggle("should_mask", "Enable Masking", func(s *SDFShape) *bool { return &s.ShouldMask }),
		slider("scale", "Scale", 0, 1, 0.01, func(s *SDFShape) *float32 { return &s.Scale }),
		toggle("should_make_annular", "Annular (Ring)", func(s *SDFShape) *bool { return &s.ShouldMakeAnnular }),
		slider("shell_thickness", "Shell Thickness", 0, 1, 0.01, func(s *SDFShape) *float32 { return &s.ShellThickness }),
		slider("intensity", "Intensity", 0, 1, 0.01, func(s *SDFShape) *float32 { return &s.Intensity }),
		slider("contrast", "Contrast", 0, 10, 0.01, func(s *SDFShape) *float32 { return &s.Contrast }),
		slider("repetitions", "Repetitions", 1, 20, 1, func(s *SDFShape) *float32 { return &s.Repetitions }),
		toggle("should_flip_alternating", "Flip Alternating", func(s *SDFShape) *bool { return &s.ShouldFlipAlternating }),
		slider("blend_k", "Blend", 0, 1, 0.01, func(s *SDFShape) *float32 { return &s.BlendK }),
		toggle("is_rotating", "Auto Rotate", func(s *SDFShape) *bool { return &s.IsRotating }),
		slider("rotation_speed", "Rotation Speed", 0, 3, 0.025, func(s *SDFShape) *float32 { return &s.RotationSpeed }),
		slider("rotation", "Rotation", 0, 2*math.Pi, 0.01, func(s *SDFShape) *float32 { return &s.Rotation }),
		toggle("should_apply_pattern", "Pattern Repeats", func(s *SDFShape) *bool { return &s.ShouldApplyPattern }),
		slider("pattern_frequency", "Pattern Frequency", 1, 20, 0.5, func(s *SDFShape) *float32 { return &s.PatternFrequency }),
		toggle("is_pattern_animated", "Pattern Animation", func(s *SDFShape) *bool { return &s.IsPatternAnimated }),
		slider("pattern_animation_speed", "Pattern Speed", 0, 3, 0.025, func(s *SDFShape) *float32 { return &s.PatternAnimationSpeed }),
		slider("pattern_phase", "Pattern Phase", 0, 2*math.Pi, 0.01, func(s *SDFShape) *float32 { return &s.PatternPhase }),
	},
}

// Controls returns the editable fields of an effect. An empty result means the
// effect has nothing to adjust.
func Controls(id EffectID) []Control {
	return controlTable[id]
}

func Adjustable(id EffectID) bool {
	return len(controlTable[id]) > 0
}

// ApplyOverrides sets the named controls of d. Values may be numbers or bools;
// keys match Control.Key case-insensitively. Unknown keys are returned.
func ApplyOverrides(d Definition, values map[string]any) []string {
	var unknown []string
	controls := Controls(d.ID())
	for key, raw := range values {
		c, ok := findControl(controls, key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		switch v := raw.(type) {
		case bool:
			c.Set(d, boolToFloat(v))
		case float64:
			c.Set(d, v)
		case float32:
			c.Set(d, float64(v))
		case int64:
			c.Set(d, float64(v))
		case int:
			c.Set(d, float64(v))
		case string:
			if c.Kind != ControlChoice || !setChoiceByName(c, d, v) {
				unknown = append(unknown, key)
			}
		default:
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func findControl(controls []Control, key string) (Control, bool) {
	for _, c := range controls {
		if strings.EqualFold(c.Key, key) {
			return c, true
		}
	}
	return Control{}, false
}

func setChoiceByName(c Control, d Definition, name string) bool {
	for i, n := range c.Choices {
		if strings.EqualFold(n, name) {
			c.Set(d, float64(i))
			return true
		}
	}
	return false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
