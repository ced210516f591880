package effects

const (
	EffectAnimatedGradient EffectID = "animated_gradient"
	EffectAnimatedShape    EffectID = "animated_shape"
	EffectSineTransition   EffectID = "sine_transition"
	EffectColorPicker      EffectID = "color_picker"
)

type animatedBlock struct {
	AnimationPhase float32
	HueRotatePhase float32
}

type animatedShapeBlock struct {
	AnimationPhase float32
	HueRotatePhase float32
	IsBox          int32
}

// AnimatedGradient scrolls a gradient and rotates its hue at independent rates.
type AnimatedGradient struct {
	AnimationRate float64
	HueRotateRate float64
}

func NewAnimatedGradient() *AnimatedGradient {
	return &AnimatedGradient{AnimationRate: 1.0, HueRotateRate: 1.0}
}

func (g *AnimatedGradient) ID() EffectID         { return EffectAnimatedGradient }
func (g *AnimatedGradient) Kernel() string       { return "exampleComputeShader1" }
func (g *AnimatedGradient) ParamByteLength() int { return 8 }

func (g *AnimatedGradient) UpdateRuntime(store *Store, dt float64) {
	advanceAnimation(store, g.ID(), g.AnimationRate, g.HueRotateRate, dt)
}

func (g *AnimatedGradient) Parameters(store *Store) []byte {
	return encodeBlock(animatedBlock{
		AnimationPhase: float32(store.Phase(PhaseKey{g.ID(), PhaseAnimation})),
		HueRotatePhase: float32(store.Phase(PhaseKey{g.ID(), PhaseHueRotate})),
	})
}

// AnimatedShape is AnimatedGradient masked by a circle or a box.
type AnimatedShape struct {
	AnimationRate float64
	HueRotateRate float64
	IsBox         bool
}

func NewAnimatedShape() *AnimatedShape {
	return &AnimatedShape{AnimationRate: 1.0, HueRotateRate: 1.0}
}

func (s *AnimatedShape) ID() EffectID         { return EffectAnimatedShape }
func (s *AnimatedShape) Kernel() string       { return "exampleComputeShader2" }
func (s *AnimatedShape) ParamByteLength() int { return 12 }

func (s *AnimatedShape) UpdateRuntime(store *Store, dt float64) {
	advanceAnimation(store, s.ID(), s.AnimationRate, s.HueRotateRate, dt)
}

func (s *AnimatedShape) Parameters(store *Store) []byte {
	return encodeBlock(animatedShapeBlock{
		AnimationPhase: float32(store.Phase(PhaseKey{s.ID(), PhaseAnimation})),
		HueRotatePhase: float32(store.Phase(PhaseKey{s.ID(), PhaseHueRotate})),
		IsBox:          boolToInt32(s.IsBox),
	})
}

// Phase names used by the animated effects.
const (
	PhaseAnimation = "animation"
	PhaseHueRotate = "hueRotate"
	PhaseSine      = "phase"
	PhaseRotation  = "rotation"
	PhasePattern   = "pattern"
)

func advanceAnimation(store *Store, id EffectID, animationRate, hueRate, dt float64) {
	store.Advance(PhaseKey{id, PhaseAnimation}, animationRate*dt)
	store.Advance(PhaseKey{id, PhaseHueRotate}, hueRate*dt)
}

type sineBlock struct {
	Phase float32
}

// SineTransition blends two colors following a sine of its phase.
type SineTransition struct {
	TransitionRate float64
}

func NewSineTransition() *SineTransition {
	return &SineTransition{TransitionRate: 1.0}
}

func (s *SineTransition) ID() EffectID         { return EffectSineTransition }
func (s *SineTransition) Kernel() string       { return "sineTransition" }
func (s *SineTransition) ParamByteLength() int { return 4 }

func (s *SineTransition) UpdateRuntime(store *Store, dt float64) {
	store.Advance(PhaseKey{s.ID(), PhaseSine}, s.TransitionRate*dt)
}

func (s *SineTransition) Parameters(store *Store) []byte {
	return encodeBlock(sineBlock{Phase: float32(store.Phase(PhaseKey{s.ID(), PhaseSine}))})
}
