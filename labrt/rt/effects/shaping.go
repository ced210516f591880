package effects

// Shaping functions plot y = f(x) over the unit square. Each carries one or two
// coefficients and no runtime phases.
const (
	EffectLinear      EffectID = "lerp"
	EffectExponential EffectID = "expo"
	EffectStep        EffectID = "step"
	EffectSmoothStep  EffectID = "smooth"
	EffectLog         EffectID = "log"
	EffectSqrt        EffectID = "sqrt"
	EffectExpImpulse  EffectID = "exp_impulse"
	EffectSinc        EffectID = "sinc"
	EffectCubicPulse  EffectID = "cubic_pulse"
)

type scalarBlock struct {
	A float32
}

type pairBlock struct {
	A, B float32
}

type Exponential struct {
	Exponent float32
}

func NewExponential() *Exponential { return &Exponential{Exponent: 5.0} }

func (e *Exponential) ID() EffectID                  { return EffectExponential }
func (e *Exponential) Kernel() string                { return "exponentialFunction" }
func (e *Exponential) ParamByteLength() int          { return 4 }
func (e *Exponential) UpdateRuntime(*Store, float64) {}
func (e *Exponential) Parameters(*Store) []byte      { return encodeBlock(scalarBlock{e.Exponent}) }

type Step struct {
	Threshold float32
}

func NewStep() *Step { return &Step{Threshold: 0.5} }

func (s *Step) ID() EffectID                  { return EffectStep }
func (s *Step) Kernel() string                { return "stepFunction" }
func (s *Step) ParamByteLength() int          { return 4 }
func (s *Step) UpdateRuntime(*Store, float64) {}
func (s *Step) Parameters(*Store) []byte      { return encodeBlock(scalarBlock{s.Threshold}) }

type SmoothStep struct {
	Edge0 float32
	Edge1 float32
}

func NewSmoothStep() *SmoothStep { return &SmoothStep{Edge0: 0.1, Edge1: 0.9} }

func (s *SmoothStep) ID() EffectID                  { return EffectSmoothStep }
func (s *SmoothStep) Kernel() string                { return "smoothStepFunction" }
func (s *SmoothStep) ParamByteLength() int          { return 8 }
func (s *SmoothStep) UpdateRuntime(*Store, float64) {}
func (s *SmoothStep) Parameters(*Store) []byte      { return encodeBlock(pairBlock{s.Edge0, s.Edge1}) }

type Log struct {
	Base   float32
	Offset float32
}

func NewLog() *Log { return &Log{Base: 0.1, Offset: 0.1} }

func (l *Log) ID() EffectID                  { return EffectLog }
func (l *Log) Kernel() string                { return "logFunction" }
func (l *Log) ParamByteLength() int          { return 8 }
func (l *Log) UpdateRuntime(*Store, float64) {}
func (l *Log) Parameters(*Store) []byte      { return encodeBlock(pairBlock{l.Base, l.Offset}) }

type Sqrt struct {
	Scale float32
}

func NewSqrt() *Sqrt { return &Sqrt{Scale: 1.0} }

func (s *Sqrt) ID() EffectID                  { return EffectSqrt }
func (s *Sqrt) Kernel() string                { return "sqrtFunction" }
func (s *Sqrt) ParamByteLength() int          { return 4 }
func (s *Sqrt) UpdateRuntime(*Store, float64) {}
func (s *Sqrt) Parameters(*Store) []byte      { return encodeBlock(scalarBlock{s.Scale}) }

// ExpImpulse peaks at x = 1/K.
type ExpImpulse struct {
	K float32
}

func NewExpImpulse() *ExpImpulse { return &ExpImpulse{K: 5.0} }

func (e *ExpImpulse) ID() EffectID                  { return EffectExpImpulse }
func (e *ExpImpulse) Kernel() string                { return "expImpulseFunction" }
func (e *ExpImpulse) ParamByteLength() int          { return 4 }
func (e *ExpImpulse) UpdateRuntime(*Store, float64) {}
func (e *ExpImpulse) Parameters(*Store) []byte      { return encodeBlock(scalarBlock{e.K}) }

// Sinc draws sin(K x)/(K x) shifted up by Addition.
type Sinc struct {
	K        float32
	Addition float32
}

func NewSinc() *Sinc { return &Sinc{K: 10.0, Addition: 0.25} }

func (s *Sinc) ID() EffectID                  { return EffectSinc }
func (s *Sinc) Kernel() string                { return "sincFunction" }
func (s *Sinc) ParamByteLength() int          { return 8 }
func (s *Sinc) UpdateRuntime(*Store, float64) {}
func (s *Sinc) Parameters(*Store) []byte      { return encodeBlock(pairBlock{s.K, s.Addition}) }

type CubicPulse struct {
	Center float32
	Width  float32
}

func NewCubicPulse() *CubicPulse { return &CubicPulse{Center: 0.5, Width: 0.2} }

func (c *CubicPulse) ID() EffectID                  { return EffectCubicPulse }
func (c *CubicPulse) Kernel() string                { return "cubicPulseFunction" }
func (c *CubicPulse) ParamByteLength() int          { return 8 }
func (c *CubicPulse) UpdateRuntime(*Store, float64) {}
func (c *CubicPulse) Parameters(*Store) []byte      { return encodeBlock(pairBlock{c.Center, c.Width}) }

// DistanceField visualizes the distance to a centered shape as bands.
type DistanceField struct {
	Width float32
}

const EffectDistanceField EffectID = "distance_field"

func NewDistanceField() *DistanceField { return &DistanceField{Width: 0.25} }

func (d *DistanceField) ID() EffectID                  { return EffectDistanceField }
func (d *DistanceField) Kernel() string                { return "distanceField" }
func (d *DistanceField) ParamByteLength() int          { return 4 }
func (d *DistanceField) UpdateRuntime(*Store, float64) {}
func (d *DistanceField) Parameters(*Store) []byte      { return encodeBlock(scalarBlock{d.Width}) }
