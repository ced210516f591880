package effects

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const EffectSDF EffectID = "sdf"

// Primitive selects the 2D signed distance function drawn by the sdfDrawing
// kernel. Values match the kernel's switch.
type Primitive uint32

const (
	Circle Primitive = iota
	Box
	Triangle
	RoundedBox
	RegularPolygon
	Line
	Capsule
	Ellipse
	Cross
	Pentagram
	UnevenCapsule
	Heart
	Pie

	primitiveCount
)

var primitiveNames = [...]string{
	Circle:         "Circle",
	Box:            "Box",
	Triangle:       "Triangle",
	RoundedBox:     "Rounded Box",
	RegularPolygon: "Hexagon",
	Line:           "Line",
	Capsule:        "Capsule",
	Ellipse:        "Ellipse",
	Cross:          "Cross",
	Pentagram:      "Pentagram",
	UnevenCapsule:  "Uneven Capsule",
	Heart:          "Heart",
	Pie:            "Pie",
}

func (p Primitive) String() string {
	if p < primitiveCount {
		return primitiveNames[p]
	}
	return "Unknown"
}

// PrimitiveNames lists display names in enum order.
func PrimitiveNames() []string {
	return append([]string(nil), primitiveNames[:]...)
}

// sdfBlock mirrors the kernel's SDFParams. repetitions is a vec2<f32> and so
// sits on an 8 byte boundary.
type sdfBlock struct {
	ShouldMask            int32
	Shape                 uint32
	Intensity             float32
	_                     float32
	Repetitions           mgl32.Vec2
	ShouldFlipAlternating int32
	Rotation              float32
	BlendK                float32
	Scale                 float32
	ShellThickness        float32
	ShouldMakeAnnular     int32
	PatternFrequency      float32
	ShouldApplyPattern    int32
	PatternPhase          float32
	Contrast              float32
}

const sdfBlockSize = 64

// SDFShape draws one of the Primitive shapes with optional repetition, rings,
// stripe patterns and automatic rotation.
type SDFShape struct {
	ShouldMask            bool
	Shape                 Primitive
	Intensity             float32
	Repetitions           float32
	ShouldFlipAlternating bool
	Rotation              float32
	BlendK                float32
	IsRotating            bool
	RotationSpeed         float32
	Scale                 float32
	ShouldMakeAnnular     bool
	ShellThickness        float32
	ShouldApplyPattern    bool
	PatternFrequency      float32
	PatternPhase          float32
	IsPatternAnimated     bool
	PatternAnimationSpeed float32
	Contrast              float32
}

func NewSDFShape() *SDFShape {
	return &SDFShape{
		Shape:                 Circle,
		Intensity:             1.0,
		Repetitions:           1.0,
		RotationSpeed:         1.0,
		Scale:                 0.5,
		ShellThickness:        0.05,
		PatternFrequency:      5.0,
		PatternAnimationSpeed: 1.0,
		Contrast:              1.0,
	}
}

func (s *SDFShape) ID() EffectID         { return EffectSDF }
func (s *SDFShape) Kernel() string       { return "sdfDrawing" }
func (s *SDFShape) ParamByteLength() int { return sdfBlockSize }

// UpdateRuntime only accumulates the phases whose animation is switched on, so
// pausing keeps the accumulated offset.
func (s *SDFShape) UpdateRuntime(store *Store, dt float64) {
	if s.IsRotating {
		store.Advance(PhaseKey{s.ID(), PhaseRotation}, float64(s.RotationSpeed)*dt)
	}
	if s.IsPatternAnimated {
		store.Advance(PhaseKey{s.ID(), PhasePattern}, float64(s.PatternAnimationSpeed)*dt)
	}
}

func (s *SDFShape) Parameters(store *Store) []byte {
	shape := s.Shape
	if shape >= primitiveCount {
		shape = Circle
	}
	rotation := float64(s.Rotation) + store.Phase(PhaseKey{s.ID(), PhaseRotation})
	pattern := float64(s.PatternPhase) + store.Phase(PhaseKey{s.ID(), PhasePattern})
	return encodeBlock(sdfBlock{
		ShouldMask:            boolToInt32(s.ShouldMask),
		Shape:                 uint32(shape),
		Intensity:             s.Intensity,
		Repetitions:           mgl32.Vec2{s.Repetitions, s.Repetitions},
		ShouldFlipAlternating: boolToInt32(s.ShouldFlipAlternating),
		Rotation:              float32(math.Mod(rotation, 2*math.Pi)),
		BlendK:                s.BlendK,
		Scale:                 s.Scale,
		ShellThickness:        s.ShellThickness,
		ShouldMakeAnnular:     boolToInt32(s.ShouldMakeAnnular),
		PatternFrequency:      s.PatternFrequency,
		ShouldApplyPattern:    boolToInt32(s.ShouldApplyPattern),
		PatternPhase:          float32(pattern),
		Contrast:              s.Contrast,
	})
}
