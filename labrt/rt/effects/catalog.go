package effects

import (
	"errors"
	"fmt"
)

var ErrUnknownEffect = errors.New("unknown effect")

// Gallery sections, in display order.
const (
	SectionSimple  = "Simple"
	SectionBook    = "Book of Shaders"
	SectionShaping = "Shaping Functions"
	SectionSDF     = "SDF"
)

const (
	EffectHelloWorld         EffectID = "hello_world"
	EffectCoordinates        EffectID = "coordinates"
	EffectColorGradient      EffectID = "color_gradient"
	EffectPolarColorGradient EffectID = "polar_color_gradient"
	EffectBorders            EffectID = "borders"
)

// Entry is one selectable effect.
type Entry struct {
	ID      EffectID
	Name    string
	Section string
	New     func() Definition
}

func static(id EffectID, kernel string) func() Definition {
	return func() Definition { return &Static{Effect: id, KernelName: kernel} }
}

var catalog = []Entry{
	{EffectAnimatedGradient, "Example 1", SectionSimple, func() Definition { return NewAnimatedGradient() }},
	{EffectAnimatedShape, "Example 2", SectionSimple, func() Definition { return NewAnimatedShape() }},
	{EffectDistanceField, "Distance Field", SectionSimple, func() Definition { return NewDistanceField() }},

	{EffectHelloWorld, "Hello World", SectionBook, static(EffectHelloWorld, "helloWorld")},
	{EffectCoordinates, "Coordinates", SectionBook, static(EffectCoordinates, "coordinates")},
	{EffectColorPicker, "Color Picker", SectionBook, func() Definition { return NewColorPicker() }},
	{EffectSineTransition, "Sine Transition", SectionBook, func() Definition { return NewSineTransition() }},
	{EffectColorGradient, "Color Gradient", SectionBook, static(EffectColorGradient, "colorGradient")},
	{EffectPolarColorGradient, "Polar Color Gradient", SectionBook, static(EffectPolarColorGradient, "polarColorGradient")},
	{EffectBorders, "Borders", SectionBook, static(EffectBorders, "borders")},

	{EffectLinear, "lerp", SectionShaping, static(EffectLinear, "linearInterpolation")},
	{EffectExponential, "expo", SectionShaping, func() Definition { return NewExponential() }},
	{EffectStep, "step", SectionShaping, func() Definition { return NewStep() }},
	{EffectSmoothStep, "smooth", SectionShaping, func() Definition { return NewSmoothStep() }},
	{EffectLog, "log", SectionShaping, func() Definition { return NewLog() }},
	{EffectSqrt, "sqrt", SectionShaping, func() Definition { return NewSqrt() }},
	{EffectExpImpulse, "expImpulse", SectionShaping, func() Definition { return NewExpImpulse() }},
	{EffectSinc, "sinc", SectionShaping, func() Definition { return NewSinc() }},
	{EffectCubicPulse, "cubicPulse", SectionShaping, func() Definition { return NewCubicPulse() }},

	{EffectSDF, "SDF Drawing", SectionSDF, func() Definition { return NewSDFShape() }},
}

// Catalog returns every effect in display order.
func Catalog() []Entry {
	return append([]Entry(nil), catalog...)
}

func Lookup(id EffectID) (Entry, bool) {
	for _, e := range catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// New builds a fresh definition with default field values.
func New(id EffectID) (Definition, error) {
	e, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, id)
	}
	return e.New(), nil
}

// Kernels lists the distinct kernel names used by the catalog.
func Kernels() []string {
	seen := make(map[string]bool, len(catalog))
	var names []string
	for _, e := range catalog {
		k := e.New().Kernel()
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}
	return names
}
