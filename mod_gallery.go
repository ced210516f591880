package shaderlab

import (
	"fmt"
	"strings"

	"github.com/gekko3d/shaderlab/labrt/rt/effects"
)

// Gallery is the effect browser: the selected catalog entry, its live
// definition and the control that keyboard edits go to. Definitions are
// kept per effect so switching away and back preserves edits.
type Gallery struct {
	entries   []effects.Entry
	index     int
	control   int
	defs      map[effects.EffectID]effects.Definition
	overrides map[string]map[string]any
	changed   bool
	log       Logger
}

func NewGallery(initial effects.EffectID, overrides map[string]map[string]any, log Logger) (*Gallery, error) {
	if log == nil {
		log = NewNopLogger()
	}
	g := &Gallery{
		entries:   effects.Catalog(),
		defs:      make(map[effects.EffectID]effects.Definition),
		overrides: overrides,
		log:       log,
	}
	if initial == "" {
		initial = g.entries[0].ID
	}
	if err := g.Select(initial); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gallery) Entry() effects.Entry {
	return g.entries[g.index]
}

// Current returns the live definition of the selected effect.
func (g *Gallery) Current() effects.Definition {
	return g.definition(g.Entry())
}

func (g *Gallery) definition(e effects.Entry) effects.Definition {
	if d, ok := g.defs[e.ID]; ok {
		return d
	}
	d := e.New()
	g.applyOverrides(d)
	g.defs[e.ID] = d
	return d
}

func (g *Gallery) applyOverrides(d effects.Definition) {
	values := lookupOverrides(g.overrides, string(d.ID()))
	if len(values) == 0 {
		return
	}
	for _, key := range effects.ApplyOverrides(d, values) {
		g.log.Warnf("effect %s: unknown or invalid setting %q", d.ID(), key)
	}
}

func lookupOverrides(all map[string]map[string]any, id string) map[string]any {
	if v, ok := all[id]; ok {
		return v
	}
	for k, v := range all {
		if strings.EqualFold(k, id) {
			return v
		}
	}
	return nil
}

func (g *Gallery) Select(id effects.EffectID) error {
	for i, e := range g.entries {
		if e.ID == id {
			g.setIndex(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", effects.ErrUnknownEffect, id)
}

func (g *Gallery) setIndex(i int) {
	n := len(g.entries)
	i = ((i % n) + n) % n
	if i == g.index && g.defs[g.entries[i].ID] != nil {
		return
	}
	g.index = i
	g.control = 0
	g.changed = true
}

func (g *Gallery) NextEffect() { g.setIndex(g.index + 1) }

func (g *Gallery) PrevEffect() { g.setIndex(g.index - 1) }

// TakeChanged reports whether the selection changed since the last call.
func (g *Gallery) TakeChanged() bool {
	c := g.changed
	g.changed = false
	return c
}

func (g *Gallery) Controls() []effects.Control {
	return effects.Controls(g.Entry().ID)
}

// Focused returns the control keyboard edits apply to. Effects without
// controls have none.
func (g *Gallery) Focused() (effects.Control, bool) {
	cs := g.Controls()
	if len(cs) == 0 {
		return effects.Control{}, false
	}
	return cs[g.control%len(cs)], true
}

func (g *Gallery) NextControl() { g.moveControl(1) }

func (g *Gallery) PrevControl() { g.moveControl(-1) }

func (g *Gallery) moveControl(d int) {
	n := len(g.Controls())
	if n == 0 {
		return
	}
	g.control = ((g.control+d)%n + n) % n
}

// Adjust steps the focused control.
func (g *Gallery) Adjust(steps int) {
	if c, ok := g.Focused(); ok {
		c.Adjust(g.Current(), steps)
	}
}

// Toggle flips a focused toggle or advances a focused choice.
func (g *Gallery) Toggle() {
	c, ok := g.Focused()
	if !ok || c.Kind == effects.ControlSlider {
		return
	}
	c.Adjust(g.Current(), 1)
}

// Reset rebuilds the selected effect's definition from defaults and
// configured overrides.
func (g *Gallery) Reset() {
	delete(g.defs, g.Entry().ID)
	g.changed = true
}

// SetOverrides replaces the configured overrides and re-applies them to
// every live definition.
func (g *Gallery) SetOverrides(overrides map[string]map[string]any) {
	g.overrides = overrides
	for _, d := range g.defs {
		g.applyOverrides(d)
	}
}

// Status is the one-line summary shown in the window title.
func (g *Gallery) Status() string {
	e := g.Entry()
	s := fmt.Sprintf("%s / %s", e.Section, e.Name)
	if c, ok := g.Focused(); ok {
		s += " | " + c.Format(g.Current())
	}
	return s
}

// GalleryModule installs the Gallery resource and maps keys to gallery
// actions.
type GalleryModule struct {
	Effect    string
	Overrides map[string]map[string]any
}

func (m GalleryModule) Install(app *App, cmd *Commands) {
	g, err := NewGallery(effects.EffectID(m.Effect), m.Overrides, cmd.Logger())
	if err != nil {
		cmd.Logger().Warnf("%v; starting with %s", err, effects.Catalog()[0].ID)
		g, _ = NewGallery("", m.Overrides, cmd.Logger())
	}
	cmd.AddResources(g)
	cmd.UseSystem(System(gallerySystem).InStage(Update).RunAlways())
}

func gallerySystem(input *Input, g *Gallery, cmd *Commands) {
	switch {
	case input.Triggered(KeyRight):
		g.NextEffect()
	case input.Triggered(KeyLeft):
		g.PrevEffect()
	case input.Triggered(KeyDown):
		g.NextControl()
	case input.Triggered(KeyUp):
		g.PrevControl()
	}

	steps := 1
	if input.Shift {
		steps = 10
	}
	if input.AnyTriggered(KeyEqual, KeyKPPlus) {
		g.Adjust(steps)
	}
	if input.AnyTriggered(KeyMinus, KeyKPMinus) {
		g.Adjust(-steps)
	}
	if input.JustPressed[KeySpace] {
		g.Toggle()
	}
	if input.JustPressed[KeyBackspace] {
		g.Reset()
	}
	if input.JustPressed[KeyH] {
		for _, c := range g.Controls() {
			cmd.Logger().Infof("%s", c.Format(g.Current()))
		}
	}
	if input.JustPressed[KeyEscape] {
		cmd.Quit()
	}
}
