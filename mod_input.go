package shaderlab

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Key int

const (
	KeyRight Key = iota
	KeyLeft
	KeyDown
	KeyUp
	KeyEqual
	KeyMinus
	KeyKPPlus
	KeyKPMinus
	KeySpace
	KeyBackspace
	KeyEscape
	KeyP
	KeyR
	KeyH

	keyCount
)

var keyToGlfw = map[Key]glfw.Key{
	KeyRight:     glfw.KeyRight,
	KeyLeft:      glfw.KeyLeft,
	KeyDown:      glfw.KeyDown,
	KeyUp:        glfw.KeyUp,
	KeyEqual:     glfw.KeyEqual,
	KeyMinus:     glfw.KeyMinus,
	KeyKPPlus:    glfw.KeyKPAdd,
	KeyKPMinus:   glfw.KeyKPSubtract,
	KeySpace:     glfw.KeySpace,
	KeyBackspace: glfw.KeyBackspace,
	KeyEscape:    glfw.KeyEscape,
	KeyP:         glfw.KeyP,
	KeyR:         glfw.KeyR,
	KeyH:         glfw.KeyH,
}

var glfwToKey = func() map[glfw.Key]Key {
	m := make(map[glfw.Key]Key, len(keyToGlfw))
	for k, g := range keyToGlfw {
		m[g] = k
	}
	return m
}()

type keyEvent struct {
	key    Key
	action glfw.Action
	shift  bool
}

// Input is the keyboard state for the current frame. Events arrive through
// the GLFW key callback during PollEvents and are folded in at PreUpdate.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool
	// Repeated is set for OS key repeat while a key is held.
	Repeated [keyCount]bool
	Shift    bool

	pending []keyEvent
}

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{}
	cmd.AddResources(input)

	if ws, ok := Resource[WindowState](app); ok && ws.windowGlfw != nil {
		ws.windowGlfw.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
			if k, ok := glfwToKey[key]; ok {
				input.push(k, action, mods&glfw.ModShift != 0)
			}
		})
	}
	cmd.UseSystem(System(inputSystem).InStage(PreUpdate).RunAlways())
}

func inputSystem(input *Input) {
	input.beginFrame()
}

func (in *Input) push(key Key, action glfw.Action, shift bool) {
	in.pending = append(in.pending, keyEvent{key: key, action: action, shift: shift})
}

func (in *Input) beginFrame() {
	in.JustPressed = [keyCount]bool{}
	in.JustReleased = [keyCount]bool{}
	in.Repeated = [keyCount]bool{}

	for _, e := range in.pending {
		in.Shift = e.shift
		switch e.action {
		case glfw.Press:
			if !in.Pressed[e.key] {
				in.JustPressed[e.key] = true
			}
			in.Pressed[e.key] = true
		case glfw.Repeat:
			in.Repeated[e.key] = true
		case glfw.Release:
			if in.Pressed[e.key] {
				in.JustReleased[e.key] = true
			}
			in.Pressed[e.key] = false
		}
	}
	in.pending = in.pending[:0]
}

// Triggered reports a press or an auto-repeat of key this frame.
func (in *Input) Triggered(key Key) bool {
	return in.JustPressed[key] || in.Repeated[key]
}

// AnyTriggered reports whether any of keys was triggered.
func (in *Input) AnyTriggered(keys ...Key) bool {
	for _, k := range keys {
		if in.Triggered(k) {
			return true
		}
	}
	return false
}
