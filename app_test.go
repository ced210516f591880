package shaderlab

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := NewAppBuilder().UseStates(StateRunning, StateExit).Build()

	app.changeState(StateExit)
	assert.Equal(t, StateExit, app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(StateExit)
	assert.Equal(t, StateExit, app.State())
}

func TestApp_addResources(t *testing.T) {
	app := newApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Equal(t, "Resource2", got.name)
}

func TestApp_SystemsReceiveResources(t *testing.T) {
	app := NewAppBuilder().Build()
	res := NewMockResource1("a")
	app.addResources(res)

	calls := 0
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		calls++
		r.name = "b"
		if calls == 3 {
			cmd.Quit()
		}
	}))
	app.Run()

	assert.Equal(t, 3, calls)
	assert.Equal(t, "b", res.name)
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(*MockResource2) {}))
	assert.Panics(t, func() { app.Step() })
}

func TestApp_StagesRunInOrder(t *testing.T) {
	app := NewAppBuilder().Build()
	var order []string
	app.UseSystem(System(func() { order = append(order, "render") }).InStage(Render))
	app.UseSystem(System(func() { order = append(order, "prelude") }).InStage(Prelude))
	app.UseStage(Stage{Name: "Custom"}, AfterStage(Prelude))
	app.UseSystem(System(func() { order = append(order, "custom") }).InStage(Stage{Name: "Custom"}))

	app.Step()
	assert.Equal(t, []string{"prelude", "custom", "render"}, order)

	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "Missing"})) })
}

func TestApp_StatefulLifecycle(t *testing.T) {
	app := NewAppBuilder().UseStates(StateRunning, StateExit).Build()
	var events []string
	app.UseSystem(System(func() { events = append(events, "enter running") }).InState(OnEnter(StateRunning)))
	app.UseSystem(System(func(cmd *Commands) {
		events = append(events, "execute")
		cmd.Quit()
	}).InState(OnExecute(StateRunning)))
	app.UseSystem(System(func() { events = append(events, "exit running") }).InState(OnExit(StateRunning)))
	app.UseSystem(System(func() { events = append(events, "enter exit") }).InStage(Finale).InState(OnEnter(StateExit)))

	app.Run()
	assert.Equal(t, []string{"enter running", "execute", "exit running", "enter exit"}, events)
	assert.Equal(t, StateExit, app.State())
}

func TestApp_StatefulSystemInStatelessAppPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InState(OnEnter(StateExit)))
	})
}

func TestApp_LoggerNeverNil(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())

	app := NewAppBuilder().Build()
	assert.IsType(t, nopLogger{}, app.Logger())

	app = NewAppBuilder().UseModule(LoggingModule{Prefix: "t"}).Build()
	assert.IsType(t, &DefaultLogger{}, app.Logger())
}

func TestTimeAdvance(t *testing.T) {
	tm := &Time{}
	start := tm.Time
	tm.advance(start.Add(16_000_000))
	assert.Equal(t, int64(16_000_000), tm.Dt.Nanoseconds())
	assert.Equal(t, uint64(1), tm.Frame)
}
