package shaderlab

type Commands struct {
	app *App
}

// ChangeState requests a transition applied after the current round of
// systems. In a stateless app it ends Run.
func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

// Quit ends Run: stateful apps move to their final state.
func (cmd *Commands) Quit() {
	cmd.app.changeState(cmd.app.finalState)
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
