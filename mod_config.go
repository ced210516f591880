package shaderlab

import (
	"github.com/gekko3d/shaderlab/labrt/rt/config"
	"github.com/gekko3d/shaderlab/labrt/rt/effects"
)

// ConfigModule exposes the launch configuration as a resource and, with
// Watch set, re-applies effect overrides, the debug flag and the selected
// effect whenever the file is saved.
type ConfigModule struct {
	Path   string
	Config config.Config
	Watch  bool
}

type ConfigState struct {
	Config  config.Config
	watcher *config.Watcher
}

func (m ConfigModule) Install(app *App, cmd *Commands) {
	cs := &ConfigState{Config: m.Config}
	if m.Watch && m.Path != "" {
		w, err := config.Watch(m.Path)
		if err != nil {
			cmd.Logger().Warnf("watch %s: %v", m.Path, err)
		} else {
			cs.watcher = w
			cmd.Logger().Debugf("watching %s", w.Path())
		}
	}
	cmd.AddResources(cs)
	if cs.watcher != nil {
		cmd.UseSystem(System(configReloadSystem).InStage(PreUpdate).RunAlways())
		if app.stateful {
			cmd.UseSystem(System(configCloseSystem).InStage(Finale).InState(OnEnter(StateExit)))
		}
	}
}

func configReloadSystem(cs *ConfigState, g *Gallery, cmd *Commands) {
	select {
	case cfg := <-cs.watcher.Changes:
		cs.Apply(cfg, g, cmd.Logger())
	case err := <-cs.watcher.Errors:
		cmd.Logger().Warnf("config: %v", err)
	default:
	}
}

func configCloseSystem(cs *ConfigState) {
	if cs.watcher != nil {
		cs.watcher.Close()
	}
}

// Apply switches to a reloaded configuration. Only settings that can change
// at runtime are applied; window and render sizes need a restart.
func (cs *ConfigState) Apply(cfg config.Config, g *Gallery, log Logger) {
	prev := cs.Config
	cs.Config = cfg

	log.SetDebug(cfg.Log.Debug)
	g.SetOverrides(cfg.Effects)
	if cfg.Gallery.Effect != prev.Gallery.Effect {
		if err := g.Select(effects.EffectID(cfg.Gallery.Effect)); err != nil {
			log.Warnf("config: %v", err)
		}
	}
	log.Infof("config reloaded")
}
