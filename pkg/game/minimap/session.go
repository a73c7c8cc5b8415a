package minimap

import (
	"encoding/json"
	"fmt"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/config"
)

// Session ties the minimap to the game lifecycle and the command interpreter.
type Session struct {
	Minimap *Minimap
	Vars    Variables

	params  *config.Params
	aliases map[string]string
}

// NewSession creates a minimap session with fresh state.
func NewSession(p *config.Params, host Host, vars Variables) *Session {
	s := &Session{
		Minimap: New(p, host),
		Vars:    vars,
		params:  p,
		aliases: make(map[string]string, len(p.Commands)),
	}
	for name, alias := range p.Commands {
		if alias != "" {
			s.aliases[alias] = name
		}
	}
	return s
}

// Canonical maps a command name or its configured alias to the canonical name.
func (s *Session) Canonical(name string) (string, bool) {
	if canonical, ok := s.aliases[name]; ok {
		return canonical, true
	}
	if _, ok := s.params.Commands[name]; ok {
		return name, true
	}
	return "", false
}

// Exec runs a plugin command. Names that are not minimap commands report false
// so that the caller can hand them to another plugin.
func (s *Session) Exec(name string, args []string) (bool, error) {
	canonical, ok := s.Canonical(name)
	if !ok {
		return false, nil
	}
	c, err := Parse(canonical, args, s.Vars)
	if err != nil {
		logger.For("command").WithError(err).WithField("command", name).Warn("minimap command rejected")
		return true, err
	}
	logger.For("command").WithField("command", canonical).Debugf("%+v", c)
	Apply(s.Minimap, c)
	return true, nil
}

// OnMapSetup is called when the game enters mapID.
func (s *Session) OnMapSetup(mapID int) {
	if s.params.IsMinimapMap(mapID) {
		s.Minimap.Setup(mapID)
	} else {
		s.Minimap.Clear()
	}
}

// OnSceneLoaded is called once the map scene has finished loading.
func (s *Session) OnSceneLoaded() {
	s.Minimap.OnSceneLoaded()
}

// Save serializes the minimap for a save file.
func (s *Session) Save() ([]byte, error) {
	return json.Marshal(s.Minimap)
}

// Load restores a serialized minimap. A create request is queued so the map
// data is reloaded when the scene is ready.
func (s *Session) Load(b []byte) error {
	if err := json.Unmarshal(b, s.Minimap); err != nil {
		return fmt.Errorf("restore minimap: %w", err)
	}
	return nil
}
