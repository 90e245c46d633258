package core

import (
	"github.com/dnswitch/dnswitch/core/config"
	"github.com/dnswitch/dnswitch/core/control"
	"github.com/dnswitch/dnswitch/core/netenum"
)

// MessageLevel classifies the transient user-facing status message.
type MessageLevel int

const (
	LevelSuccess MessageLevel = iota
	LevelWarning
	LevelError
)

func (l MessageLevel) String() string {
	switch l {
	case LevelSuccess:
		return "Success"
	case LevelWarning:
		return "Warning"
	default:
		return "Error"
	}
}

// Message is the status line left behind by the most recent operation.
type Message struct {
	Text  string
	Level MessageLevel
}

// applicationState is the single mutable session. It is owned by the Engine
// and only mutated under the engine lock.
//
// CurrentSettings and CurrentProfileName form the edit buffer: a scratch copy
// decoupled from the stored profiles. Edits land there and only reach the
// selected profile when an operation commits them, so abandoning an edit can
// never corrupt a stored profile.
type applicationState struct {
	interfaces        []netenum.NetworkInterface
	selectedInterface int
	mode              config.DNSMode
	selectedProfileID string

	currentSettings    config.DNSSettings
	currentProfileName string

	currentDNS control.ServerState
	config     *config.AppConfig
	message    *Message
	busy       bool
}

func newApplicationState() *applicationState {
	return &applicationState{
		mode:   config.ModeAutomatic,
		config: &config.AppConfig{},
	}
}

func (s *applicationState) selected() (netenum.NetworkInterface, bool) {
	if s.selectedInterface < 0 || s.selectedInterface >= len(s.interfaces) {
		return netenum.NetworkInterface{}, false
	}
	return s.interfaces[s.selectedInterface], true
}

func (s *applicationState) setMessage(text string, level MessageLevel) {
	s.message = &Message{Text: text, Level: level}
}

func (s *applicationState) clearMessage() {
	s.message = nil
}
