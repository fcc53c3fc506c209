package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Stage is where the user is in the app's lifecycle.
type Stage int

const (
	// StageOnboarding asks for a name before anything else.
	StageOnboarding Stage = iota
	// StageReady shows the greeting and the journal.
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageOnboarding:
		return "onboarding"
	case StageReady:
		return "ready"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Menu is the visibility of the main menu.
type Menu int

const (
	MenuClosed Menu = iota
	MenuOpen
)

func (m Menu) String() string {
	if m == MenuOpen {
		return "open"
	}
	return "closed"
}

// ErrNotReady is returned for menu transitions attempted before onboarding
// finished.
var ErrNotReady = errors.New("app: onboarding not finished")

// Profiles reads and writes the profile name.
type Profiles interface {
	LoadProfileName(ctx context.Context) (string, bool, error)
	SaveProfileName(ctx context.Context, name string) error
}

// Session is the client-side state machine:
//
//	Onboarding --Onboard--> Ready
//	MenuClosed <--Toggle--> MenuOpen   (Ready only)
//
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	profiles Profiles
	log      *zap.Logger

	stage Stage
	menu  Menu
	name  string
}

func NewSession(p Profiles) *Session {
	return &Session{profiles: p, log: zap.NewNop()}
}

// WithLogger sets the logger used for swallowed profile read errors.
func (s *Session) WithLogger(l *zap.Logger) *Session {
	if l != nil {
		s.log = l
	}
	return s
}

// Start loads the saved profile. With a name the session is Ready,
// otherwise it is Onboarding. A failed read is logged and treated as no
// name.
func (s *Session) Start(ctx context.Context) Stage {
	s.stage, s.menu, s.name = StageOnboarding, MenuClosed, ""
	if s.profiles == nil {
		return s.stage
	}
	name, ok, err := s.profiles.LoadProfileName(ctx)
	if err != nil {
		s.log.Warn("loading profile failed, onboarding", zap.Error(err))
		return s.stage
	}
	if ok {
		s.stage, s.name = StageReady, name
	}
	return s.stage
}

// Onboard saves the name and moves to Ready. In Ready it renames. The stage
// does not change when the save fails.
func (s *Session) Onboard(ctx context.Context, name string) error {
	if s.profiles == nil {
		return ErrNoJournal
	}
	if err := s.profiles.SaveProfileName(ctx, name); err != nil {
		return err
	}
	// Reload so the session shows what was stored (trimmed).
	stored, ok, err := s.profiles.LoadProfileName(ctx)
	if err != nil || !ok {
		stored = name
	}
	s.stage, s.name = StageReady, stored
	return nil
}

func (s *Session) Stage() Stage { return s.stage }
func (s *Session) Menu() Menu   { return s.menu }
func (s *Session) Name() string { return s.name }

// ToggleMenu flips the menu and returns the new state.
func (s *Session) ToggleMenu() (Menu, error) {
	if s.stage != StageReady {
		return s.menu, ErrNotReady
	}
	if s.menu == MenuOpen {
		s.menu = MenuClosed
	} else {
		s.menu = MenuOpen
	}
	return s.menu, nil
}

func (s *Session) OpenMenu() error {
	if s.stage != StageReady {
		return ErrNotReady
	}
	s.menu = MenuOpen
	return nil
}

// CloseMenu always succeeds; closing a closed menu is a no-op.
func (s *Session) CloseMenu() {
	s.menu = MenuClosed
}

// Greeting is the line shown at the top of the current stage.
func (s *Session) Greeting() string {
	if s.stage == StageReady {
		return fmt.Sprintf("Welcome back, %s!", s.name)
	}
	return "What should we call you?"
}
